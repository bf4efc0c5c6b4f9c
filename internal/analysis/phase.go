package analysis

import (
	"strings"

	"github.com/markovmodel/compsci-2018/internal/langevin"
	"gonum.org/v1/gonum/floats"
)

// PhasePortrait2D holds data for a 2D phase space plot.
type PhasePortrait2D struct {
	X, Y []float64
}

// PhasePortrait extracts position and velocity of one particle coordinate.
// It returns nil for indices outside the trajectory.
func PhasePortrait(traj *langevin.Trajectory, particle, dim int) *PhasePortrait2D {
	if traj == nil || len(traj.X) == 0 || particle < 0 || dim < 0 {
		return nil
	}
	n, d := traj.X[0].Dims()
	if particle >= n || dim >= d {
		return nil
	}
	return &PhasePortrait2D{
		X: traj.Coordinate(particle, dim),
		Y: traj.Velocity(particle, dim),
	}
}

// PhasePortraitToASCII converts a phase portrait to ASCII art.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.X) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := floats.Min(portrait.X), floats.Max(portrait.X)
	minY, maxY := floats.Min(portrait.Y), floats.Max(portrait.Y)
	minX, maxX = pad(minX, maxX)
	minY, maxY = pad(minY, maxY)
	rangeX := maxX - minX
	rangeY := maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i := range portrait.X {
		col := int((portrait.X[i] - minX) / rangeX * float64(width-1))
		row := height - 1 - int((portrait.Y[i]-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// axes, where visible
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

func pad(lo, hi float64) (float64, float64) {
	r := hi - lo
	if r == 0 {
		r = 1
	}
	return lo - 0.1*r, hi + 0.1*r
}

// Transitions counts crossings between the wells x <= lo and x >= hi. Time
// spent in between does not end a visit, so noise on the barrier top is not
// counted.
func Transitions(series []float64, lo, hi float64) int {
	state := 0
	count := 0
	for _, x := range series {
		switch {
		case x <= lo:
			if state == 1 {
				count++
			}
			state = -1
		case x >= hi:
			if state == -1 {
				count++
			}
			state = 1
		}
	}
	return count
}
