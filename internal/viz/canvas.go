package viz

import "strings"

const brailleBlank = 0x2800

// Dot bits of a Braille cell, indexed [row][col].
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel grid. Each character cell carries 2×4 pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Pixels returns the canvas size in pixels.
func (c *Canvas) Pixels() (w, h int) { return 2 * c.Width, 4 * c.Height }

// Set lights the pixel (x, y); y grows downwards. Out of range is ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= 2*c.Width || y >= 4*c.Height {
		return
	}
	c.Grid[y/4][x/2] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for j := range row {
			row[j] = brailleBlank
		}
	}
}

// DrawLine draws a Bresenham line between two pixels.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		if 2*e >= dy {
			e += dy
			x0 += sx
		}
		if 2*e <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps world coordinates onto a canvas.
type Viewport struct {
	XMin, XMax, YMin, YMax float64
}

// Pixel converts a world point to pixel coordinates.
func (v Viewport) Pixel(c *Canvas, x, y float64) (int, int) {
	w, h := c.Pixels()
	px := (x - v.XMin) / (v.XMax - v.XMin) * float64(w-1)
	py := (v.YMax - y) / (v.YMax - v.YMin) * float64(h-1)
	return int(px + 0.5), int(py + 0.5)
}

// Curve draws y = f(x) across the viewport.
func (v Viewport) Curve(c *Canvas, f func(float64) float64) {
	w, _ := c.Pixels()
	px, py := v.Pixel(c, v.XMin, f(v.XMin))
	for i := 1; i < w; i++ {
		x := v.XMin + float64(i)/float64(w-1)*(v.XMax-v.XMin)
		nx, ny := v.Pixel(c, x, f(x))
		c.DrawLine(px, py, nx, ny)
		px, py = nx, ny
	}
}

// Marker draws a filled 3×3 pixel block centred on a world point.
func (v Viewport) Marker(c *Canvas, x, y float64) {
	px, py := v.Pixel(c, x, y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(px+dx, py+dy)
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
