package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/markovmodel/compsci-2018/internal/langevin"
	"gonum.org/v1/gonum/mat"
)

type ExportData struct {
	RunMetadata
	Times      []float64     `json:"times"`
	Positions  [][][]float64 `json:"positions"`
	Velocities [][][]float64 `json:"velocities"`
}

func frames(ms []*mat.Dense) [][][]float64 {
	out := make([][][]float64, len(ms))
	for f, m := range ms {
		n, _ := m.Dims()
		out[f] = make([][]float64, n)
		for i := 0; i < n; i++ {
			out[f][i] = mat.Row(nil, i, m)
		}
	}
	return out
}

// ExportJSON writes a run with its full trajectory as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, traj *langevin.Trajectory) error {
	data := ExportData{
		RunMetadata: meta,
		Times:       traj.Times(),
		Positions:   frames(traj.X),
		Velocities:  frames(traj.V),
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteMatrix writes m as CSV, one matrix row per record.
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	cw := csv.NewWriter(w)
	r, c := m.Dims()
	row := make([]string, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = formatFloat(m.At(i, j))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
