package analysis

import (
	"math"
	"sort"

	"github.com/markovmodel/compsci-2018/internal/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram is a binned distribution. Edges has one element more than
// Counts; the last bin is closed on the right.
type Histogram struct {
	Edges  []float64
	Counts []float64
}

// NewHistogram bins values into equal-width bins spanning their range.
func NewHistogram(values []float64, bins int) (*Histogram, error) {
	const op = "analysis.NewHistogram"
	if bins < 1 {
		return nil, core.OutOfRange(op, "bins", bins)
	}
	if len(values) == 0 {
		return nil, core.LengthMismatch(op, "values", 0, 1)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram excludes the upper divider
	upper := edges[bins]
	edges[bins] = math.Nextafter(upper, math.Inf(1))
	counts := stat.Histogram(nil, edges, sorted, nil)
	edges[bins] = upper

	return &Histogram{Edges: edges, Counts: counts}, nil
}

// Centers returns the midpoints of the bins.
func (h *Histogram) Centers() []float64 {
	c := make([]float64, len(h.Counts))
	for i := range c {
		c[i] = 0.5 * (h.Edges[i] + h.Edges[i+1])
	}
	return c
}

// Density normalizes the counts to unit area.
func (h *Histogram) Density() []float64 {
	total := floats.Sum(h.Counts)
	d := make([]float64, len(h.Counts))
	if total == 0 {
		return d
	}
	for i, c := range h.Counts {
		d[i] = c / (total * (h.Edges[i+1] - h.Edges[i]))
	}
	return d
}
