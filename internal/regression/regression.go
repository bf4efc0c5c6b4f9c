// Package regression provides the arithmetic mean, the scalar product and a
// least-squares line fit.
//
// Degenerate inputs follow a zero-division-as-zero convention: the mean of an
// empty sequence is 0 and a fit through x-values without variance has slope 0.
package regression

import (
	"strconv"

	"github.com/markovmodel/compsci-2018/internal/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of values, or 0 for an empty sequence.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// ScalarProduct returns the dot product of a and b.
func ScalarProduct(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, core.LengthMismatch("regression.ScalarProduct", "b", len(b), len(a))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Dot(a, b), nil
}

// LinearRegression fits y ≈ slope*x + intercept by least squares. Without
// variance in x the slope is 0 and the intercept is Mean(y).
func LinearRegression(x, y []float64) (slope, intercept float64, err error) {
	if len(x) != len(y) {
		return 0, 0, core.LengthMismatch("regression.LinearRegression", "y", len(y), len(x))
	}
	xMean, yMean := Mean(x), Mean(y)
	xc := centered(x, xMean)
	yc := centered(y, yMean)

	xy, _ := ScalarProduct(xc, yc)
	xx, _ := ScalarProduct(xc, xc)
	if xx == 0 {
		return 0, yMean, nil
	}
	slope = xy / xx
	return slope, yMean - slope*xMean, nil
}

func centered(v []float64, mean float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	floats.AddConst(-mean, c)
	return c
}

// FromColumns parses records of two numeric columns into x and y. Header
// rows are skipped when their first field is not a number.
func FromColumns(records [][]string) (x, y []float64, err error) {
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, nil, core.LengthMismatch("regression.FromColumns", "record", len(rec), 2)
		}
		xv, errX := strconv.ParseFloat(rec[0], 64)
		yv, errY := strconv.ParseFloat(rec[1], 64)
		if errX != nil || errY != nil {
			if i == 0 {
				continue
			}
			return nil, nil, core.TypeMismatch("regression.FromColumns", "record", rec)
		}
		x = append(x, xv)
		y = append(y, yv)
	}
	return x, y, nil
}
