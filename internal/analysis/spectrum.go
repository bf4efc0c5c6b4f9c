package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the amplitudes of the non-negative frequencies of
// data. Index k is k cycles per series length.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	coeff := fourier.NewFFT(len(data)).Coefficients(nil, data)
	ps := make([]float64, len(coeff))
	for i, c := range coeff {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// Autocorrelation returns the normalized autocorrelation of series for lags
// 0..maxLag, with acf[0] = 1. A constant series yields nil.
func Autocorrelation(series []float64, maxLag int) []float64 {
	n := len(series)
	if n == 0 || maxLag < 0 {
		return nil
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	// zero padding to 2n makes the circular correlation linear
	padded := make([]float64, 2*n)
	copy(padded, series)
	floats.AddConst(-stat.Mean(series, nil), padded[:n])

	fft := fourier.NewFFT(2 * n)
	coeff := fft.Coefficients(nil, padded)
	for i, c := range coeff {
		coeff[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	raw := fft.Sequence(nil, coeff)
	if raw[0] <= 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	c0 := raw[0] / float64(n)
	for k := range acf {
		acf[k] = raw[k] / float64(n-k) / c0
	}
	return acf
}
