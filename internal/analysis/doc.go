// Package analysis turns Langevin trajectories into summaries:
//
//   - [NewHistogram]: binned distribution of a coordinate series
//   - [Autocorrelation]: normalized autocorrelation via FFT
//   - [PowerSpectrum]: amplitude spectrum of a series
//   - [PhasePortrait]: position against velocity of one coordinate
//   - [Transitions]: barrier crossings between two wells
//
// Series are plain []float64, as returned by
// [github.com/markovmodel/compsci-2018/internal/langevin.Trajectory.Coordinate].
package analysis
