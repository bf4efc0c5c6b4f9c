// Package viz renders Langevin runs in the terminal.
//
// Static output uses asciigraph line charts ([PlotSeries], [PlotHistogram]).
// [Model] is a Bubble Tea program that integrates a system live and draws
// the particles over their potential on a Braille [Canvas].
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial state
//	Tab   - Select beta or damping
//	Up/K  - Increase the selected parameter by 10%
//	Down/J- Decrease the selected parameter by 10%
//	?     - Show help overlay
//	Q     - Quit
package viz
