package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/markovmodel/compsci-2018/internal/analysis"
)

// PlotSeries draws a line chart of values.
func PlotSeries(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotMany overlays several series with one colour each.
func PlotMany(series [][]float64, caption string, width, height int) string {
	if len(series) == 0 {
		return ""
	}
	colors := []asciigraph.AnsiColor{asciigraph.Green, asciigraph.Yellow, asciigraph.Cyan, asciigraph.Red}
	used := make([]asciigraph.AnsiColor, len(series))
	for i := range used {
		used[i] = colors[i%len(colors)]
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(used...),
	)
}

// PlotHistogram draws the density of a histogram bin by bin.
func PlotHistogram(h *analysis.Histogram, caption string, height int) string {
	if h == nil || len(h.Counts) == 0 {
		return ""
	}
	return asciigraph.Plot(h.Density(),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}
