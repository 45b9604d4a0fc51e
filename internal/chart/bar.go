package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lowmax205/surveyscan/internal/model"
)

// Bar colors follow the palette used across the reports.
var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// BarChart draws a vertical bar chart of the frequency table. Bars keep
// the table's order, most frequent first, with labels drawn upright on
// the X axis.
func BarChart(freq *model.FrequencyTable, title string) (*plot.Plot, error) {
	if freq == nil {
		return nil, fmt.Errorf("%w: nil frequency table", ErrRenderChart)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Brand"
	p.Y.Label.Text = "Count"

	values := make(plotter.Values, freq.Len())
	labels := make([]string, freq.Len())
	for i, entry := range freq.Entries {
		values[i] = float64(entry.Count)
		labels[i] = entry.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderChart, err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = barColor

	p.Add(bars)
	p.NominalX(labels...)

	return p, nil
}

// SavePNG writes the plot to path as a PNG image, overwriting any
// existing file.
func SavePNG(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSaveChart, path, err)
	}
	return nil
}
