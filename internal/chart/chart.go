package chart

import (
	"github.com/guptarohit/asciigraph"
	"github.com/rxtech-lab/argo-lab/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	Title  = "Balance Change During Backtesting"
	XLabel = "Iterations"
	YLabel = "Balance"
)

// PlotBalance draws the balance curve as a line chart. The image format follows the
// extension of path (png, svg, pdf, ...).
func PlotBalance(history []float64, path string) error {
	if err := requireHistory(history); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel

	line, err := plotter.NewLine(points(history))
	if err != nil {
		return errors.Wrap(errors.ErrCodeChartRenderFailed, "failed to build balance line", err)
	}

	p.Add(line, plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(errors.ErrCodeChartRenderFailed, err, "failed to save chart to %s", path)
	}

	return nil
}

// RenderASCII draws the balance curve for a terminal. A height of 0 lets asciigraph size the chart.
func RenderASCII(history []float64, height int) (string, error) {
	if err := requireHistory(history); err != nil {
		return "", err
	}

	if height < 0 {
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "chart height must be >= 0, got %d", height)
	}

	return asciigraph.Plot(history,
		asciigraph.Height(height),
		asciigraph.Caption(Title),
	), nil
}

func requireHistory(history []float64) error {
	if len(history) == 0 {
		return errors.Wrap(errors.ErrCodeInsufficientData, "cannot chart balance",
			errors.NewInsufficientDataError(1, 0, "balance history is empty"))
	}

	return nil
}

func points(history []float64) plotter.XYs {
	pts := make(plotter.XYs, len(history))
	for i, balance := range history {
		pts[i].X = float64(i)
		pts[i].Y = balance
	}

	return pts
}
