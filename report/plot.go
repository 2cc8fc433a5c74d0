package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
)

// LineSeries generates an echart multi-line chart indexed by sample number. Each series in y
// must have the same length.
func LineSeries(title string, seriesName []string, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	var n int
	if len(y) > 0 {
		n = len(y[0])
	}
	samples := make([]int, n)
	for i := range samples {
		samples[i] = i
	}

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(samples)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}

	return line
}

// WritePlot renders an HTML page with the target and fitted values of every channel along
// with the per channel residuals
func WritePlot(w io.Writer, target, fitted mat.Matrix) error {
	tm, tn := target.Dims()
	fm, fn := fitted.Dims()
	if tm != fm || tn != fn {
		return fmt.Errorf("target is %dx%d and fitted is %dx%d, %w", tm, tn, fm, fn, ErrShapeMismatch)
	}

	page := components.NewPage()

	residualNames := make([]string, 0, tn)
	residuals := make([][]float64, 0, tn)
	for j := 0; j < tn; j++ {
		actual := mat.Col(nil, j, target)
		predicted := mat.Col(nil, j, fitted)

		page.AddCharts(
			LineSeries(
				fmt.Sprintf("Channel %d Fit", j),
				[]string{"Target", "Fitted"},
				[][]float64{actual, predicted},
			),
		)

		residual := make([]float64, tm)
		for i := range residual {
			residual[i] = actual[i] - predicted[i]
		}
		residualNames = append(residualNames, fmt.Sprintf("Channel %d", j))
		residuals = append(residuals, residual)
	}
	page.AddCharts(LineSeries("Fit Residual", residualNames, residuals))

	return page.Render(w)
}
