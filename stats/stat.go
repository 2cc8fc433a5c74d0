// Package stats contains diagnostics for the residuals of a fitted transform
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrShapeMismatch = errors.New("actual and predicted matrices have different shapes")

// OutlierOptions configures the percentile based Tukey fences used to flag outliers
type OutlierOptions struct {
	UpperPercentile float64 `json:"upper_percentile"`
	LowerPercentile float64 `json:"lower_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

// NewDefaultOutlierOptions returns the default outlier detection options
func NewDefaultOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		UpperPercentile: 0.9,
		LowerPercentile: 0.1,
		TukeyFactor:     1.0,
	}
}

// DetectOutliers returns the indices of y lying strictly outside the fences
// [lower - k*(upper-lower), upper + k*(upper-lower)] where lower and upper are the
// configured percentiles of y and k is the tukey factor.
func DetectOutliers(y []float64, opt *OutlierOptions) []int {
	if len(y) == 0 {
		return nil
	}
	if opt == nil {
		opt = NewDefaultOutlierOptions()
	}

	lowerPerc := math.Max(opt.LowerPercentile, 0.0)
	upperPerc := math.Min(opt.UpperPercentile, 1.0)
	tukeyFactor := math.Max(opt.TukeyFactor, 0.0)

	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)

	last := len(yCopy) - 1
	lowerIdx := min(int(math.Floor(float64(last)*lowerPerc)), last)
	upperIdx := min(int(math.Ceil(float64(last)*upperPerc)), last)

	lower := yCopy[lowerIdx]
	upper := yCopy[upperIdx]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] > upper || y[i] < lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}

// ResidualNorms returns the euclidean distance between each row of actual and predicted
func ResidualNorms(actual, predicted mat.Matrix) ([]float64, error) {
	am, an := actual.Dims()
	pm, pn := predicted.Dims()
	if am != pm || an != pn {
		return nil, fmt.Errorf("actual is %dx%d and predicted is %dx%d, %w", am, an, pm, pn, ErrShapeMismatch)
	}

	norms := make([]float64, am)
	for i := 0; i < am; i++ {
		norms[i] = floats.Distance(mat.Row(nil, i, actual), mat.Row(nil, i, predicted), 2)
	}
	return norms, nil
}
