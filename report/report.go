// Package report renders a fitted transform as plain text, JSON or an HTML chart page
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aouyang1/go-solvematrix/linearmodel"
	mat_ "github.com/aouyang1/go-solvematrix/mat"
	"github.com/aouyang1/go-solvematrix/stats"
	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoModel       = errors.New("no fitted model")
	ErrShapeMismatch = errors.New("matrix shapes do not match")
)

// Report summarizes a fitted transform and how well it maps the source onto the target
type Report struct {
	Matrix  [][]float64          `json:"matrix"`
	Samples int                  `json:"samples"`
	Rank    int                  `json:"rank"`
	Scores  []linearmodel.Scores `json:"scores"`

	// Outliers holds the indices of samples whose residual distance lies outside the
	// Tukey fences of all residual distances
	Outliers []int `json:"outliers"`
}

// New builds a report from a fitted model and the data it was fit with
func New(model *linearmodel.TransformRegression, source, target mat.Matrix) (*Report, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	coef := model.Coef()
	if coef == nil {
		return nil, linearmodel.ErrNotFit
	}

	scores, err := model.Score(source, target)
	if err != nil {
		return nil, fmt.Errorf("unable to score transform, %w", err)
	}

	fitted, err := model.Predict(source)
	if err != nil {
		return nil, fmt.Errorf("unable to predict with transform, %w", err)
	}
	norms, err := stats.ResidualNorms(target, fitted)
	if err != nil {
		return nil, fmt.Errorf("unable to compute residuals, %w", err)
	}
	outliers := stats.DetectOutliers(norms, nil)
	if outliers == nil {
		outliers = []int{}
	}

	samples, _ := source.Dims()
	return &Report{
		Matrix:   mat_.Rows(coef),
		Samples:  samples,
		Rank:     model.Rank(),
		Scores:   scores,
		Outliers: outliers,
	}, nil
}

// FormatValue renders v in its shortest round trip decimal form without an exponent
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteText writes one line per matrix row with the values separated by single spaces
func WriteText(w io.Writer, m mat.Matrix) error {
	r, c := m.Dims()

	var sb strings.Builder
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(FormatValue(m.At(i, j)))
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON writes the indented JSON encoding of the report followed by a newline
func WriteJSON(w io.Writer, r *Report) error {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode report, %w", err)
	}
	bytes = append(bytes, '\n')

	_, err = w.Write(bytes)
	return err
}
