package linearmodel

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	mat_ "github.com/aouyang1/go-solvematrix/mat"
	"gonum.org/v1/gonum/mat"
)

const (
	// Dim is the dimensionality of the points and of the square transform
	Dim = 3

	// DefaultTolerance is the absolute threshold at or below which singular values are
	// treated as zero when computing the pseudo-inverse
	DefaultTolerance = 1e-15
)

// TransformOptions represents input options to fit a 3x3 linear transform
type TransformOptions struct {
	Tolerance float64 `json:"tolerance"`
}

// Validate runs basic validation on transform options
func (o *TransformOptions) Validate() (*TransformOptions, error) {
	if o == nil {
		o = NewDefaultTransformOptions()
	}

	if o.Tolerance < 0 || math.IsNaN(o.Tolerance) {
		return nil, fmt.Errorf("got %g, %w", o.Tolerance, ErrNegativeTolerance)
	}
	return o, nil
}

// NewDefaultTransformOptions returns a default set of transform options
func NewDefaultTransformOptions() *TransformOptions {
	return &TransformOptions{
		Tolerance: DefaultTolerance,
	}
}

// TransformRegression computes the least squares 3x3 linear transform without intercept
// mapping source points onto target points using a pseudo-inverse
type TransformRegression struct {
	opt  *TransformOptions
	coef *mat.Dense
	rank int
}

// NewTransformRegression initializes a transform regression ready for fitting
func NewTransformRegression(opt *TransformOptions) (*TransformRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &TransformRegression{
		opt: opt,
	}, nil
}

// Fit computes R = Tᵗ·pinv(Sᵗ) for the N×3 source S and N×3 target T. R minimizes the
// sum of squared residuals ‖Tᵗ - R·Sᵗ‖² so that target_i ≈ R·source_i.
func (o *TransformRegression) Fit(source, target mat.Matrix) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if source == nil {
		return ErrNoSourceMatrix
	}
	if target == nil {
		return ErrNoTargetMatrix
	}

	m, n := source.Dims()
	if n != Dim {
		return fmt.Errorf("source has %d columns, %w", n, ErrNotTriplet3D)
	}
	tm, tn := target.Dims()
	if tn != Dim {
		return fmt.Errorf("target has %d columns, %w", tn, ErrNotTriplet3D)
	}
	if tm != m {
		return fmt.Errorf("source has %d rows and target has %d rows, %w", m, tm, ErrTargetLenMismatch)
	}

	sourceT := source.T()
	pinv, err := mat_.PseudoInverse(sourceT, o.opt.Tolerance)
	if err != nil {
		if errors.Is(err, mat_.ErrNegativeTolerance) {
			// options are validated on construction
			panic(fmt.Sprintf("pseudo-inverse with invalid tolerance %g: %v", o.opt.Tolerance, err))
		}
		return fmt.Errorf("unable to compute pseudo-inverse of source, %w", err)
	}

	rank, err := mat_.Rank(sourceT, o.opt.Tolerance)
	if err != nil {
		return fmt.Errorf("unable to compute rank of source, %w", err)
	}
	if rank < Dim {
		slog.Warn("source points are rank deficient, using minimum norm solution",
			"rank", rank, "samples", m, "tolerance", o.opt.Tolerance)
	}

	coef := mat.NewDense(Dim, Dim, nil)
	coef.Mul(target.T(), pinv)

	o.coef = coef
	o.rank = rank
	return nil
}

// Predict maps every row of the N×3 input through the fitted transform and returns the
// N×3 result, i.e. X·Rᵗ.
func (o *TransformRegression) Predict(x mat.Matrix) (*mat.Dense, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if o.coef == nil {
		return nil, ErrNotFit
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	m, n := x.Dims()
	if n != Dim {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, Dim, ErrFeatureLenMismatch)
	}

	res := mat.NewDense(m, Dim, nil)
	res.Mul(x, o.coef.T())
	return res, nil
}

// Score computes fit scores for each output channel of the prediction on x against y
func (o *TransformRegression) Score(x, y mat.Matrix) ([]Scores, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if y == nil {
		return nil, ErrNoTargetMatrix
	}

	m, _ := x.Dims()
	ym, yn := y.Dims()
	if m != ym {
		return nil, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}
	if yn != Dim {
		return nil, fmt.Errorf("target has %d columns, %w", yn, ErrNotTriplet3D)
	}

	res, err := o.Predict(x)
	if err != nil {
		return nil, err
	}

	scores := make([]Scores, Dim)
	for j := 0; j < Dim; j++ {
		s, err := NewScores(mat.Col(nil, j, res), mat.Col(nil, j, y))
		if err != nil {
			return nil, fmt.Errorf("unable to score channel %d, %w", j, err)
		}
		scores[j] = *s
	}
	return scores, nil
}

// Coef returns a copy of the fitted 3x3 transform or nil if the model has not been fit
func (o *TransformRegression) Coef() *mat.Dense {
	if o.coef == nil {
		return nil
	}
	return mat.DenseCopyOf(o.coef)
}

// Rank returns the numerical rank of the source points used in the last fit
func (o *TransformRegression) Rank() int {
	return o.rank
}

// Solve fits a transform with default options and returns the 3x3 result
func Solve(source, target mat.Matrix) (*mat.Dense, error) {
	model, err := NewTransformRegression(nil)
	if err != nil {
		return nil, err
	}
	if err := model.Fit(source, target); err != nil {
		return nil, err
	}
	return model.Coef(), nil
}
