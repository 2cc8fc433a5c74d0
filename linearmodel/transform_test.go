package linearmodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const fitTol = 1e-9

func TestTransformOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *TransformOptions
		err      error
		expected *TransformOptions
	}{
		"nil": {nil, nil, NewDefaultTransformOptions()},
		"valid": {
			&TransformOptions{Tolerance: 1e-9},
			nil,
			&TransformOptions{Tolerance: 1e-9},
		},
		"zero tolerance": {
			&TransformOptions{},
			nil,
			&TransformOptions{},
		},
		"negative tolerance": {
			&TransformOptions{Tolerance: -1e-15},
			ErrNegativeTolerance,
			nil,
		},
		"nan tolerance": {
			&TransformOptions{Tolerance: math.NaN()},
			ErrNegativeTolerance,
			nil,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestNewTransformRegressionInvalidOptions(t *testing.T) {
	_, err := NewTransformRegression(&TransformOptions{Tolerance: -1})
	assert.ErrorIs(t, err, ErrNegativeTolerance)
}

func TestTransformRegression(t *testing.T) {
	source := mustDense(colorChart)

	scaled := mat.DenseCopyOf(source)
	scaled.Scale(2.5, scaled)

	known := mat.NewDense(Dim, Dim, []float64{
		1.21, -0.13, 0.02,
		0.04, 0.97, -0.08,
		-0.02, 0.11, 1.09,
	})
	swap := mat.NewDense(Dim, Dim, []float64{
		0, 0, 1,
		0, 1, 0,
		1, 0, 0,
	})

	testData := map[string]struct {
		target   mat.Matrix
		expected mat.Matrix
	}{
		"identity": {
			target:   source,
			expected: mat.NewDiagDense(Dim, []float64{1, 1, 1}),
		},
		"scaling": {
			target:   scaled,
			expected: mat.NewDiagDense(Dim, []float64{2.5, 2.5, 2.5}),
		},
		"known transform": {
			target:   applyTransform(source, known),
			expected: known,
		},
		"channel swap": {
			target:   applyTransform(source, swap),
			expected: swap,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			model, err := NewTransformRegression(nil)
			require.Nil(t, err)
			require.Nil(t, model.Fit(source, td.target))

			coef := model.Coef()
			m, n := coef.Dims()
			require.Equal(t, Dim, m)
			require.Equal(t, Dim, n)
			for i := 0; i < Dim; i++ {
				assert.InDeltaSlice(t, mat.Row(nil, i, td.expected), coef.RawRowView(i), fitTol, "row %d", i)
			}
			assert.Equal(t, Dim, model.Rank())

			scores, err := model.Score(source, td.target)
			require.Nil(t, err)
			require.Len(t, scores, Dim)
			for _, s := range scores {
				assert.InDelta(t, 1.0, s.R2, fitTol, "r2")
				assert.InDelta(t, 0.0, s.MSE, fitTol, "mse")
			}
		})
	}
}

func TestTransformRegressionNormalEquations(t *testing.T) {
	source, target := generateBenchData(200, 7)

	model, err := NewTransformRegression(nil)
	require.Nil(t, err)
	require.Nil(t, model.Fit(source, target))

	predicted, err := model.Predict(source)
	require.Nil(t, err)

	// least squares residuals are orthogonal to every source column
	var residual, normal mat.Dense
	residual.Sub(target, predicted)
	normal.Mul(source.T(), &residual)
	assert.True(t, floats.EqualApprox(normal.RawMatrix().Data, make([]float64, Dim*Dim), fitTol))

	scores, err := model.Score(source, target)
	require.Nil(t, err)
	for _, s := range scores {
		assert.Greater(t, s.R2, 0.9)
	}
}

func TestTransformRegressionRankDeficient(t *testing.T) {
	// every source point lies on the line through (1, 2, 3)
	source := mat.NewDense(4, Dim, []float64{
		1, 2, 3,
		2, 4, 6,
		-1, -2, -3,
		0.5, 1, 1.5,
	})
	target := mat.NewDense(4, Dim, []float64{
		3, 2, 1,
		6, 4, 2,
		-3, -2, -1,
		1.5, 1, 0.5,
	})

	model, err := NewTransformRegression(&TransformOptions{Tolerance: 1e-9})
	require.Nil(t, err)
	require.Nil(t, model.Fit(source, target))
	assert.Equal(t, 1, model.Rank())

	expected := []float64{
		3, 6, 9,
		2, 4, 6,
		1, 2, 3,
	}
	floats.Scale(1.0/14.0, expected)
	assert.InDeltaSlice(t, expected, model.Coef().RawMatrix().Data, fitTol)
}

func TestSolveDeterministic(t *testing.T) {
	source, target := generateBenchData(50, 3)

	first, err := Solve(source, target)
	require.Nil(t, err)
	second, err := Solve(source, target)
	require.Nil(t, err)

	assert.Equal(t, first.RawMatrix().Data, second.RawMatrix().Data)
}

func TestSolveErrors(t *testing.T) {
	source := mustDense(colorChart)

	testData := map[string]struct {
		source mat.Matrix
		target mat.Matrix
		err    error
	}{
		"nil source": {
			source: nil,
			target: source,
			err:    ErrNoSourceMatrix,
		},
		"nil target": {
			source: source,
			target: nil,
			err:    ErrNoTargetMatrix,
		},
		"row mismatch": {
			source: source,
			target: source.Slice(0, 5, 0, Dim),
			err:    ErrTargetLenMismatch,
		},
		"source not 3d": {
			source: mat.NewDense(6, 2, nil),
			target: source,
			err:    ErrNotTriplet3D,
		},
		"target not 3d": {
			source: source,
			target: mat.NewDense(6, 4, nil),
			err:    ErrNotTriplet3D,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := Solve(td.source, td.target)
			assert.ErrorIs(t, err, td.err)
			assert.Nil(t, res)
		})
	}
}

func TestTransformRegressionNotFit(t *testing.T) {
	model, err := NewTransformRegression(nil)
	require.Nil(t, err)

	assert.Nil(t, model.Coef())

	_, err = model.Predict(mustDense(colorChart))
	assert.ErrorIs(t, err, ErrNotFit)

	_, err = model.Score(mustDense(colorChart), mustDense(colorChart))
	assert.ErrorIs(t, err, ErrNotFit)
}

func TestTransformRegressionPredict(t *testing.T) {
	source := mustDense(colorChart)

	model, err := NewTransformRegression(nil)
	require.Nil(t, err)
	require.Nil(t, model.Fit(source, source))

	_, err = model.Predict(nil)
	assert.ErrorIs(t, err, ErrNoDesignMatrix)

	_, err = model.Predict(mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, ErrFeatureLenMismatch)

	res, err := model.Predict(mat.NewDense(1, Dim, []float64{0.2, 0.4, 0.6}))
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{0.2, 0.4, 0.6}, res.RawRowView(0), fitTol)
}

func TestCoefIsCopy(t *testing.T) {
	source := mustDense(colorChart)

	model, err := NewTransformRegression(nil)
	require.Nil(t, err)
	require.Nil(t, model.Fit(source, source))

	coef := model.Coef()
	coef.Set(0, 0, 100)
	assert.InDelta(t, 1.0, model.Coef().At(0, 0), fitTol)
}
