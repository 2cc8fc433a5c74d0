package linearmodel

import (
	"math/rand/v2"

	mat_ "github.com/aouyang1/go-solvematrix/mat"
	"gonum.org/v1/gonum/mat"
)

// colorChart holds paired chart samples used across tests
var colorChart = [][]float64{
	{0.535, 0.382, 0.344},
	{0.472, 0.510, 0.434},
	{0.371, 0.388, 0.476},
	{0.476, 0.525, 0.557},
	{0.574, 0.474, 0.516},
	{0.631, 0.597, 0.463},
}

func mustDense(x [][]float64) *mat.Dense {
	mx, err := mat_.NewDenseFromArray(x)
	if err != nil {
		panic(err)
	}
	return mx
}

// applyTransform returns x·rᵗ so that each row is r applied to the source row
func applyTransform(x mat.Matrix, r mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Mul(x, r.T())
	return &out
}

func generateBenchData(nObs int, seed uint64) (mat.Matrix, mat.Matrix) {
	rng := rand.New(rand.NewPCG(seed, seed+1))

	data := make([]float64, nObs*Dim)
	for i := range data {
		data[i] = rng.Float64()
	}
	source := mat.NewDense(nObs, Dim, data)

	r := mat.NewDense(Dim, Dim, []float64{
		1.21, -0.13, 0.02,
		0.04, 0.97, -0.08,
		-0.02, 0.11, 1.09,
	})
	target := applyTransform(source, r)
	for i := 0; i < nObs; i++ {
		for j := 0; j < Dim; j++ {
			target.Set(i, j, target.At(i, j)+0.01*rng.NormFloat64())
		}
	}
	return source, target
}
