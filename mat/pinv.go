package mat

import (
	"gonum.org/v1/gonum/mat"
)

// PseudoInverse computes the Moore-Penrose pseudo-inverse of a using a thin singular value
// decomposition a = U·Σ·Vᵗ. The result is V·Σ⁺·Uᵗ where every singular value at or below
// eps is treated as zero. eps is an absolute threshold.
func PseudoInverse(a mat.Matrix, eps float64) (*mat.Dense, error) {
	if eps < 0 {
		return nil, ErrNegativeTolerance
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrFactorize
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	// scale each column of V by the inverted singular value
	n, _ := v.Dims()
	for j, sigma := range values {
		inv := 0.0
		if sigma > eps {
			inv = 1.0 / sigma
		}
		for i := 0; i < n; i++ {
			v.Set(i, j, v.At(i, j)*inv)
		}
	}

	var pinv mat.Dense
	pinv.Mul(&v, u.T())
	return &pinv, nil
}

// Rank returns the number of singular values of a strictly greater than eps
func Rank(a mat.Matrix, eps float64) (int, error) {
	if eps < 0 {
		return 0, ErrNegativeTolerance
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDNone); !ok {
		return 0, ErrFactorize
	}

	var rank int
	for _, sigma := range svd.Values(nil) {
		if sigma > eps {
			rank++
		}
	}
	return rank, nil
}
