package linearmodel

import "errors"

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNegativeTolerance  = errors.New("tolerance must be a non-negative number")
	ErrNoSourceMatrix     = errors.New("no source matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrNotFit             = errors.New("model has not been fit")
	ErrNotTriplet3D       = errors.New("matrix must have exactly 3 columns")
	ErrTargetLenMismatch  = errors.New("target length does not match source rows")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
	ErrResLenMismatch     = errors.New("predicted and actual have different lengths")
)
