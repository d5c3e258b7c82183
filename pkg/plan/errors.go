package plan

import "errors"

var (
	ErrFailedToLoadPlans = errors.New("failed to load plan catalogue")
	ErrInvalidCatalog    = errors.New("invalid plan catalogue configuration")
	ErrMissingFreePlan   = errors.New("catalogue must define a free plan")
)
