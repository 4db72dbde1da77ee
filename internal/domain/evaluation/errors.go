package evaluation

import "errors"

var (
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrDuplicatePeriod    = errors.New("worker already evaluated for this period")
)
