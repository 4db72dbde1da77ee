package worker

import "errors"

var (
	ErrWorkerNotFound = errors.New("daily worker not found")
)
