package worker

import "context"

// WorkerService defines business logic for daily worker administration.
type WorkerService interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	Get(ctx context.Context, id string) (WorkerResponse, error)
	List(ctx context.Context, filter WorkerFilter) (ListWorkersResponse, error)
	Update(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)
	Delete(ctx context.Context, id string) error

	// Import creates workers in bulk from pre-parsed rows. Invalid rows are
	// counted, not fatal.
	Import(ctx context.Context, rows []CreateWorkerRequest) (ImportWorkersResult, error)
}
