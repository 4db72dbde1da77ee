package leave

import "context"

// LeaveService defines business logic for leave requests.
type LeaveService interface {
	Create(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)
	List(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)
	Get(ctx context.Context, id string) (RequestResponse, error)

	// Approve and Reject are terminal: a processed request cannot be
	// reviewed again.
	Approve(ctx context.Context, req ReviewRequest) (RequestResponse, error)
	Reject(ctx context.Context, req ReviewRequest) (RequestResponse, error)
}
