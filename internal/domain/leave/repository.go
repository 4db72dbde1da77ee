package leave

import "context"

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)
	Update(ctx context.Context, req Request) error
	CountPending(ctx context.Context) (int, error)
}
