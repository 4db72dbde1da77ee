package worker

import "context"

type WorkerRepository interface {
	Create(ctx context.Context, w DailyWorker) (DailyWorker, error)
	GetByID(ctx context.Context, id string) (DailyWorker, error)
	List(ctx context.Context, filter WorkerFilter) ([]DailyWorker, int64, error)
	ListActive(ctx context.Context) ([]DailyWorker, error)
	Update(ctx context.Context, w DailyWorker) error
	SoftDelete(ctx context.Context, id string) error
}
