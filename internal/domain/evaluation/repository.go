package evaluation

import "context"

type EvaluationRepository interface {
	Create(ctx context.Context, e Evaluation) (Evaluation, error)
	GetByID(ctx context.Context, id string) (Evaluation, error)
	GetByWorkerAndPeriod(ctx context.Context, workerID string, month, year int) (*Evaluation, error)
	List(ctx context.Context, filter EvaluationFilter) ([]Evaluation, int64, error)
	Summary(ctx context.Context, year int) ([]WorkerSummary, error)
}
