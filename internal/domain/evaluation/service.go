package evaluation

import "context"

// EvaluationService defines business logic for performance reviews.
type EvaluationService interface {
	Create(ctx context.Context, req CreateEvaluationRequest) (EvaluationResponse, error)
	List(ctx context.Context, filter EvaluationFilter) (ListEvaluationsResponse, error)
	Get(ctx context.Context, id string) (EvaluationResponse, error)
	Summary(ctx context.Context, year int) ([]WorkerSummary, error)
}
