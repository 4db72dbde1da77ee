package evaluation

import (
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

type CreateEvaluationRequest struct {
	WorkerID     string  `json:"worker_id"`
	WorkerType   string  `json:"worker_type"`
	PeriodMonth  int     `json:"period_month"`
	PeriodYear   int     `json:"period_year"`
	Quality      int     `json:"quality"`
	Productivity int     `json:"productivity"`
	Punctuality  int     `json:"punctuality"`
	Teamwork     int     `json:"teamwork"`
	Comments     *string `json:"comments"`
}

func (r *CreateEvaluationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if !worker.Type(r.WorkerType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_type",
			Message: "worker_type must be daily or regular",
		})
	}

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "period_month",
			Message: "period_month must be between 1 and 12",
		})
	}

	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "period_year",
			Message: "period_year is out of range",
		})
	}

	scores := []struct {
		field string
		value int
	}{
		{"quality", r.Quality},
		{"productivity", r.Productivity},
		{"punctuality", r.Punctuality},
		{"teamwork", r.Teamwork},
	}
	for _, s := range scores {
		if s.value < 1 || s.value > 5 {
			errs = append(errs, validator.ValidationError{
				Field:   s.field,
				Message: s.field + " must be between 1 and 5",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EvaluationFilter struct {
	WorkerID    *string
	WorkerType  *string
	PeriodYear  *int
	PeriodMonth *int
	Page        int
	Limit       int
}

type EvaluationResponse struct {
	ID            string  `json:"id"`
	WorkerID      string  `json:"worker_id"`
	WorkerType    string  `json:"worker_type"`
	WorkerName    *string `json:"worker_name,omitempty"`
	EvaluatorID   string  `json:"evaluator_id"`
	PeriodMonth   int     `json:"period_month"`
	PeriodYear    int     `json:"period_year"`
	Quality       int     `json:"quality"`
	Productivity  int     `json:"productivity"`
	Punctuality   int     `json:"punctuality"`
	Teamwork      int     `json:"teamwork"`
	OverallRating string  `json:"overall_rating"`
	Comments      *string `json:"comments,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type ListEvaluationsResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Evaluations []EvaluationResponse `json:"evaluations"`
}

// WorkerSummary aggregates a worker's ratings over a year.
type WorkerSummary struct {
	WorkerID      string  `json:"worker_id"`
	WorkerName    *string `json:"worker_name,omitempty"`
	Evaluations   int     `json:"evaluations"`
	AverageRating string  `json:"average_rating"`
}
