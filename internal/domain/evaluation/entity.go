package evaluation

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
)

// Evaluation is a monthly performance review of a worker or employee.
// Scores are 1..5; OverallRating is the mean of the four, 2 decimal places.
type Evaluation struct {
	ID            string
	WorkerID      string
	WorkerType    worker.Type
	EvaluatorID   string
	PeriodMonth   int
	PeriodYear    int
	Quality       int
	Productivity  int
	Punctuality   int
	Teamwork      int
	OverallRating decimal.Decimal
	Comments      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	WorkerName *string
}

// Rating computes the mean of the four scores, rounded to 2 decimal places.
func Rating(quality, productivity, punctuality, teamwork int) decimal.Decimal {
	sum := decimal.NewFromInt(int64(quality + productivity + punctuality + teamwork))
	return sum.Div(decimal.NewFromInt(4)).Round(2)
}
