package payroll

import (
	"context"
	"time"
)

// LineItemRepository defines data access methods for saved payroll runs.
type LineItemRepository interface {
	Create(ctx context.Context, item LineItem) (LineItem, error)
	GetByID(ctx context.Context, id string) (LineItem, error)
	List(ctx context.Context, filter LineItemFilter) ([]LineItem, int64, error)
	MarkPaid(ctx context.Context, ids []string, paidBy string) error
	Delete(ctx context.Context, id string) error
}

// AdjustmentRepository defines data access for penalty, deduction and bonus
// records. Period bounds are inclusive calendar dates.
type AdjustmentRepository interface {
	CreatePenalty(ctx context.Context, p Penalty) (Penalty, error)
	ListPenalties(ctx context.Context, workerID string, periodStart, periodEnd time.Time, unappliedOnly bool) ([]Penalty, error)
	MarkPenaltiesApplied(ctx context.Context, ids []string) error

	CreateDeduction(ctx context.Context, d Deduction) (Deduction, error)
	ListDeductions(ctx context.Context, workerID string, periodStart, periodEnd time.Time) ([]Deduction, error)

	CreateBonus(ctx context.Context, b Bonus) (Bonus, error)
	ListBonuses(ctx context.Context, workerID string, periodStart, periodEnd time.Time) ([]Bonus, error)

	ListAdjustments(ctx context.Context, filter AdjustmentFilter) ([]AdjustmentResponse, int64, error)
	DeleteAdjustment(ctx context.Context, kind AdjustmentKind, id string) error
}
