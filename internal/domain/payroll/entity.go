package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
)

// LineItemStatus enum
type LineItemStatus string

const (
	StatusCalculated LineItemStatus = "CALCULATED"
	StatusPending    LineItemStatus = "PENDING"
	StatusPaid       LineItemStatus = "PAID"
)

// LineItem is one worker's pay for one period. Derived on demand by the
// calculator; persisted only when an operator saves a payroll run.
//
// Invariant: NetAmount = BaseAmount + BonusAmount - DeductionAmount.
type LineItem struct {
	ID              string
	WorkerID        string
	WorkerName      string
	WorkerType      worker.Type
	Specialization  string
	TotalDays       int
	TotalHours      decimal.Decimal
	DailyRate       decimal.Decimal
	BaseAmount      decimal.Decimal
	BonusAmount     decimal.Decimal
	DeductionAmount decimal.Decimal
	NetAmount       decimal.Decimal
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Status          LineItemStatus
	PaidAt          *time.Time
	PaidBy          *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Penalty is a monetary penalty against a daily worker, folded into the
// next payroll run that covers its date and flagged once consumed.
type Penalty struct {
	ID               string
	WorkerID         string
	Date             time.Time
	Amount           decimal.Decimal
	Reason           *string
	AppliedToPayroll bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Deduction is a non-attendance deduction against a salaried employee.
type Deduction struct {
	ID        string
	WorkerID  string
	Date      time.Time
	Amount    decimal.Decimal
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bonus is a one-off bonus for a salaried employee.
type Bonus struct {
	ID        string
	WorkerID  string
	Date      time.Time
	Amount    decimal.Decimal
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
