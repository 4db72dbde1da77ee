package payroll

import (
	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

// WorkerTypeAll selects both payroll populations in a calculation run.
const WorkerTypeAll = "all"

type CalculateRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	WorkerType  string `json:"worker_type"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start is required",
		})
	} else if _, ok := validator.IsValidDate(r.PeriodStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.PeriodEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end is required",
		})
	} else if _, ok := validator.IsValidDate(r.PeriodEnd); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be in YYYY-MM-DD format",
		})
	}

	if r.WorkerType == "" {
		r.WorkerType = WorkerTypeAll
	}
	if !validator.IsInSlice(r.WorkerType, []string{"daily", "regular", WorkerTypeAll}) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_type",
			Message: "worker_type must be one of daily, regular, all",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	start, _ := validator.IsValidDate(r.PeriodStart)
	end, _ := validator.IsValidDate(r.PeriodEnd)
	if end.Before(start) {
		return validator.ValidationErrors{{
			Field:   "period_end",
			Message: "period_end must not be before period_start",
		}}
	}

	return nil
}

type LineItemResponse struct {
	ID              string `json:"id,omitempty"`
	WorkerID        string `json:"worker_id"`
	WorkerName      string `json:"worker_name"`
	WorkerType      string `json:"worker_type"`
	Specialization  string `json:"specialization"`
	TotalDays       int    `json:"total_days"`
	TotalHours      string `json:"total_hours"`
	DailyRate       string `json:"daily_rate"`
	BaseAmount      string `json:"base_amount"`
	BonusAmount     string `json:"bonus_amount"`
	DeductionAmount string `json:"deduction_amount"`
	NetAmount       string `json:"net_amount"`
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
	Status          string `json:"status"`
	PaidAt          *string `json:"paid_at,omitempty"`
}

type CalculateResponse struct {
	PeriodStart string             `json:"period_start"`
	PeriodEnd   string             `json:"period_end"`
	Items       []LineItemResponse `json:"items"`
}

// SaveRequest persists a previously calculated run. Penalties folded into
// the daily items are flagged applied_to_payroll in the same transaction.
type SaveRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	WorkerType  string `json:"worker_type"`
}

func (r *SaveRequest) Validate() error {
	c := CalculateRequest{PeriodStart: r.PeriodStart, PeriodEnd: r.PeriodEnd, WorkerType: r.WorkerType}
	if err := c.Validate(); err != nil {
		return err
	}
	r.WorkerType = c.WorkerType
	return nil
}

type MarkPaidRequest struct {
	IDs []string `json:"ids"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ids",
			Message: "at least one line item id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LineItemFilter struct {
	WorkerID    *string
	WorkerType  *string
	Status      *string
	PeriodStart *string
	PeriodEnd   *string
	Page        int
	Limit       int
}

type ListLineItemsResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Items      []LineItemResponse `json:"items"`
}

// AdjustmentKind selects which adjustment table a request targets.
type AdjustmentKind string

const (
	KindPenalty   AdjustmentKind = "penalty"
	KindDeduction AdjustmentKind = "deduction"
	KindBonus     AdjustmentKind = "bonus"
)

func (k AdjustmentKind) Valid() bool {
	switch k {
	case KindPenalty, KindDeduction, KindBonus:
		return true
	}
	return false
}

type CreateAdjustmentRequest struct {
	Kind     AdjustmentKind `json:"-"`
	WorkerID string         `json:"worker_id"`
	Date     string         `json:"date"`
	Amount   string         `json:"amount"`
	Reason   *string        `json:"reason"`
}

func (r *CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of penalty, deduction, bonus",
		})
	}

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidAmount(r.Amount); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a non-negative amount",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustmentResponse struct {
	ID               string  `json:"id"`
	Kind             string  `json:"kind"`
	WorkerID         string  `json:"worker_id"`
	Date             string  `json:"date"`
	Amount           string  `json:"amount"`
	Reason           *string `json:"reason,omitempty"`
	AppliedToPayroll *bool   `json:"applied_to_payroll,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type AdjustmentFilter struct {
	Kind        AdjustmentKind
	WorkerID    *string
	PeriodStart *string
	PeriodEnd   *string
	Page        int
	Limit       int
}

type ListAdjustmentsResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Adjustments []AdjustmentResponse `json:"adjustments"`
}
