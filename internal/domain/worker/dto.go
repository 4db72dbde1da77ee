package worker

import (
	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Phone          string  `json:"phone"`
	Specialization string  `json:"specialization"`
	DailyRate      string  `json:"daily_rate"`
	Status         string  `json:"status"`
	HireDate       string  `json:"hire_date"`
	BankName       *string `json:"bank_name"`
	AccountNumber  *string `json:"account_number"`
	Notes          *string `json:"notes"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	required := []struct{ field, value string }{
		{"first_name", r.FirstName},
		{"last_name", r.LastName},
		{"phone", r.Phone},
		{"specialization", r.Specialization},
		{"daily_rate", r.DailyRate},
		{"status", r.Status},
		{"hire_date", r.HireDate},
	}
	for _, f := range required {
		if validator.IsEmpty(f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: f.field + " is required",
			})
		}
	}

	if !validator.IsEmpty(r.Phone) && !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone number is invalid",
		})
	}

	if !validator.IsEmpty(r.DailyRate) {
		if _, ok := validator.IsValidAmount(r.DailyRate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "daily_rate",
				Message: "daily_rate must be a non-negative amount",
			})
		}
	}

	if !validator.IsEmpty(r.Status) && !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be ACTIVE or INACTIVE",
		})
	}

	if !validator.IsEmpty(r.HireDate) {
		if _, ok := validator.IsValidDate(r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorkerRequest struct {
	ID             string  `json:"-"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Phone          *string `json:"phone"`
	Specialization *string `json:"specialization"`
	DailyRate      *string `json:"daily_rate"`
	Status         *string `json:"status"`
	BankName       *string `json:"bank_name"`
	AccountNumber  *string `json:"account_number"`
	Notes          *string `json:"notes"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DailyRate != nil {
		if _, ok := validator.IsValidAmount(*r.DailyRate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "daily_rate",
				Message: "daily_rate must be a non-negative amount",
			})
		}
	}

	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be ACTIVE or INACTIVE",
		})
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone number is invalid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkerFilter struct {
	Status         *string
	Specialization *string
	Search         *string
	Page           int
	Limit          int
}

type WorkerResponse struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Phone          string  `json:"phone"`
	Specialization string  `json:"specialization"`
	DailyRate      string  `json:"daily_rate"`
	Status         string  `json:"status"`
	HireDate       string  `json:"hire_date"`
	BankName       *string `json:"bank_name,omitempty"`
	AccountNumber  *string `json:"account_number,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type ListWorkersResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Workers    []WorkerResponse `json:"workers"`
}

// ImportWorkersResult summarizes a bulk worker import.
type ImportWorkersResult struct {
	Imported int `json:"imported"`
	Errors   int `json:"errors"`
}
