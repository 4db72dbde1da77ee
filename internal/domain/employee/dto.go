package employee

import (
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Position      string  `json:"position"`
	Department    string  `json:"department"`
	MonthlySalary string  `json:"monthly_salary"`
	Status        string  `json:"status"`
	HireDate      string  `json:"hire_date"`
	BankName      *string `json:"bank_name"`
	AccountNumber *string `json:"account_number"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	required := []struct{ field, value string }{
		{"first_name", r.FirstName},
		{"last_name", r.LastName},
		{"email", r.Email},
		{"position", r.Position},
		{"monthly_salary", r.MonthlySalary},
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

	if !validator.IsEmpty(r.Email) && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if !validator.IsEmpty(r.MonthlySalary) {
		if _, ok := validator.IsValidAmount(r.MonthlySalary); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "monthly_salary",
				Message: "monthly_salary must be a non-negative amount",
			})
		}
	}

	if !validator.IsEmpty(r.Status) && !worker.Status(r.Status).Valid() {
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

type UpdateEmployeeRequest struct {
	ID            string  `json:"-"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Position      *string `json:"position"`
	Department    *string `json:"department"`
	MonthlySalary *string `json:"monthly_salary"`
	Status        *string `json:"status"`
	BankName      *string `json:"bank_name"`
	AccountNumber *string `json:"account_number"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if r.MonthlySalary != nil {
		if _, ok := validator.IsValidAmount(*r.MonthlySalary); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "monthly_salary",
				Message: "monthly_salary must be a non-negative amount",
			})
		}
	}

	if r.Status != nil && !worker.Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be ACTIVE or INACTIVE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	Status     *string
	Department *string
	Search     *string
	Page       int
	Limit      int
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Position      string  `json:"position"`
	Department    string  `json:"department"`
	MonthlySalary string  `json:"monthly_salary"`
	Status        string  `json:"status"`
	HireDate      string  `json:"hire_date"`
	BankName      *string `json:"bank_name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}
