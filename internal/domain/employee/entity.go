package employee

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
)

// Employee is a regular salaried employee, paid a fixed monthly salary
// adjusted by attendance-based deductions.
type Employee struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Position      string
	Department    string
	MonthlySalary decimal.Decimal
	Status        worker.Status
	HireDate      time.Time
	BankName      *string
	AccountNumber *string
	Deleted       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
