package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type distinguishes the two payroll populations: daily-rate workers and
// regular salaried employees.
type Type string

const (
	TypeDaily   Type = "daily"
	TypeRegular Type = "regular"
)

func (t Type) Valid() bool {
	return t == TypeDaily || t == TypeRegular
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// DailyWorker is paid per day worked at a fixed day-rate.
type DailyWorker struct {
	ID             string
	FirstName      string
	LastName       string
	Phone          string
	Specialization string
	DailyRate      decimal.Decimal
	Status         Status
	HireDate       time.Time
	BankName       *string
	AccountNumber  *string
	Notes          *string
	Deleted        bool
	CreatedBy      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (w DailyWorker) FullName() string {
	return w.FirstName + " " + w.LastName
}
