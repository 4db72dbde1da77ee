package site

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPlanning   Status = "PLANNING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusOnHold     Status = "ON_HOLD"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled:
		return true
	}
	return false
}

// ConstructionSite is a project location workers report to. Daily
// attendance entries may reference one.
type ConstructionSite struct {
	ID               string
	Name             string
	Location         string
	ClientName       string
	StartDate        time.Time
	ExpectedEndDate  time.Time
	ActualEndDate    *time.Time
	Status           Status
	Budget           decimal.Decimal
	ProjectManagerID *string
	Description      *string
	Progress         int
	Deleted          bool
	CreatedBy        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	ProjectManagerName *string
}
