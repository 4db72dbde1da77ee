package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "LATE"
	StatusHalfDay Status = "HALF_DAY"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// Record is one worker's attendance for one calendar day. There is at most
// one record per (worker_id, date); writes go through an upsert keyed on
// that pair.
type Record struct {
	ID          string
	WorkerID    string
	WorkerType  worker.Type
	SiteID      *string
	Date        time.Time
	CheckIn     *time.Time
	CheckOut    *time.Time
	HoursWorked *decimal.Decimal
	Status      Status
	Notes       *string
	CreatedBy   *string
	UpdatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	WorkerName *string
}
