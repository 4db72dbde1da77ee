package attendance

import (
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	WorkerID string `json:"worker_id"`
	Date     string `json:"date"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	WorkerID string `json:"worker_id"`
	Date     string `json:"date"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RecordDailyRequest is a manual attendance entry for a daily worker,
// typically filled in by a site supervisor at the end of the day.
type RecordDailyRequest struct {
	WorkerID    string  `json:"worker_id"`
	SiteID      *string `json:"site_id"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	HoursWorked *string `json:"hours_worked"`
	Notes       *string `json:"notes"`
}

func (r *RecordDailyRequest) Validate() error {
	var errs validator.ValidationErrors

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

	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PRESENT, ABSENT, LATE, HALF_DAY",
		})
	}

	if r.HoursWorked != nil {
		if _, ok := validator.IsValidAmount(*r.HoursWorked); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hours_worked",
				Message: "hours_worked must be a non-negative number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ImportRecord is one row of a bulk attendance import. CheckIn and CheckOut
// are clock times ("HH:MM"); the date carries the day.
type ImportRecord struct {
	WorkerID string  `json:"worker_id"`
	Date     string  `json:"date"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Status   *string `json:"status"`
}

type ImportRequest struct {
	Records []ImportRecord `json:"records"`
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Records) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "records",
			Message: "at least one record is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ImportResult reports the per-record outcome of a bulk import. Partial
// success is normal; errors count rows that were skipped.
type ImportResult struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Errors   int `json:"errors"`
}

type UpdateRecordRequest struct {
	ID          string  `json:"-"`
	CheckIn     *string `json:"check_in"`
	CheckOut    *string `json:"check_out"`
	Status      *string `json:"status"`
	HoursWorked *string `json:"hours_worked"`
	Notes       *string `json:"notes"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PRESENT, ABSENT, LATE, HALF_DAY",
		})
	}

	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an ISO8601 timestamp",
			})
		}
	}

	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an ISO8601 timestamp",
			})
		}
	}

	if r.HoursWorked != nil {
		if _, ok := validator.IsValidAmount(*r.HoursWorked); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hours_worked",
				Message: "hours_worked must be a non-negative number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordFilter struct {
	WorkerID   *string
	WorkerType *worker.Type
	Status     *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

type RecordResponse struct {
	ID          string  `json:"id"`
	WorkerID    string  `json:"worker_id"`
	WorkerType  string  `json:"worker_type"`
	WorkerName  *string `json:"worker_name,omitempty"`
	SiteID      *string `json:"site_id,omitempty"`
	Date        string  `json:"date"`
	CheckIn     *string `json:"check_in,omitempty"`
	CheckOut    *string `json:"check_out,omitempty"`
	HoursWorked *string `json:"hours_worked,omitempty"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Records    []RecordResponse `json:"records"`
}
