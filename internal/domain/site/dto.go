package site

import (
	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

type CreateSiteRequest struct {
	Name             string  `json:"name"`
	Location         string  `json:"location"`
	ClientName       string  `json:"client_name"`
	StartDate        string  `json:"start_date"`
	ExpectedEndDate  string  `json:"expected_end_date"`
	ActualEndDate    *string `json:"actual_end_date"`
	Status           string  `json:"status"`
	Budget           string  `json:"budget"`
	ProjectManagerID *string `json:"project_manager_id"`
	Description      *string `json:"description"`
	Progress         *int    `json:"progress"`
}

func (r *CreateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	required := []struct{ field, value string }{
		{"name", r.Name},
		{"location", r.Location},
		{"client_name", r.ClientName},
		{"start_date", r.StartDate},
		{"expected_end_date", r.ExpectedEndDate},
		{"status", r.Status},
		{"budget", r.Budget},
	}
	for _, f := range required {
		if validator.IsEmpty(f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: f.field + " is required",
			})
		}
	}

	for _, d := range []struct {
		field string
		value string
	}{
		{"start_date", r.StartDate},
		{"expected_end_date", r.ExpectedEndDate},
	} {
		if !validator.IsEmpty(d.value) {
			if _, ok := validator.IsValidDate(d.value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   d.field,
					Message: d.field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if r.ActualEndDate != nil {
		if _, ok := validator.IsValidDate(*r.ActualEndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "actual_end_date",
				Message: "actual_end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if !validator.IsEmpty(r.Status) && !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PLANNING, IN_PROGRESS, COMPLETED, ON_HOLD, CANCELLED",
		})
	}

	if !validator.IsEmpty(r.Budget) {
		if _, ok := validator.IsValidAmount(r.Budget); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "budget",
				Message: "budget must be a non-negative amount",
			})
		}
	}

	if r.Progress != nil && (*r.Progress < 0 || *r.Progress > 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "progress",
			Message: "progress must be between 0 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateSiteRequest struct {
	ID               string  `json:"-"`
	Name             *string `json:"name"`
	Location         *string `json:"location"`
	ClientName       *string `json:"client_name"`
	ExpectedEndDate  *string `json:"expected_end_date"`
	ActualEndDate    *string `json:"actual_end_date"`
	Status           *string `json:"status"`
	Budget           *string `json:"budget"`
	ProjectManagerID *string `json:"project_manager_id"`
	Description      *string `json:"description"`
	Progress         *int    `json:"progress"`
}

func (r *UpdateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PLANNING, IN_PROGRESS, COMPLETED, ON_HOLD, CANCELLED",
		})
	}

	if r.Budget != nil {
		if _, ok := validator.IsValidAmount(*r.Budget); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "budget",
				Message: "budget must be a non-negative amount",
			})
		}
	}

	for _, d := range []struct {
		field string
		value *string
	}{
		{"expected_end_date", r.ExpectedEndDate},
		{"actual_end_date", r.ActualEndDate},
	} {
		if d.value != nil {
			if _, ok := validator.IsValidDate(*d.value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   d.field,
					Message: d.field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if r.Progress != nil && (*r.Progress < 0 || *r.Progress > 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "progress",
			Message: "progress must be between 0 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SiteFilter struct {
	Status *string
	Search *string
	Page   int
	Limit  int
}

type SiteResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Location           string  `json:"location"`
	ClientName         string  `json:"client_name"`
	StartDate          string  `json:"start_date"`
	ExpectedEndDate    string  `json:"expected_end_date"`
	ActualEndDate      *string `json:"actual_end_date,omitempty"`
	Status             string  `json:"status"`
	Budget             string  `json:"budget"`
	ProjectManagerID   *string `json:"project_manager_id,omitempty"`
	ProjectManagerName *string `json:"project_manager_name,omitempty"`
	Description        *string `json:"description,omitempty"`
	Progress           int     `json:"progress"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type ListSitesResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Sites      []SiteResponse `json:"sites"`
}
