package task

import (
	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        *string  `json:"link"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	DueDate     *string  `json:"due_date"`
	Assignees   []string `json:"assignees"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if !Priority(r.Priority).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of LOW, MEDIUM, HIGH",
		})
	}

	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of TODO, IN_PROGRESS, DONE",
		})
	}

	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(r.Assignees) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "assignees",
			Message: "at least one assignee is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of TODO, IN_PROGRESS, DONE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TaskFilter struct {
	Status     *string
	Priority   *string
	AssigneeID *string
	Page       int
	Limit      int
}

type AssigneeResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	AssignedAt   string  `json:"assigned_at"`
}

type TaskResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Link        *string            `json:"link,omitempty"`
	Priority    string             `json:"priority"`
	Status      string             `json:"status"`
	DueDate     *string            `json:"due_date,omitempty"`
	CreatedBy   string             `json:"created_by"`
	Assignees   []AssigneeResponse `json:"assignees"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
}

type ListTasksResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Tasks      []TaskResponse `json:"tasks"`
}
