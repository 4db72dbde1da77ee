package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/notification"
	"github.com/sitehr/sitehr-backend-go/internal/domain/task"
	"github.com/sitehr/sitehr-backend-go/internal/domain/user"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type TaskServiceImpl struct {
	db *database.DB
	task.TaskRepository
	employeeRepo        employee.EmployeeRepository
	userRepo            user.UserRepository
	notificationService notification.NotificationService
	logger              *slog.Logger
}

func NewTaskService(
	db *database.DB,
	taskRepo task.TaskRepository,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	notificationService notification.NotificationService,
	logger *slog.Logger,
) task.TaskService {
	return &TaskServiceImpl{
		db:                  db,
		TaskRepository:      taskRepo,
		employeeRepo:        employeeRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	for _, employeeID := range req.Assignees {
		if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
			return task.TaskResponse{}, err
		}
	}

	createdBy := ""
	if userID := userIDFromClaims(ctx); userID != nil {
		createdBy = *userID
	}

	t := task.Task{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Priority:    task.Priority(req.Priority),
		Status:      task.Status(req.Status),
		CreatedBy:   createdBy,
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return task.TaskResponse{}, fmt.Errorf("failed to parse due_date: %w", err)
		}
		t.DueDate = &due
	}

	stored, err := s.TaskRepository.Create(ctx, t, req.Assignees)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.notifyAssignees(ctx, stored)

	return toTaskResponse(stored), nil
}

// List implements task.TaskService.
func (s *TaskServiceImpl) List(ctx context.Context, filter task.TaskFilter) (task.ListTasksResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	tasks, total, err := s.TaskRepository.List(ctx, filter)
	if err != nil {
		return task.ListTasksResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	resp := task.ListTasksResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Tasks:      make([]task.TaskResponse, 0, len(tasks)),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}

	return resp, nil
}

// Get implements task.TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, id string) (task.TaskResponse, error) {
	t, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}

	return toTaskResponse(t), nil
}

// UpdateStatus implements task.TaskService.
func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, req task.UpdateStatusRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	if err := s.TaskRepository.UpdateStatus(ctx, req.ID, task.Status(req.Status)); err != nil {
		return task.TaskResponse{}, err
	}

	t, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	return toTaskResponse(t), nil
}

// notifyAssignees pushes a notification to each assignee's user account.
// Failures are logged and swallowed.
func (s *TaskServiceImpl) notifyAssignees(ctx context.Context, t task.Task) {
	for _, a := range t.Assignees {
		e, err := s.employeeRepo.GetByID(ctx, a.EmployeeID)
		if err != nil {
			continue
		}

		u, err := s.userRepo.GetByEmail(ctx, e.Email)
		if err != nil {
			continue
		}

		message := fmt.Sprintf("You were assigned the %s priority task %q.", t.Priority, t.Title)
		if err := s.notificationService.Notify(ctx, u.ID, "New task assigned", message, notification.TypeTask, t.Link); err != nil {
			s.logger.Warn("failed to notify task assignee",
				slog.String("task_id", t.ID),
				slog.String("employee_id", a.EmployeeID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func userIDFromClaims(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return &userID
	}
	return nil
}

func toTaskResponse(t task.Task) task.TaskResponse {
	resp := task.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Link:        t.Link,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedBy:   t.CreatedBy,
		Assignees:   make([]task.AssigneeResponse, 0, len(t.Assignees)),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		v := t.DueDate.Format("2006-01-02")
		resp.DueDate = &v
	}
	for _, a := range t.Assignees {
		resp.Assignees = append(resp.Assignees, task.AssigneeResponse{
			EmployeeID:   a.EmployeeID,
			EmployeeName: a.EmployeeName,
			AssignedAt:   a.AssignedAt.Format(time.RFC3339),
		})
	}
	return resp
}
