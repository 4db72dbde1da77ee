package task

import "context"

// TaskService defines business logic for task assignment.
type TaskService interface {
	// Create stores the task with its assignments and notifies each
	// assignee's user account.
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)

	List(ctx context.Context, filter TaskFilter) (ListTasksResponse, error)
	Get(ctx context.Context, id string) (TaskResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (TaskResponse, error)
}
