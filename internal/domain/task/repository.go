package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t Task, assigneeIDs []string) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	List(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	CountOpen(ctx context.Context) (int, error)
}
