package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sitehr/sitehr-backend-go/internal/domain/task"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}

// Create implements task.TaskRepository. The task row and its assignments
// are written in one transaction.
func (r *taskRepository) Create(ctx context.Context, t task.Task, assigneeIDs []string) (task.Task, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `
			INSERT INTO tasks (title, description, link, priority, status, due_date, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`

		if err := q.QueryRow(ctx, query,
			t.Title, t.Description, t.Link, t.Priority, t.Status, t.DueDate, t.CreatedBy,
		).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		for _, employeeID := range assigneeIDs {
			var a task.Assignment
			a.TaskID = t.ID
			a.EmployeeID = employeeID
			if err := q.QueryRow(ctx,
				`INSERT INTO task_assignments (task_id, employee_id) VALUES ($1, $2) RETURNING assigned_at`,
				t.ID, employeeID,
			).Scan(&a.AssignedAt); err != nil {
				return fmt.Errorf("failed to assign task: %w", err)
			}
			t.Assignees = append(t.Assignees, a)
		}

		return nil
	})
	if err != nil {
		return task.Task{}, err
	}

	return t, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, description, link, priority, status, due_date, created_by, created_at, updated_at
		FROM tasks WHERE id = $1
	`

	var t task.Task
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Link, &t.Priority, &t.Status,
		&t.DueDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task by ID: %w", err)
	}

	assignees, err := r.listAssignees(ctx, []string{t.ID})
	if err != nil {
		return task.Task{}, err
	}
	t.Assignees = assignees[t.ID]

	return t, nil
}

// List implements task.TaskRepository.
func (r *taskRepository) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Priority != nil && *filter.Priority != "" {
		baseWhere += fmt.Sprintf(" AND t.priority = $%d", argIdx)
		args = append(args, *filter.Priority)
		argIdx++
	}

	if filter.AssigneeID != nil && *filter.AssigneeID != "" {
		baseWhere += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM task_assignments ta WHERE ta.task_id = t.id AND ta.employee_id = $%d)", argIdx)
		args = append(args, *filter.AssigneeID)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM tasks t WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := `
		SELECT t.id, t.title, t.description, t.link, t.priority, t.status,
			t.due_date, t.created_by, t.created_at, t.updated_at
		FROM tasks t
		WHERE ` + baseWhere +
		fmt.Sprintf(" ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	var taskIDs []string
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Link, &t.Priority, &t.Status,
			&t.DueDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
		taskIDs = append(taskIDs, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(taskIDs) > 0 {
		assignees, err := r.listAssignees(ctx, taskIDs)
		if err != nil {
			return nil, 0, err
		}
		for i := range tasks {
			tasks[i].Assignees = assignees[tasks[i].ID]
		}
	}

	return tasks, total, nil
}

// UpdateStatus implements task.TaskRepository.
func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status task.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// CountOpen implements task.TaskRepository.
func (r *taskRepository) CountOpen(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE status <> 'DONE'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count open tasks: %w", err)
	}

	return count, nil
}

func (r *taskRepository) listAssignees(ctx context.Context, taskIDs []string) (map[string][]task.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ta.task_id, ta.employee_id, ta.assigned_at,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM task_assignments ta
		LEFT JOIN employees e ON e.id = ta.employee_id
		WHERE ta.task_id = ANY($1)
		ORDER BY ta.assigned_at
	`

	rows, err := q.Query(ctx, query, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list task assignees: %w", err)
	}
	defer rows.Close()

	assignees := make(map[string][]task.Assignment)
	for rows.Next() {
		var a task.Assignment
		if err := rows.Scan(&a.TaskID, &a.EmployeeID, &a.AssignedAt, &a.EmployeeName); err != nil {
			return nil, fmt.Errorf("failed to scan task assignee: %w", err)
		}
		assignees[a.TaskID] = append(assignees[a.TaskID], a)
	}

	return assignees, rows.Err()
}
