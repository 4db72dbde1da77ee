package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `
	id, first_name, last_name, phone, specialization, daily_rate, status,
	hire_date, bank_name, account_number, notes, deleted, created_by,
	created_at, updated_at`

// Create implements worker.WorkerRepository.
func (r *workerRepository) Create(ctx context.Context, w worker.DailyWorker) (worker.DailyWorker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_workers (
			first_name, last_name, phone, specialization, daily_rate,
			status, hire_date, bank_name, account_number, notes, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		w.FirstName, w.LastName, w.Phone, w.Specialization, w.DailyRate,
		w.Status, w.HireDate, w.BankName, w.AccountNumber, w.Notes, w.CreatedBy,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)

	if err != nil {
		return worker.DailyWorker{}, fmt.Errorf("failed to create daily worker: %w", err)
	}

	return w, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.DailyWorker, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workerColumns + ` FROM daily_workers WHERE id = $1 AND deleted = FALSE`

	w, err := scanWorker(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.DailyWorker{}, worker.ErrWorkerNotFound
		}
		return worker.DailyWorker{}, fmt.Errorf("failed to get daily worker by ID: %w", err)
	}

	return w, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepository) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.DailyWorker, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "deleted = FALSE"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Specialization != nil && *filter.Specialization != "" {
		baseWhere += fmt.Sprintf(" AND specialization = $%d", argIdx)
		args = append(args, *filter.Specialization)
		argIdx++
	}

	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM daily_workers WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily workers: %w", err)
	}

	query := `SELECT ` + workerColumns + ` FROM daily_workers WHERE ` + baseWhere +
		fmt.Sprintf(" ORDER BY last_name, first_name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list daily workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.DailyWorker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan daily worker: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, total, rows.Err()
}

// ListActive implements worker.WorkerRepository.
func (r *workerRepository) ListActive(ctx context.Context) ([]worker.DailyWorker, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workerColumns + ` FROM daily_workers WHERE status = 'ACTIVE' AND deleted = FALSE ORDER BY last_name, first_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active daily workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.DailyWorker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily worker: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, rows.Err()
}

// Update implements worker.WorkerRepository.
func (r *workerRepository) Update(ctx context.Context, w worker.DailyWorker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE daily_workers SET
			first_name = $2, last_name = $3, phone = $4, specialization = $5,
			daily_rate = $6, status = $7, bank_name = $8, account_number = $9,
			notes = $10, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE
	`

	tag, err := q.Exec(ctx, query,
		w.ID, w.FirstName, w.LastName, w.Phone, w.Specialization,
		w.DailyRate, w.Status, w.BankName, w.AccountNumber, w.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update daily worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

// SoftDelete implements worker.WorkerRepository.
func (r *workerRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE daily_workers SET deleted = TRUE, updated_at = NOW() WHERE id = $1 AND deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete daily worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

func scanWorker(row pgx.Row) (worker.DailyWorker, error) {
	var w worker.DailyWorker
	err := row.Scan(
		&w.ID, &w.FirstName, &w.LastName, &w.Phone, &w.Specialization, &w.DailyRate, &w.Status,
		&w.HireDate, &w.BankName, &w.AccountNumber, &w.Notes, &w.Deleted, &w.CreatedBy,
		&w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}
