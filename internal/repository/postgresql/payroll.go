package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sitehr/sitehr-backend-go/internal/domain/payroll"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.LineItemRepository {
	return &payrollRepository{db: db}
}

const lineItemColumns = `
	id, worker_id, worker_name, worker_type, specialization, total_days,
	total_hours, daily_rate, base_amount, bonus_amount, deduction_amount,
	net_amount, period_start, period_end, status, paid_at, paid_by,
	created_at, updated_at`

// Create implements payroll.LineItemRepository.
func (r *payrollRepository) Create(ctx context.Context, item payroll.LineItem) (payroll.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_line_items (
			worker_id, worker_name, worker_type, specialization, total_days,
			total_hours, daily_rate, base_amount, bonus_amount,
			deduction_amount, net_amount, period_start, period_end, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		item.WorkerID, item.WorkerName, item.WorkerType, item.Specialization, item.TotalDays,
		item.TotalHours, item.DailyRate, item.BaseAmount, item.BonusAmount,
		item.DeductionAmount, item.NetAmount, item.PeriodStart, item.PeriodEnd, item.Status,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return payroll.LineItem{}, fmt.Errorf("failed to create payroll line item: %w", err)
	}

	return item, nil
}

// GetByID implements payroll.LineItemRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + lineItemColumns + ` FROM payroll_line_items WHERE id = $1`

	item, err := scanLineItem(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.LineItem{}, payroll.ErrLineItemNotFound
		}
		return payroll.LineItem{}, fmt.Errorf("failed to get payroll line item by ID: %w", err)
	}

	return item, nil
}

// List implements payroll.LineItemRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.LineItemFilter) ([]payroll.LineItem, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		baseWhere += fmt.Sprintf(" AND worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}

	if filter.WorkerType != nil && *filter.WorkerType != "" {
		baseWhere += fmt.Sprintf(" AND worker_type = $%d", argIdx)
		args = append(args, *filter.WorkerType)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.PeriodStart != nil && *filter.PeriodStart != "" {
		baseWhere += fmt.Sprintf(" AND period_start >= $%d", argIdx)
		args = append(args, *filter.PeriodStart)
		argIdx++
	}

	if filter.PeriodEnd != nil && *filter.PeriodEnd != "" {
		baseWhere += fmt.Sprintf(" AND period_end <= $%d", argIdx)
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM payroll_line_items WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll line items: %w", err)
	}

	query := `SELECT ` + lineItemColumns + ` FROM payroll_line_items WHERE ` + baseWhere +
		fmt.Sprintf(" ORDER BY period_start DESC, worker_name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll line items: %w", err)
	}
	defer rows.Close()

	var items []payroll.LineItem
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll line item: %w", err)
		}
		items = append(items, item)
	}

	return items, total, rows.Err()
}

// MarkPaid implements payroll.LineItemRepository.
func (r *payrollRepository) MarkPaid(ctx context.Context, ids []string, paidBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_line_items
		SET status = 'PAID', paid_at = NOW(), paid_by = $2, updated_at = NOW()
		WHERE id = ANY($1) AND status <> 'PAID'
	`

	tag, err := q.Exec(ctx, query, ids, paidBy)
	if err != nil {
		return fmt.Errorf("failed to mark payroll line items paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrLineItemNotFound
	}

	return nil
}

// Delete implements payroll.LineItemRepository.
func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_line_items WHERE id = $1 AND status <> 'PAID'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll line item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrLineItemNotFound
	}

	return nil
}

func scanLineItem(row pgx.Row) (payroll.LineItem, error) {
	var item payroll.LineItem
	err := row.Scan(
		&item.ID, &item.WorkerID, &item.WorkerName, &item.WorkerType, &item.Specialization, &item.TotalDays,
		&item.TotalHours, &item.DailyRate, &item.BaseAmount, &item.BonusAmount, &item.DeductionAmount,
		&item.NetAmount, &item.PeriodStart, &item.PeriodEnd, &item.Status, &item.PaidAt, &item.PaidBy,
		&item.CreatedAt, &item.UpdatedAt,
	)
	return item, err
}
