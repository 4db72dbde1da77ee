package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitehr/sitehr-backend-go/internal/domain/payroll"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) payroll.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

// CreatePenalty implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) CreatePenalty(ctx context.Context, p payroll.Penalty) (payroll.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO worker_penalties (worker_id, date, amount, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, applied_to_payroll, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, p.WorkerID, p.Date, p.Amount, p.Reason).
		Scan(&p.ID, &p.AppliedToPayroll, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return payroll.Penalty{}, fmt.Errorf("failed to create penalty: %w", err)
	}

	return p, nil
}

// ListPenalties implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) ListPenalties(ctx context.Context, workerID string, periodStart, periodEnd time.Time, unappliedOnly bool) ([]payroll.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, date, amount, reason, applied_to_payroll, created_at, updated_at
		FROM worker_penalties
		WHERE worker_id = $1 AND date >= $2 AND date <= $3
	`
	if unappliedOnly {
		query += " AND applied_to_payroll = FALSE"
	}
	query += " ORDER BY date"

	rows, err := q.Query(ctx, query, workerID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalties: %w", err)
	}
	defer rows.Close()

	var penalties []payroll.Penalty
	for rows.Next() {
		var p payroll.Penalty
		if err := rows.Scan(&p.ID, &p.WorkerID, &p.Date, &p.Amount, &p.Reason, &p.AppliedToPayroll, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan penalty: %w", err)
		}
		penalties = append(penalties, p)
	}

	return penalties, rows.Err()
}

// MarkPenaltiesApplied implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) MarkPenaltiesApplied(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE worker_penalties SET applied_to_payroll = TRUE, updated_at = NOW() WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("failed to mark penalties applied: %w", err)
	}

	return nil
}

// CreateDeduction implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) CreateDeduction(ctx context.Context, d payroll.Deduction) (payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_deductions (worker_id, date, amount, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, d.WorkerID, d.Date, d.Amount, d.Reason).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return payroll.Deduction{}, fmt.Errorf("failed to create deduction: %w", err)
	}

	return d, nil
}

// ListDeductions implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) ListDeductions(ctx context.Context, workerID string, periodStart, periodEnd time.Time) ([]payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, date, amount, reason, created_at, updated_at
		FROM employee_deductions
		WHERE worker_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, workerID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	defer rows.Close()

	var deductions []payroll.Deduction
	for rows.Next() {
		var d payroll.Deduction
		if err := rows.Scan(&d.ID, &d.WorkerID, &d.Date, &d.Amount, &d.Reason, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		deductions = append(deductions, d)
	}

	return deductions, rows.Err()
}

// CreateBonus implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) CreateBonus(ctx context.Context, b payroll.Bonus) (payroll.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_bonuses (worker_id, date, amount, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, b.WorkerID, b.Date, b.Amount, b.Reason).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return payroll.Bonus{}, fmt.Errorf("failed to create bonus: %w", err)
	}

	return b, nil
}

// ListBonuses implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) ListBonuses(ctx context.Context, workerID string, periodStart, periodEnd time.Time) ([]payroll.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, date, amount, reason, created_at, updated_at
		FROM employee_bonuses
		WHERE worker_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, workerID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []payroll.Bonus
	for rows.Next() {
		var b payroll.Bonus
		if err := rows.Scan(&b.ID, &b.WorkerID, &b.Date, &b.Amount, &b.Reason, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		bonuses = append(bonuses, b)
	}

	return bonuses, rows.Err()
}

var adjustmentTables = map[payroll.AdjustmentKind]string{
	payroll.KindPenalty:   "worker_penalties",
	payroll.KindDeduction: "employee_deductions",
	payroll.KindBonus:     "employee_bonuses",
}

// ListAdjustments implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) ListAdjustments(ctx context.Context, filter payroll.AdjustmentFilter) ([]payroll.AdjustmentResponse, int64, error) {
	q := GetQuerier(ctx, r.db)

	table, ok := adjustmentTables[filter.Kind]
	if !ok {
		return nil, 0, payroll.ErrAdjustmentNotFound
	}

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		baseWhere += fmt.Sprintf(" AND worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}

	if filter.PeriodStart != nil && *filter.PeriodStart != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.PeriodStart)
		argIdx++
	}

	if filter.PeriodEnd != nil && *filter.PeriodEnd != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+table+" WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count adjustments: %w", err)
	}

	applied := "NULL::boolean"
	if filter.Kind == payroll.KindPenalty {
		applied = "applied_to_payroll"
	}

	query := fmt.Sprintf(
		"SELECT id, worker_id, date, amount, reason, %s, created_at FROM %s WHERE %s ORDER BY date DESC LIMIT $%d OFFSET $%d",
		applied, table, baseWhere, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []payroll.AdjustmentResponse
	for rows.Next() {
		var (
			a       payroll.AdjustmentResponse
			date    time.Time
			amount  decimal.Decimal
			created time.Time
		)
		if err := rows.Scan(&a.ID, &a.WorkerID, &date, &amount, &a.Reason, &a.AppliedToPayroll, &created); err != nil {
			return nil, 0, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		a.Kind = string(filter.Kind)
		a.Date = date.Format("2006-01-02")
		a.Amount = amount.String()
		a.CreatedAt = created.Format(time.RFC3339)
		adjustments = append(adjustments, a)
	}

	return adjustments, total, rows.Err()
}

// DeleteAdjustment implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) DeleteAdjustment(ctx context.Context, kind payroll.AdjustmentKind, id string) error {
	q := GetQuerier(ctx, r.db)

	table, ok := adjustmentTables[kind]
	if !ok {
		return payroll.ErrAdjustmentNotFound
	}

	tag, err := q.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAdjustmentNotFound
	}

	return nil
}
