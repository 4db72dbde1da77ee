package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sitehr/sitehr-backend-go/internal/domain/attendance"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.worker_id, a.worker_type, a.site_id, a.date, a.check_in, a.check_out,
	a.hours_worked, a.status, a.notes, a.created_by, a.updated_by,
	a.created_at, a.updated_at`

// Upsert implements attendance.RecordRepository. The ON CONFLICT clause is
// the atomic create-if-absent keyed by (worker_id, date): concurrent
// check-ins for the same worker and day cannot both insert.
func (r *attendanceRepository) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			worker_id, worker_type, site_id, date, check_in, check_out,
			hours_worked, status, notes, created_by, updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10
		)
		ON CONFLICT (worker_id, date) DO UPDATE SET
			site_id      = COALESCE(EXCLUDED.site_id, attendance_records.site_id),
			check_in     = COALESCE(EXCLUDED.check_in, attendance_records.check_in),
			check_out    = COALESCE(EXCLUDED.check_out, attendance_records.check_out),
			hours_worked = COALESCE(EXCLUDED.hours_worked, attendance_records.hours_worked),
			status       = EXCLUDED.status,
			notes        = COALESCE(EXCLUDED.notes, attendance_records.notes),
			updated_by   = EXCLUDED.updated_by,
			updated_at   = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := q.QueryRow(ctx, query,
		rec.WorkerID,
		rec.WorkerType,
		rec.SiteID,
		rec.Date,
		rec.CheckIn,
		rec.CheckOut,
		rec.HoursWorked,
		rec.Status,
		rec.Notes,
		rec.CreatedBy,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt, &inserted)

	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return rec, inserted, nil
}

// GetByID implements attendance.RecordRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.id = $1
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	return rec, nil
}

// GetByWorkerAndDate implements attendance.RecordRepository.
func (r *attendanceRepository) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.worker_id = $1 AND a.date = $2
		LIMIT 1
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, workerID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for this pair
		}
		return nil, fmt.Errorf("failed to get attendance by worker and date: %w", err)
	}

	return &rec, nil
}

// ListByWorkerAndPeriod implements attendance.RecordRepository. Both period
// bounds are inclusive.
func (r *attendanceRepository) ListByWorkerAndPeriod(ctx context.Context, workerID string, periodStart, periodEnd time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.worker_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, workerID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by period: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// List implements attendance.RecordRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		baseWhere += fmt.Sprintf(" AND a.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}

	if filter.WorkerType != nil {
		baseWhere += fmt.Sprintf(" AND a.worker_type = $%d", argIdx)
		args = append(args, *filter.WorkerType)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `,
			COALESCE(w.first_name || ' ' || w.last_name, e.first_name || ' ' || e.last_name) AS worker_name
		FROM attendance_records a
		LEFT JOIN daily_workers w ON w.id = a.worker_id AND a.worker_type = 'daily'
		LEFT JOIN employees e ON e.id = a.worker_id AND a.worker_type = 'regular'
		WHERE ` + baseWhere + `
		ORDER BY a.date DESC, a.worker_id
	`
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.WorkerID, &rec.WorkerType, &rec.SiteID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&rec.HoursWorked, &rec.Status, &rec.Notes, &rec.CreatedBy, &rec.UpdatedBy,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.WorkerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}

// Update implements attendance.RecordRepository.
func (r *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			check_in = $2, check_out = $3, hours_worked = $4,
			status = $5, notes = $6, updated_by = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rec.ID, rec.CheckIn, rec.CheckOut, rec.HoursWorked,
		rec.Status, rec.Notes, rec.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// CountTodayByStatus implements attendance.RecordRepository.
func (r *attendanceRepository) CountTodayByStatus(ctx context.Context, date time.Time) (map[attendance.Status]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM attendance_records
		WHERE date = $1
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[attendance.Status]int)
	for rows.Next() {
		var status attendance.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attendance count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.WorkerID, &rec.WorkerType, &rec.SiteID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.HoursWorked, &rec.Status, &rec.Notes, &rec.CreatedBy, &rec.UpdatedBy,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}
