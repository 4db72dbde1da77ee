package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/sitehr/sitehr-backend-go/internal/domain/dashboard"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

// CountActiveWorkers implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountActiveWorkers(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM daily_workers WHERE status = 'ACTIVE' AND deleted = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active daily workers: %w", err)
	}

	return count, nil
}

// CountActiveEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountActiveEmployees(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE status = 'ACTIVE' AND deleted = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return count, nil
}

// TodayAttendanceByStatus implements dashboard.DashboardRepository.
func (r *dashboardRepository) TodayAttendanceByStatus(ctx context.Context, date time.Time) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM attendance_records WHERE date = $1 GROUP BY status`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attendance count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
