package dashboard

import (
	"context"
	"time"
)

type DashboardRepository interface {
	CountActiveWorkers(ctx context.Context) (int, error)
	CountActiveEmployees(ctx context.Context) (int, error)
	TodayAttendanceByStatus(ctx context.Context, date time.Time) (map[string]int, error)
}
