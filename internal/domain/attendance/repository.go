package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access methods for attendance records.
type RecordRepository interface {
	// Upsert writes a record keyed by (worker_id, date) in a single atomic
	// statement. It returns the stored record and whether a new row was
	// inserted (false means an existing row was updated). This closes the
	// double check-in race: two concurrent upserts cannot both create.
	Upsert(ctx context.Context, rec Record) (Record, bool, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByWorkerAndDate returns nil when no record exists for the pair.
	GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*Record, error)

	// ListByWorkerAndPeriod returns all records for a worker with
	// periodStart <= date <= periodEnd, both inclusive.
	ListByWorkerAndPeriod(ctx context.Context, workerID string, periodStart, periodEnd time.Time) ([]Record, error)

	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)

	Update(ctx context.Context, rec Record) error

	// CountTodayByStatus aggregates today's records by status for dashboards.
	CountTodayByStatus(ctx context.Context, date time.Time) (map[Status]int, error)
}
