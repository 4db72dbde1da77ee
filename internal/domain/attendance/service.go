package attendance

import "context"

// RecordService defines business logic for attendance operations.
type RecordService interface {
	// CheckIn records a check-in for an employee. The stored status is
	// recomputed from the current time on every call, so a repeated
	// check-in overwrites the earlier classification.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut records a check-out. It fails with ErrNoCheckIn when the
	// worker has no record for that date; it never creates one.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// RecordDaily stores a manual attendance entry for a daily worker.
	RecordDaily(ctx context.Context, req RecordDailyRequest) (RecordResponse, error)

	// Import applies a batch of records with per-record validation.
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)

	// ImportSpreadsheet parses an xlsx workbook into import records and
	// applies them through Import.
	ImportSpreadsheet(ctx context.Context, data []byte) (ImportResult, error)

	List(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
	Get(ctx context.Context, id string) (RecordResponse, error)
	Update(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)
}
