package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/sitehr/sitehr-backend-go/internal/domain/attendance"
	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/spreadsheet"
)

type RecordServiceImpl struct {
	db *database.DB
	attendance.RecordRepository
	workerRepo   worker.WorkerRepository
	employeeRepo employee.EmployeeRepository
	schedule     attendance.Schedule
	logger       *slog.Logger

	now func() time.Time
}

func NewRecordService(
	db *database.DB,
	recordRepo attendance.RecordRepository,
	workerRepo worker.WorkerRepository,
	employeeRepo employee.EmployeeRepository,
	schedule attendance.Schedule,
	logger *slog.Logger,
) attendance.RecordService {
	return &RecordServiceImpl{
		db:               db,
		RecordRepository: recordRepo,
		workerRepo:       workerRepo,
		employeeRepo:     employeeRepo,
		schedule:         schedule,
		logger:           logger,
		now:              time.Now,
	}
}

// CheckIn implements attendance.RecordService.
func (s *RecordServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	workerType, err := s.resolveWorkerType(ctx, req.WorkerID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	now := s.now()
	rec := attendance.Record{
		WorkerID:   req.WorkerID,
		WorkerType: workerType,
		Date:       date,
		CheckIn:    &now,
		Status:     s.schedule.ResolveCheckIn(now),
		CreatedBy:  userIDFromClaims(ctx),
	}

	stored, _, err := s.RecordRepository.Upsert(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	return toRecordResponse(stored), nil
}

// CheckOut implements attendance.RecordService.
func (s *RecordServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	rec, err := s.RecordRepository.GetByWorkerAndDate(ctx, req.WorkerID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if rec == nil {
		return attendance.RecordResponse{}, attendance.ErrNoCheckIn
	}

	now := s.now()
	rec.CheckOut = &now
	rec.Status = s.schedule.ResolveCheckOut(now, rec.Status)
	rec.UpdatedBy = userIDFromClaims(ctx)
	rec.HoursWorked = hoursBetween(rec.CheckIn, rec.CheckOut)

	if err := s.RecordRepository.Update(ctx, *rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	return toRecordResponse(*rec), nil
}

// RecordDaily implements attendance.RecordService.
func (s *RecordServiceImpl) RecordDaily(ctx context.Context, req attendance.RecordDailyRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	rec := attendance.Record{
		WorkerID:   req.WorkerID,
		WorkerType: worker.TypeDaily,
		SiteID:     req.SiteID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		Notes:      req.Notes,
		CreatedBy:  userIDFromClaims(ctx),
	}

	if req.HoursWorked != nil {
		hours, err := decimal.NewFromString(*req.HoursWorked)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse hours_worked: %w", err)
		}
		rec.HoursWorked = &hours
	}

	stored, _, err := s.RecordRepository.Upsert(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to record daily attendance: %w", err)
	}

	return toRecordResponse(stored), nil
}

// Import implements attendance.RecordService. Each record is validated on
// its own; a bad row increments the error count and never aborts the batch.
func (s *RecordServiceImpl) Import(ctx context.Context, req attendance.ImportRequest) (attendance.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ImportResult{}, err
	}

	createdBy := userIDFromClaims(ctx)

	var result attendance.ImportResult
	for _, record := range req.Records {
		rec, err := s.buildImportRecord(ctx, record)
		if err != nil {
			s.logger.Warn("skipping attendance import record",
				slog.String("worker_id", record.WorkerID),
				slog.String("date", record.Date),
				slog.String("error", err.Error()),
			)
			result.Errors++
			continue
		}
		rec.CreatedBy = createdBy

		_, inserted, err := s.RecordRepository.Upsert(ctx, rec)
		if err != nil {
			s.logger.Warn("failed to upsert attendance import record",
				slog.String("worker_id", record.WorkerID),
				slog.String("date", record.Date),
				slog.String("error", err.Error()),
			)
			result.Errors++
			continue
		}

		if inserted {
			result.Imported++
		} else {
			result.Updated++
		}
	}

	return result, nil
}

// ImportSpreadsheet implements attendance.RecordService.
func (s *RecordServiceImpl) ImportSpreadsheet(ctx context.Context, data []byte) (attendance.ImportResult, error) {
	rows, err := spreadsheet.ParseAttendance(data)
	if err != nil {
		return attendance.ImportResult{}, fmt.Errorf("failed to parse attendance workbook: %w", err)
	}

	req := attendance.ImportRequest{Records: make([]attendance.ImportRecord, 0, len(rows))}
	for _, row := range rows {
		req.Records = append(req.Records, attendance.ImportRecord{
			WorkerID: row.WorkerID,
			Date:     row.Date,
			CheckIn:  row.CheckIn,
			CheckOut: row.CheckOut,
			Status:   row.Status,
		})
	}

	return s.Import(ctx, req)
}

// List implements attendance.RecordService.
func (s *RecordServiceImpl) List(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.RecordRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	resp := attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, toRecordResponse(rec))
	}

	return resp, nil
}

// Get implements attendance.RecordService.
func (s *RecordServiceImpl) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	rec, err := s.RecordRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return toRecordResponse(rec), nil
}

// Update implements attendance.RecordService.
func (s *RecordServiceImpl) Update(ctx context.Context, req attendance.UpdateRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.RecordRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if req.CheckIn != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckIn)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse check_in: %w", err)
		}
		rec.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOut)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse check_out: %w", err)
		}
		rec.CheckOut = &t
	}
	if req.Status != nil {
		rec.Status = attendance.Status(*req.Status)
	}
	if req.HoursWorked != nil {
		hours, err := decimal.NewFromString(*req.HoursWorked)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse hours_worked: %w", err)
		}
		rec.HoursWorked = &hours
	} else if req.CheckIn != nil || req.CheckOut != nil {
		if computed := hoursBetween(rec.CheckIn, rec.CheckOut); computed != nil {
			rec.HoursWorked = computed
		}
	}
	if req.Notes != nil {
		rec.Notes = req.Notes
	}
	rec.UpdatedBy = userIDFromClaims(ctx)

	if err := s.RecordRepository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return toRecordResponse(rec), nil
}

// buildImportRecord validates one import row and materializes it as a
// storable record.
func (s *RecordServiceImpl) buildImportRecord(ctx context.Context, record attendance.ImportRecord) (attendance.Record, error) {
	if record.WorkerID == "" {
		return attendance.Record{}, fmt.Errorf("worker_id is required")
	}

	date, err := time.Parse("2006-01-02", record.Date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("invalid date %q", record.Date)
	}

	workerType, err := s.resolveWorkerType(ctx, record.WorkerID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("unknown worker %q", record.WorkerID)
	}

	rec := attendance.Record{
		WorkerID:   record.WorkerID,
		WorkerType: workerType,
		Date:       date,
	}

	if record.CheckIn != nil && *record.CheckIn != "" {
		t, err := clockOnDate(date, *record.CheckIn)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("invalid check_in %q", *record.CheckIn)
		}
		rec.CheckIn = &t
	}
	if record.CheckOut != nil && *record.CheckOut != "" {
		t, err := clockOnDate(date, *record.CheckOut)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("invalid check_out %q", *record.CheckOut)
		}
		rec.CheckOut = &t
	}
	rec.HoursWorked = hoursBetween(rec.CheckIn, rec.CheckOut)

	switch {
	case record.Status != nil && *record.Status != "":
		status := attendance.Status(*record.Status)
		if !status.Valid() {
			return attendance.Record{}, fmt.Errorf("invalid status %q", *record.Status)
		}
		rec.Status = status
	case rec.CheckIn != nil:
		rec.Status = s.schedule.ResolveCheckIn(*rec.CheckIn)
	default:
		rec.Status = attendance.StatusAbsent
	}

	return rec, nil
}

// resolveWorkerType looks the ID up on both populations: employees first,
// then daily workers.
func (s *RecordServiceImpl) resolveWorkerType(ctx context.Context, workerID string) (worker.Type, error) {
	if _, err := s.employeeRepo.GetByID(ctx, workerID); err == nil {
		return worker.TypeRegular, nil
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return "", fmt.Errorf("failed to resolve worker: %w", err)
	}

	if _, err := s.workerRepo.GetByID(ctx, workerID); err == nil {
		return worker.TypeDaily, nil
	} else if !errors.Is(err, worker.ErrWorkerNotFound) {
		return "", fmt.Errorf("failed to resolve worker: %w", err)
	}

	return "", worker.ErrWorkerNotFound
}

// clockOnDate overlays an "HH:MM" clock time on a calendar date.
func clockOnDate(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// hoursBetween returns the decimal hour span between two timestamps, or nil
// when either is missing or the span is negative.
func hoursBetween(checkIn, checkOut *time.Time) *decimal.Decimal {
	if checkIn == nil || checkOut == nil {
		return nil
	}
	span := checkOut.Sub(*checkIn)
	if span < 0 {
		return nil
	}
	hours := decimal.NewFromFloat(span.Hours()).Round(2)
	return &hours
}

func userIDFromClaims(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return &userID
	}
	return nil
}

func toRecordResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:         rec.ID,
		WorkerID:   rec.WorkerID,
		WorkerType: string(rec.WorkerType),
		WorkerName: rec.WorkerName,
		SiteID:     rec.SiteID,
		Date:       rec.Date.Format("2006-01-02"),
		Status:     string(rec.Status),
		Notes:      rec.Notes,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  rec.UpdatedAt.Format(time.RFC3339),
	}
	if rec.CheckIn != nil {
		v := rec.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if rec.CheckOut != nil {
		v := rec.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if rec.HoursWorked != nil {
		v := rec.HoursWorked.String()
		resp.HoursWorked = &v
	}
	return resp
}
