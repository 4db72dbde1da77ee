package attendance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitehr/sitehr-backend-go/internal/domain/attendance"
	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
)

type fakeRecordRepo struct {
	records map[string]attendance.Record // keyed by workerID + "|" + date
	nextID  int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]attendance.Record)}
}

func recordKey(workerID string, date time.Time) string {
	return workerID + "|" + date.Format("2006-01-02")
}

func (f *fakeRecordRepo) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	key := recordKey(rec.WorkerID, rec.Date)
	existing, ok := f.records[key]
	if ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		f.records[key] = rec
		return rec, false, nil
	}
	f.nextID++
	rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	rec.CreatedAt = time.Now()
	f.records[key] = rec
	return rec, true, nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*attendance.Record, error) {
	rec, ok := f.records[recordKey(workerID, date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeRecordRepo) ListByWorkerAndPeriod(ctx context.Context, workerID string, periodStart, periodEnd time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.WorkerID == workerID && !rec.Date.Before(periodStart) && !rec.Date.After(periodEnd) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecordRepo) Update(ctx context.Context, rec attendance.Record) error {
	f.records[recordKey(rec.WorkerID, rec.Date)] = rec
	return nil
}

func (f *fakeRecordRepo) CountTodayByStatus(ctx context.Context, date time.Time) (map[attendance.Status]int, error) {
	out := make(map[attendance.Status]int)
	for _, rec := range f.records {
		if rec.Date.Equal(date) {
			out[rec.Status]++
		}
	}
	return out, nil
}

type fakeWorkerRepo struct {
	workers map[string]worker.DailyWorker
}

func (f *fakeWorkerRepo) Create(ctx context.Context, w worker.DailyWorker) (worker.DailyWorker, error) {
	f.workers[w.ID] = w
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string) (worker.DailyWorker, error) {
	w, ok := f.workers[id]
	if !ok {
		return worker.DailyWorker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.DailyWorker, int64, error) {
	return nil, 0, nil
}

func (f *fakeWorkerRepo) ListActive(ctx context.Context) ([]worker.DailyWorker, error) {
	var out []worker.DailyWorker
	for _, w := range f.workers {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w worker.DailyWorker) error { return nil }
func (f *fakeWorkerRepo) SoftDelete(ctx context.Context, id string) error        { return nil }

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, id string) error       { return nil }

func newTestService(records *fakeRecordRepo, workers *fakeWorkerRepo, employees *fakeEmployeeRepo, now time.Time) *RecordServiceImpl {
	return &RecordServiceImpl{
		RecordRepository: records,
		workerRepo:       workers,
		employeeRepo:     employees,
		schedule:         attendance.Schedule{StartHour: 9, EndHour: 17, GraceMinutes: 15},
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:              func() time.Time { return now },
	}
}

func testFixtures() (*fakeRecordRepo, *fakeWorkerRepo, *fakeEmployeeRepo) {
	records := newFakeRecordRepo()
	workers := &fakeWorkerRepo{workers: map[string]worker.DailyWorker{
		"w-1": {ID: "w-1", FirstName: "Budi", LastName: "Santoso"},
	}}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e-1": {ID: "e-1", FirstName: "Siti", LastName: "Aminah", Email: "siti@example.com"},
	}}
	return records, workers, employees
}

func TestCheckInOnTime(t *testing.T) {
	records, workers, employees := testFixtures()
	now := time.Date(2026, time.March, 2, 9, 5, 0, 0, time.UTC)
	svc := newTestService(records, workers, employees, now)

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		WorkerID: "e-1",
		Date:     "2026-03-02",
	})
	require.NoError(t, err)

	assert.Equal(t, "PRESENT", resp.Status)
	assert.Equal(t, string(worker.TypeRegular), resp.WorkerType)
	require.NotNil(t, resp.CheckIn)
}

func TestCheckInPastGraceIsLate(t *testing.T) {
	records, workers, employees := testFixtures()
	now := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)
	svc := newTestService(records, workers, employees, now)

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		WorkerID: "w-1",
		Date:     "2026-03-02",
	})
	require.NoError(t, err)

	assert.Equal(t, "LATE", resp.Status)
	assert.Equal(t, string(worker.TypeDaily), resp.WorkerType)
}

func TestCheckInUnknownWorker(t *testing.T) {
	records, workers, employees := testFixtures()
	svc := newTestService(records, workers, employees, time.Now())

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		WorkerID: "nobody",
		Date:     "2026-03-02",
	})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestRepeatedCheckInOverwrites(t *testing.T) {
	records, workers, employees := testFixtures()

	first := time.Date(2026, time.March, 2, 9, 5, 0, 0, time.UTC)
	svc := newTestService(records, workers, employees, first)
	resp1, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{WorkerID: "e-1", Date: "2026-03-02"})
	require.NoError(t, err)
	assert.Equal(t, "PRESENT", resp1.Status)

	second := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	svc = newTestService(records, workers, employees, second)
	resp2, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{WorkerID: "e-1", Date: "2026-03-02"})
	require.NoError(t, err)

	assert.Equal(t, "LATE", resp2.Status)
	assert.Equal(t, resp1.ID, resp2.ID)
	assert.Len(t, records.records, 1)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	records, workers, employees := testFixtures()
	svc := newTestService(records, workers, employees, time.Now())

	_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		WorkerID: "e-1",
		Date:     "2026-03-02",
	})
	assert.ErrorIs(t, err, attendance.ErrNoCheckIn)
}

func TestCheckOutEarlyDowngradesToHalfDay(t *testing.T) {
	records, workers, employees := testFixtures()

	in := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(records, workers, employees, in)
	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{WorkerID: "e-1", Date: "2026-03-02"})
	require.NoError(t, err)

	out := time.Date(2026, time.March, 2, 13, 30, 0, 0, time.UTC)
	svc = newTestService(records, workers, employees, out)
	resp, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{WorkerID: "e-1", Date: "2026-03-02"})
	require.NoError(t, err)

	assert.Equal(t, "HALF_DAY", resp.Status)
	require.NotNil(t, resp.HoursWorked)
	assert.Equal(t, "4.5", *resp.HoursWorked)
}

func TestCheckOutLateArrivalStaysLate(t *testing.T) {
	records, workers, employees := testFixtures()

	in := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	svc := newTestService(records, workers, employees, in)
	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{WorkerID: "e-1", Date: "2026-03-02"})
	require.NoError(t, err)

	out := time.Date(2026, time.March, 2, 17, 30, 0, 0, time.UTC)
	svc = newTestService(records, workers, employees, out)
	resp, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{WorkerID: "e-1", Date: "2026-03-02"})
	require.NoError(t, err)

	assert.Equal(t, "LATE", resp.Status)
}

func TestRecordDailyKeepsSite(t *testing.T) {
	records, workers, employees := testFixtures()
	svc := newTestService(records, workers, employees, time.Now())

	siteID := "site-1"
	resp, err := svc.RecordDaily(context.Background(), attendance.RecordDailyRequest{
		WorkerID: "w-1",
		Date:     "2026-03-02",
		Status:   "PRESENT",
		SiteID:   &siteID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.SiteID)
	assert.Equal(t, "site-1", *resp.SiteID)

	rec, err := records.GetByWorkerAndDate(context.Background(), "w-1", time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.SiteID)
	assert.Equal(t, "site-1", *rec.SiteID)
}

func TestImportCountsInsertedUpdatedErrors(t *testing.T) {
	records, workers, employees := testFixtures()
	svc := newTestService(records, workers, employees, time.Now())

	// Pre-existing record to be updated by the import.
	_, _, err := records.Upsert(context.Background(), attendance.Record{
		WorkerID: "w-1",
		Date:     time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		Status:   attendance.StatusPresent,
	})
	require.NoError(t, err)

	checkIn := "08:55"
	checkOut := "17:05"
	badStatus := "SLEEPING"
	result, err := svc.Import(context.Background(), attendance.ImportRequest{Records: []attendance.ImportRecord{
		{WorkerID: "e-1", Date: "2026-03-02", CheckIn: &checkIn, CheckOut: &checkOut},
		{WorkerID: "w-1", Date: "2026-03-02", CheckIn: &checkIn},
		{WorkerID: "ghost", Date: "2026-03-02"},
		{WorkerID: "e-1", Date: "not-a-date"},
		{WorkerID: "e-1", Date: "2026-03-03", Status: &badStatus},
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 3, result.Errors)
}

func TestImportComputesHoursAndStatus(t *testing.T) {
	records, workers, employees := testFixtures()
	svc := newTestService(records, workers, employees, time.Now())

	checkIn := "09:00"
	checkOut := "17:15"
	result, err := svc.Import(context.Background(), attendance.ImportRequest{Records: []attendance.ImportRecord{
		{WorkerID: "e-1", Date: "2026-03-02", CheckIn: &checkIn, CheckOut: &checkOut},
		{WorkerID: "w-1", Date: "2026-03-02"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	rec, err := records.GetByWorkerAndDate(context.Background(), "e-1", time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	require.NotNil(t, rec.HoursWorked)
	assert.Equal(t, "8.25", rec.HoursWorked.String())

	// No clock times and no explicit status means absent.
	rec, err = records.GetByWorkerAndDate(context.Background(), "w-1", time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
}
