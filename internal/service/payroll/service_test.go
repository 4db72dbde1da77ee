package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitehr/sitehr-backend-go/internal/config"
	"github.com/sitehr/sitehr-backend-go/internal/domain/attendance"
	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/payroll"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
)

type fakeAttendanceRepo struct {
	records map[string][]attendance.Record // by worker ID
	failFor string
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	return rec, true, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByWorkerAndPeriod(ctx context.Context, workerID string, periodStart, periodEnd time.Time) ([]attendance.Record, error) {
	if workerID == f.failFor {
		return nil, assert.AnError
	}
	return f.records[workerID], nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, rec attendance.Record) error { return nil }

func (f *fakeAttendanceRepo) CountTodayByStatus(ctx context.Context, date time.Time) (map[attendance.Status]int, error) {
	return nil, nil
}

type fakeWorkerRepo struct {
	active []worker.DailyWorker
}

func (f *fakeWorkerRepo) Create(ctx context.Context, w worker.DailyWorker) (worker.DailyWorker, error) {
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string) (worker.DailyWorker, error) {
	for _, w := range f.active {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.DailyWorker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.DailyWorker, int64, error) {
	return nil, 0, nil
}

func (f *fakeWorkerRepo) ListActive(ctx context.Context) ([]worker.DailyWorker, error) {
	return f.active, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w worker.DailyWorker) error { return nil }
func (f *fakeWorkerRepo) SoftDelete(ctx context.Context, id string) error        { return nil }

type fakeEmployeeRepo struct {
	active []employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.active {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, id string) error       { return nil }

type fakeAdjustmentRepo struct {
	penalties  map[string][]payroll.Penalty
	deductions map[string][]payroll.Deduction
	bonuses    map[string][]payroll.Bonus
	applied    []string
}

func (f *fakeAdjustmentRepo) CreatePenalty(ctx context.Context, p payroll.Penalty) (payroll.Penalty, error) {
	return p, nil
}

func (f *fakeAdjustmentRepo) ListPenalties(ctx context.Context, workerID string, periodStart, periodEnd time.Time, unappliedOnly bool) ([]payroll.Penalty, error) {
	var out []payroll.Penalty
	for _, p := range f.penalties[workerID] {
		if unappliedOnly && p.AppliedToPayroll {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeAdjustmentRepo) MarkPenaltiesApplied(ctx context.Context, ids []string) error {
	f.applied = append(f.applied, ids...)
	return nil
}

func (f *fakeAdjustmentRepo) CreateDeduction(ctx context.Context, d payroll.Deduction) (payroll.Deduction, error) {
	return d, nil
}

func (f *fakeAdjustmentRepo) ListDeductions(ctx context.Context, workerID string, periodStart, periodEnd time.Time) ([]payroll.Deduction, error) {
	return f.deductions[workerID], nil
}

func (f *fakeAdjustmentRepo) CreateBonus(ctx context.Context, b payroll.Bonus) (payroll.Bonus, error) {
	return b, nil
}

func (f *fakeAdjustmentRepo) ListBonuses(ctx context.Context, workerID string, periodStart, periodEnd time.Time) ([]payroll.Bonus, error) {
	return f.bonuses[workerID], nil
}

func (f *fakeAdjustmentRepo) ListAdjustments(ctx context.Context, filter payroll.AdjustmentFilter) ([]payroll.AdjustmentResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeAdjustmentRepo) DeleteAdjustment(ctx context.Context, kind payroll.AdjustmentKind, id string) error {
	return nil
}

func newEmptyAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{
		penalties:  make(map[string][]payroll.Penalty),
		deductions: make(map[string][]payroll.Deduction),
		bonuses:    make(map[string][]payroll.Bonus),
	}
}

func testWorkday() config.WorkdayConfig {
	return config.WorkdayConfig{
		StartHour:           9,
		EndHour:             17,
		GraceMinutes:        15,
		WorkingDaysPerMonth: 22,
		HoursPerDay:         8,
	}
}

func newTestService(att *fakeAttendanceRepo, adj *fakeAdjustmentRepo, workers *fakeWorkerRepo, employees *fakeEmployeeRepo) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		AdjustmentRepository: adj,
		attendanceRepo:       att,
		workerRepo:           workers,
		employeeRepo:         employees,
		workday:              testWorkday(),
		logger:               slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func hours(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func calcRequest() payroll.CalculateRequest {
	return payroll.CalculateRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		WorkerType:  payroll.WorkerTypeAll,
	}
}

func TestCalculateDailyWorker(t *testing.T) {
	workers := &fakeWorkerRepo{active: []worker.DailyWorker{
		{ID: "w-1", FirstName: "Budi", LastName: "Santoso", DailyRate: decimal.NewFromInt(100), Specialization: "mason"},
	}}
	att := &fakeAttendanceRepo{records: map[string][]attendance.Record{
		"w-1": {
			{WorkerID: "w-1", Date: day(2), Status: attendance.StatusPresent, HoursWorked: hours("8")},
			{WorkerID: "w-1", Date: day(3), Status: attendance.StatusLate, HoursWorked: hours("7")},
			{WorkerID: "w-1", Date: day(4), Status: attendance.StatusHalfDay, HoursWorked: hours("4")},
			{WorkerID: "w-1", Date: day(5), Status: attendance.StatusAbsent},
		},
	}}
	svc := newTestService(att, newEmptyAdjustmentRepo(), workers, &fakeEmployeeRepo{})

	resp, err := svc.Calculate(context.Background(), calcRequest())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, "Budi Santoso", item.WorkerName)
	assert.Equal(t, 2, item.TotalDays)
	assert.Equal(t, "19", item.TotalHours)
	assert.Equal(t, "200", item.BaseAmount)
	assert.Equal(t, "0", item.BonusAmount)
	assert.Equal(t, "0", item.DeductionAmount)
	assert.Equal(t, "200", item.NetAmount)
	assert.Equal(t, "CALCULATED", item.Status)
}

func TestCalculateDailyWorkerPenalties(t *testing.T) {
	workers := &fakeWorkerRepo{active: []worker.DailyWorker{
		{ID: "w-1", FirstName: "Budi", LastName: "Santoso", DailyRate: decimal.NewFromInt(100)},
	}}
	att := &fakeAttendanceRepo{records: map[string][]attendance.Record{
		"w-1": {
			{WorkerID: "w-1", Date: day(2), Status: attendance.StatusPresent},
			{WorkerID: "w-1", Date: day(3), Status: attendance.StatusPresent},
			{WorkerID: "w-1", Date: day(4), Status: attendance.StatusPresent},
		},
	}}
	adj := newEmptyAdjustmentRepo()
	adj.penalties["w-1"] = []payroll.Penalty{
		{ID: "p-1", WorkerID: "w-1", Date: day(3), Amount: decimal.NewFromInt(25)},
		{ID: "p-2", WorkerID: "w-1", Date: day(4), Amount: decimal.NewFromInt(10), AppliedToPayroll: true},
	}
	svc := newTestService(att, adj, workers, &fakeEmployeeRepo{})

	resp, err := svc.Calculate(context.Background(), calcRequest())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, "300", item.BaseAmount)
	assert.Equal(t, "25", item.DeductionAmount)
	assert.Equal(t, "275", item.NetAmount)
}

func TestCalculateSkipsDailyWorkerWithoutRecords(t *testing.T) {
	workers := &fakeWorkerRepo{active: []worker.DailyWorker{
		{ID: "w-1", FirstName: "Budi", LastName: "Santoso", DailyRate: decimal.NewFromInt(100)},
		{ID: "w-2", FirstName: "Agus", LastName: "Wijaya", DailyRate: decimal.NewFromInt(120)},
	}}
	att := &fakeAttendanceRepo{records: map[string][]attendance.Record{
		"w-2": {{WorkerID: "w-2", Date: day(2), Status: attendance.StatusPresent}},
	}}
	svc := newTestService(att, newEmptyAdjustmentRepo(), workers, &fakeEmployeeRepo{})

	resp, err := svc.Calculate(context.Background(), calcRequest())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "w-2", resp.Items[0].WorkerID)
}

func TestCalculateSalariedEmployee(t *testing.T) {
	employees := &fakeEmployeeRepo{active: []employee.Employee{
		{ID: "e-1", FirstName: "Siti", LastName: "Aminah", MonthlySalary: decimal.NewFromInt(2200), Position: "accountant"},
	}}
	att := &fakeAttendanceRepo{records: map[string][]attendance.Record{
		"e-1": {
			{WorkerID: "e-1", Date: day(2), Status: attendance.StatusAbsent},
			{WorkerID: "e-1", Date: day(3), Status: attendance.StatusAbsent},
			{WorkerID: "e-1", Date: day(4), Status: attendance.StatusPresent},
		},
	}}
	svc := newTestService(att, newEmptyAdjustmentRepo(), &fakeWorkerRepo{}, employees)

	resp, err := svc.Calculate(context.Background(), calcRequest())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	// 2200 / 22 working days = 100 per day, two absences deducted.
	assert.Equal(t, 20, item.TotalDays)
	assert.Equal(t, "160", item.TotalHours)
	assert.Equal(t, "2200", item.BaseAmount)
	assert.Equal(t, "200", item.DeductionAmount)
	assert.Equal(t, "2000", item.NetAmount)
}

func TestCalculateSalariedBonusesAndDeductions(t *testing.T) {
	employees := &fakeEmployeeRepo{active: []employee.Employee{
		{ID: "e-1", FirstName: "Siti", LastName: "Aminah", MonthlySalary: decimal.NewFromInt(2200)},
	}}
	att := &fakeAttendanceRepo{records: map[string][]attendance.Record{}}
	adj := newEmptyAdjustmentRepo()
	adj.bonuses["e-1"] = []payroll.Bonus{{ID: "b-1", WorkerID: "e-1", Amount: decimal.NewFromInt(150)}}
	adj.deductions["e-1"] = []payroll.Deduction{{ID: "d-1", WorkerID: "e-1", Amount: decimal.NewFromInt(50)}}
	svc := newTestService(att, adj, &fakeWorkerRepo{}, employees)

	resp, err := svc.Calculate(context.Background(), calcRequest())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, "150", item.BonusAmount)
	assert.Equal(t, "50", item.DeductionAmount)
	assert.Equal(t, "2300", item.NetAmount)
}

func TestCalculateSortsByWorkerName(t *testing.T) {
	workers := &fakeWorkerRepo{active: []worker.DailyWorker{
		{ID: "w-1", FirstName: "Zaki", LastName: "Rahman", DailyRate: decimal.NewFromInt(100)},
	}}
	employees := &fakeEmployeeRepo{active: []employee.Employee{
		{ID: "e-1", FirstName: "Ani", LastName: "Lestari", MonthlySalary: decimal.NewFromInt(2200)},
	}}
	att := &fakeAttendanceRepo{records: map[string][]attendance.Record{
		"w-1": {{WorkerID: "w-1", Date: day(2), Status: attendance.StatusPresent}},
	}}
	svc := newTestService(att, newEmptyAdjustmentRepo(), workers, employees)

	resp, err := svc.Calculate(context.Background(), calcRequest())
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Ani Lestari", resp.Items[0].WorkerName)
	assert.Equal(t, "Zaki Rahman", resp.Items[1].WorkerName)
}

func TestCalculateExcludesFailedWorker(t *testing.T) {
	workers := &fakeWorkerRepo{active: []worker.DailyWorker{
		{ID: "w-1", FirstName: "Budi", LastName: "Santoso", DailyRate: decimal.NewFromInt(100)},
		{ID: "w-2", FirstName: "Agus", LastName: "Wijaya", DailyRate: decimal.NewFromInt(120)},
	}}
	att := &fakeAttendanceRepo{
		records: map[string][]attendance.Record{
			"w-1": {{WorkerID: "w-1", Date: day(2), Status: attendance.StatusPresent}},
			"w-2": {{WorkerID: "w-2", Date: day(2), Status: attendance.StatusPresent}},
		},
		failFor: "w-2",
	}
	svc := newTestService(att, newEmptyAdjustmentRepo(), workers, &fakeEmployeeRepo{})

	resp, err := svc.Calculate(context.Background(), calcRequest())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "w-1", resp.Items[0].WorkerID)
}

func TestCalculateFiltersByWorkerType(t *testing.T) {
	workers := &fakeWorkerRepo{active: []worker.DailyWorker{
		{ID: "w-1", FirstName: "Budi", LastName: "Santoso", DailyRate: decimal.NewFromInt(100)},
	}}
	employees := &fakeEmployeeRepo{active: []employee.Employee{
		{ID: "e-1", FirstName: "Siti", LastName: "Aminah", MonthlySalary: decimal.NewFromInt(2200)},
	}}
	att := &fakeAttendanceRepo{records: map[string][]attendance.Record{
		"w-1": {{WorkerID: "w-1", Date: day(2), Status: attendance.StatusPresent}},
	}}
	svc := newTestService(att, newEmptyAdjustmentRepo(), workers, employees)

	req := calcRequest()
	req.WorkerType = string(worker.TypeDaily)
	resp, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "w-1", resp.Items[0].WorkerID)

	req.WorkerType = string(worker.TypeRegular)
	resp, err = svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "e-1", resp.Items[0].WorkerID)
}

func TestExportPeriodLabel(t *testing.T) {
	items := []payroll.LineItem{
		{
			PeriodStart: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{PeriodStart: day(1), PeriodEnd: day(31)},
	}

	// Explicit filter bounds win even when the first item belongs to
	// another period.
	start, end := "2026-03-01", "2026-03-31"
	got := exportPeriodLabel(payroll.LineItemFilter{PeriodStart: &start, PeriodEnd: &end}, items)
	assert.Equal(t, "2026-03-01 to 2026-03-31", got)

	// Without filter bounds the label spans all items.
	got = exportPeriodLabel(payroll.LineItemFilter{}, items)
	assert.Equal(t, "2026-02-01 to 2026-03-31", got)

	assert.Equal(t, "", exportPeriodLabel(payroll.LineItemFilter{}, nil))
}
