package evaluation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/evaluation"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
)

type fakeEvaluationRepo struct {
	evaluations []evaluation.Evaluation
}

func (f *fakeEvaluationRepo) Create(ctx context.Context, e evaluation.Evaluation) (evaluation.Evaluation, error) {
	e.ID = fmt.Sprintf("ev-%d", len(f.evaluations)+1)
	f.evaluations = append(f.evaluations, e)
	return e, nil
}

func (f *fakeEvaluationRepo) GetByID(ctx context.Context, id string) (evaluation.Evaluation, error) {
	for _, e := range f.evaluations {
		if e.ID == id {
			return e, nil
		}
	}
	return evaluation.Evaluation{}, evaluation.ErrEvaluationNotFound
}

func (f *fakeEvaluationRepo) GetByWorkerAndPeriod(ctx context.Context, workerID string, month, year int) (*evaluation.Evaluation, error) {
	for _, e := range f.evaluations {
		if e.WorkerID == workerID && e.PeriodMonth == month && e.PeriodYear == year {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeEvaluationRepo) List(ctx context.Context, filter evaluation.EvaluationFilter) ([]evaluation.Evaluation, int64, error) {
	return f.evaluations, int64(len(f.evaluations)), nil
}

func (f *fakeEvaluationRepo) Summary(ctx context.Context, year int) ([]evaluation.WorkerSummary, error) {
	return nil, nil
}

type fakeWorkerRepo struct {
	ids map[string]bool
}

func (f *fakeWorkerRepo) Create(ctx context.Context, w worker.DailyWorker) (worker.DailyWorker, error) {
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string) (worker.DailyWorker, error) {
	if !f.ids[id] {
		return worker.DailyWorker{}, worker.ErrWorkerNotFound
	}
	return worker.DailyWorker{ID: id}, nil
}

func (f *fakeWorkerRepo) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.DailyWorker, int64, error) {
	return nil, 0, nil
}

func (f *fakeWorkerRepo) ListActive(ctx context.Context) ([]worker.DailyWorker, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w worker.DailyWorker) error { return nil }
func (f *fakeWorkerRepo) SoftDelete(ctx context.Context, id string) error        { return nil }

type fakeEmployeeRepo struct {
	ids map[string]bool
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if !f.ids[id] {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id}, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, id string) error       { return nil }

func newTestEvaluationService() *EvaluationServiceImpl {
	return &EvaluationServiceImpl{
		EvaluationRepository: &fakeEvaluationRepo{},
		workerRepo:           &fakeWorkerRepo{ids: map[string]bool{"w-1": true}},
		employeeRepo:         &fakeEmployeeRepo{ids: map[string]bool{"e-1": true}},
	}
}

func createRequest() evaluation.CreateEvaluationRequest {
	return evaluation.CreateEvaluationRequest{
		WorkerID:     "w-1",
		WorkerType:   "daily",
		PeriodMonth:  3,
		PeriodYear:   2026,
		Quality:      4,
		Productivity: 3,
		Punctuality:  5,
		Teamwork:     2,
	}
}

func TestCreateEvaluationComputesRating(t *testing.T) {
	svc := newTestEvaluationService()

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, "3.5", resp.OverallRating)
	assert.Equal(t, "daily", resp.WorkerType)
}

func TestCreateEvaluationDuplicatePeriod(t *testing.T) {
	svc := newTestEvaluationService()

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, evaluation.ErrDuplicatePeriod)
}

func TestCreateEvaluationSamePeriodDifferentWorker(t *testing.T) {
	svc := newTestEvaluationService()

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	req := createRequest()
	req.WorkerID = "e-1"
	req.WorkerType = "regular"
	_, err = svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateEvaluationUnknownWorker(t *testing.T) {
	svc := newTestEvaluationService()

	req := createRequest()
	req.WorkerID = "ghost"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

	req.WorkerID = "ghost"
	req.WorkerType = "regular"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
