package leave

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/leave"
	"github.com/sitehr/sitehr-backend-go/internal/domain/notification"
	"github.com/sitehr/sitehr-backend-go/internal/domain/user"
)

type fakeRequestRepo struct {
	requests map[string]leave.Request
	nextID   int
}

func (f *fakeRequestRepo) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	f.nextID++
	req.ID = fmt.Sprintf("lr-%d", f.nextID)
	req.CreatedAt = time.Now()
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, req leave.Request) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRequestRepo) CountPending(ctx context.Context) (int, error) {
	count := 0
	for _, req := range f.requests {
		if req.Status == leave.StatusPending {
			count++
		}
	}
	return count, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
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
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, id string) error       { return nil }

type fakeUserRepo struct {
	users map[string]user.User // keyed by email
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByGoogleID(ctx context.Context, googleID string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }

func (f *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

func (f *fakeUserRepo) SetPasswordHash(ctx context.Context, id string, passwordHash string) error {
	return nil
}

type notified struct {
	userID string
	title  string
	typ    notification.Type
}

type fakeNotificationService struct {
	sent []notified
}

func (f *fakeNotificationService) Notify(ctx context.Context, userID, title, message string, typ notification.Type, link *string) error {
	f.sent = append(f.sent, notified{userID: userID, title: title, typ: typ})
	return nil
}

func (f *fakeNotificationService) ListMine(ctx context.Context, filter notification.NotificationFilter) (notification.ListNotificationsResponse, error) {
	return notification.ListNotificationsResponse{}, nil
}

func (f *fakeNotificationService) MarkRead(ctx context.Context, id string) error { return nil }
func (f *fakeNotificationService) MarkAllRead(ctx context.Context) error         { return nil }

func newTestLeaveService() (*LeaveServiceImpl, *fakeRequestRepo, *fakeNotificationService) {
	requests := &fakeRequestRepo{requests: make(map[string]leave.Request)}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e-1": {ID: "e-1", FirstName: "Siti", LastName: "Aminah", Email: "siti@example.com"},
	}}
	users := &fakeUserRepo{users: map[string]user.User{
		"siti@example.com": {ID: "u-1", Email: "siti@example.com"},
	}}
	notifications := &fakeNotificationService{}

	svc := &LeaveServiceImpl{
		RequestRepository:   requests,
		employeeRepo:        employees,
		userRepo:            users,
		notificationService: notifications,
		logger:              slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return svc, requests, notifications
}

func TestCreateLeaveRequest(t *testing.T) {
	svc, _, _ := newTestLeaveService()

	resp, err := svc.Create(context.Background(), leave.CreateRequestRequest{
		EmployeeID: "e-1",
		LeaveType:  "ANNUAL",
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-10",
		Reason:     "family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, 5, resp.Duration)
}

func TestCreateLeaveRequestUnknownEmployee(t *testing.T) {
	svc, _, _ := newTestLeaveService()

	_, err := svc.Create(context.Background(), leave.CreateRequestRequest{
		EmployeeID: "ghost",
		LeaveType:  "SICK",
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-06",
		Reason:     "flu",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestApproveNotifiesEmployee(t *testing.T) {
	svc, _, notifications := newTestLeaveService()

	created, err := svc.Create(context.Background(), leave.CreateRequestRequest{
		EmployeeID: "e-1",
		LeaveType:  "ANNUAL",
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-07",
		Reason:     "family trip",
	})
	require.NoError(t, err)

	note := "enjoy"
	resp, err := svc.Approve(context.Background(), leave.ReviewRequest{ID: created.ID, ReviewNote: &note})
	require.NoError(t, err)

	assert.Equal(t, "APPROVED", resp.Status)
	require.NotNil(t, resp.ReviewedAt)
	require.Len(t, notifications.sent, 1)
	assert.Equal(t, "u-1", notifications.sent[0].userID)
	assert.Equal(t, notification.TypeLeave, notifications.sent[0].typ)
}

func TestReviewRejectsAlreadyProcessed(t *testing.T) {
	svc, _, _ := newTestLeaveService()

	created, err := svc.Create(context.Background(), leave.CreateRequestRequest{
		EmployeeID: "e-1",
		LeaveType:  "ANNUAL",
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-07",
		Reason:     "family trip",
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), leave.ReviewRequest{ID: created.ID})
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), leave.ReviewRequest{ID: created.ID})
	assert.ErrorIs(t, err, leave.ErrRequestAlreadyProcessed)
}

func TestReviewUnknownRequest(t *testing.T) {
	svc, _, _ := newTestLeaveService()

	_, err := svc.Approve(context.Background(), leave.ReviewRequest{ID: "missing"})
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}
