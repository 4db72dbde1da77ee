package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/leave"
	"github.com/sitehr/sitehr-backend-go/internal/domain/notification"
	"github.com/sitehr/sitehr-backend-go/internal/domain/user"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.RequestRepository
	employeeRepo        employee.EmployeeRepository
	userRepo            user.UserRepository
	notificationService notification.NotificationService
	logger              *slog.Logger
}

func NewLeaveService(
	db *database.DB,
	requestRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	notificationService notification.NotificationService,
	logger *slog.Logger,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                  db,
		RequestRepository:   requestRepo,
		employeeRepo:        employeeRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.RequestResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	stored, err := s.RequestRepository.Create(ctx, leave.Request{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return toRequestResponse(stored), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.RequestFilter) (leave.ListRequestsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.RequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := leave.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   make([]leave.RequestResponse, 0, len(requests)),
	}
	for _, req := range requests {
		resp.Requests = append(resp.Requests, toRequestResponse(req))
	}

	return resp, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.RequestResponse, error) {
	req, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return toRequestResponse(req), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.ReviewRequest) (leave.RequestResponse, error) {
	return s.review(ctx, req, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.ReviewRequest) (leave.RequestResponse, error) {
	return s.review(ctx, req, leave.StatusRejected)
}

func (s *LeaveServiceImpl) review(ctx context.Context, req leave.ReviewRequest, status leave.Status) (leave.RequestResponse, error) {
	stored, err := s.RequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	if stored.Status != leave.StatusPending {
		return leave.RequestResponse{}, leave.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	stored.Status = status
	stored.ReviewedBy = userIDFromClaims(ctx)
	stored.ReviewedAt = &now
	stored.ReviewNote = req.ReviewNote

	if err := s.RequestRepository.Update(ctx, stored); err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	s.notifyEmployee(ctx, stored)

	return toRequestResponse(stored), nil
}

// notifyEmployee tells the requesting employee's user account about the
// review outcome. Notification failures are logged and swallowed.
func (s *LeaveServiceImpl) notifyEmployee(ctx context.Context, req leave.Request) {
	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return
	}

	u, err := s.userRepo.GetByEmail(ctx, e.Email)
	if err != nil {
		return
	}

	title := "Leave request " + string(req.Status)
	message := fmt.Sprintf("Your %s leave request from %s to %s was %s.",
		req.LeaveType,
		req.StartDate.Format("2006-01-02"),
		req.EndDate.Format("2006-01-02"),
		req.Status,
	)
	if err := s.notificationService.Notify(ctx, u.ID, title, message, notification.TypeLeave, nil); err != nil {
		s.logger.Warn("failed to notify employee about leave review",
			slog.String("employee_id", req.EmployeeID),
			slog.String("error", err.Error()),
		)
	}
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

func toRequestResponse(req leave.Request) leave.RequestResponse {
	resp := leave.RequestResponse{
		ID:           req.ID,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		LeaveType:    req.LeaveType,
		StartDate:    req.StartDate.Format("2006-01-02"),
		EndDate:      req.EndDate.Format("2006-01-02"),
		Duration:     req.Duration(),
		Reason:       req.Reason,
		Status:       string(req.Status),
		ReviewedBy:   req.ReviewedBy,
		ReviewNote:   req.ReviewNote,
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
	}
	if req.ReviewedAt != nil {
		v := req.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
