package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/sitehr/sitehr-backend-go/internal/domain/dashboard"
	"github.com/sitehr/sitehr-backend-go/internal/domain/leave"
	"github.com/sitehr/sitehr-backend-go/internal/domain/notification"
	"github.com/sitehr/sitehr-backend-go/internal/domain/task"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type DashboardServiceImpl struct {
	db *database.DB
	dashboard.DashboardRepository
	leaveRepo           leave.RequestRepository
	taskRepo            task.TaskRepository
	notificationService notification.NotificationService
}

func NewDashboardService(
	db *database.DB,
	dashboardRepo dashboard.DashboardRepository,
	leaveRepo leave.RequestRepository,
	taskRepo task.TaskRepository,
	notificationService notification.NotificationService,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		db:                  db,
		DashboardRepository: dashboardRepo,
		leaveRepo:           leaveRepo,
		taskRepo:            taskRepo,
		notificationService: notificationService,
	}
}

// Summary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Summary(ctx context.Context) (dashboard.Summary, error) {
	activeWorkers, err := s.DashboardRepository.CountActiveWorkers(ctx)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to count active workers: %w", err)
	}

	activeEmployees, err := s.DashboardRepository.CountActiveEmployees(ctx)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to count active employees: %w", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	attendance, err := s.DashboardRepository.TodayAttendanceByStatus(ctx, today)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to aggregate today's attendance: %w", err)
	}

	pendingLeave, err := s.leaveRepo.CountPending(ctx)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to count pending leave requests: %w", err)
	}

	openTasks, err := s.taskRepo.CountOpen(ctx)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to count open tasks: %w", err)
	}

	recent, err := s.notificationService.ListMine(ctx, notification.NotificationFilter{Page: 1, Limit: 5})
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to list recent notifications: %w", err)
	}

	return dashboard.Summary{
		ActiveWorkers:        activeWorkers,
		ActiveEmployees:      activeEmployees,
		TodayAttendance:      attendance,
		PendingLeaveRequests: pendingLeave,
		OpenTasks:            openTasks,
		RecentNotifications:  recent.Notifications,
	}, nil
}
