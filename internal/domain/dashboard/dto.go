package dashboard

import "github.com/sitehr/sitehr-backend-go/internal/domain/notification"

// Summary is the admin dashboard aggregate: headcounts, today's attendance
// by status, open work, and the viewer's latest notifications.
type Summary struct {
	ActiveWorkers        int                                 `json:"active_workers"`
	ActiveEmployees      int                                 `json:"active_employees"`
	TodayAttendance      map[string]int                      `json:"today_attendance"`
	PendingLeaveRequests int                                 `json:"pending_leave_requests"`
	OpenTasks            int                                 `json:"open_tasks"`
	RecentNotifications  []notification.NotificationResponse `json:"recent_notifications"`
}
