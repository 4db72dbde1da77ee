package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sitehr/sitehr-backend-go/internal/config"
	"github.com/sitehr/sitehr-backend-go/internal/domain/attendance"
	appHTTP "github.com/sitehr/sitehr-backend-go/internal/handler/http"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/jwt"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/oauth"
	"github.com/sitehr/sitehr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/sitehr/sitehr-backend-go/internal/service/attendance"
	authService "github.com/sitehr/sitehr-backend-go/internal/service/auth"
	dashboardService "github.com/sitehr/sitehr-backend-go/internal/service/dashboard"
	employeeService "github.com/sitehr/sitehr-backend-go/internal/service/employee"
	evaluationService "github.com/sitehr/sitehr-backend-go/internal/service/evaluation"
	leaveService "github.com/sitehr/sitehr-backend-go/internal/service/leave"
	notificationService "github.com/sitehr/sitehr-backend-go/internal/service/notification"
	payrollService "github.com/sitehr/sitehr-backend-go/internal/service/payroll"
	siteService "github.com/sitehr/sitehr-backend-go/internal/service/site"
	taskService "github.com/sitehr/sitehr-backend-go/internal/service/task"
	workerService "github.com/sitehr/sitehr-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "sitehr"),
	)

	db, err := database.Connect(cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	lineItemRepo := postgresql.NewPayrollRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	evaluationRepo := postgresql.NewEvaluationRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(
		cfg.OAuth2Google.ClientID,
		cfg.OAuth2Google.ClientSecret,
		cfg.OAuth2Google.RedirectURL,
		cfg.OAuth2Google.Scopes,
	)

	schedule := attendance.Schedule{
		StartHour:    cfg.Workday.StartHour,
		EndHour:      cfg.Workday.EndHour,
		GraceMinutes: cfg.Workday.GraceMinutes,
	}

	notificationSvc := notificationService.NewNotificationService(db, notificationRepo)
	authSvc := authService.NewAuthService(db, userRepo, refreshTokenRepo, jwtService, googleService, logger)
	workerSvc := workerService.NewWorkerService(db, workerRepo, logger)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	siteSvc := siteService.NewSiteService(db, siteRepo, employeeRepo, logger)
	attendanceSvc := attendanceService.NewRecordService(db, attendanceRepo, workerRepo, employeeRepo, schedule, logger)
	payrollSvc := payrollService.NewPayrollService(db, lineItemRepo, adjustmentRepo, attendanceRepo, workerRepo, employeeRepo, cfg.Workday, logger)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeRepo, userRepo, notificationSvc, logger)
	taskSvc := taskService.NewTaskService(db, taskRepo, employeeRepo, userRepo, notificationSvc, logger)
	evaluationSvc := evaluationService.NewEvaluationService(db, evaluationRepo, workerRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(db, dashboardRepo, leaveRepo, taskRepo, notificationSvc)

	router := appHTTP.NewRouter(jwtService, []string{cfg.App.FrontendURL}, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc, jwtService, cfg.App.FrontendURL),
		Worker:       appHTTP.NewWorkerHandler(workerSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Site:         appHTTP.NewSiteHandler(siteSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Task:         appHTTP.NewTaskHandler(taskSvc),
		Evaluation:   appHTTP.NewEvaluationHandler(evaluationSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
