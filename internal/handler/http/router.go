package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sitehr/sitehr-backend-go/internal/handler/http/middleware"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Worker       WorkerHandler
	Employee     EmployeeHandler
	Site         SiteHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Task         TaskHandler
	Evaluation   EvaluationHandler
	Payroll      PayrollHandler
	Notification NotificationHandler
	Dashboard    DashboardHandler
}

func NewRouter(jwtService jwt.Service, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "sitehr"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/auth/change-password", h.Auth.ChangePassword)

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.Auth.ListUsers)
				r.Post("/", h.Auth.CreateUser)
				r.Post("/{id}/activate", h.Auth.ActivateUser)
				r.Post("/{id}/deactivate", h.Auth.DeactivateUser)
				r.Post("/{id}/reset-password", h.Auth.ResetPassword)
			})

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", h.Worker.List)
				r.Get("/{id}", h.Worker.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Worker.Create)
					r.Post("/import", h.Worker.Import)
					r.Put("/{id}", h.Worker.Update)
					r.Delete("/{id}", h.Worker.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/construction-sites", func(r chi.Router) {
				r.Get("/", h.Site.List)
				r.Get("/{id}", h.Site.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Site.Create)
					r.Put("/{id}", h.Site.Update)
					r.Delete("/{id}", h.Site.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/", h.Attendance.List)
				r.Get("/{id}", h.Attendance.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/daily", h.Attendance.RecordDaily)
					r.Post("/import", h.Attendance.Import)
					r.Post("/import/spreadsheet", h.Attendance.ImportSpreadsheet)
					r.Put("/{id}", h.Attendance.Update)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", h.Leave.Create)
				r.Get("/", h.Leave.List)
				r.Get("/{id}", h.Leave.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Task.List)
				r.Get("/{id}", h.Task.Get)
				r.Patch("/{id}/status", h.Task.UpdateStatus)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Task.Create)
				})
			})

			r.Route("/evaluations", func(r chi.Router) {
				r.Get("/", h.Evaluation.List)
				r.Get("/summary", h.Evaluation.Summary)
				r.Get("/{id}", h.Evaluation.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Evaluation.Create)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/calculate", h.Payroll.Calculate)
				r.Get("/", h.Payroll.List)
				r.Get("/export", h.Payroll.Export)
				r.Get("/{id}", h.Payroll.Get)
				r.Get("/{id}/payslip", h.Payroll.Payslip)

				r.Route("/adjustments", func(r chi.Router) {
					r.Get("/{kind}", h.Payroll.ListAdjustments)
					r.Post("/{kind}", h.Payroll.CreateAdjustment)
					r.Delete("/{kind}/{id}", h.Payroll.DeleteAdjustment)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/save", h.Payroll.Save)
					r.Post("/mark-paid", h.Payroll.MarkPaid)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.ListMine)
				r.Post("/read-all", h.Notification.MarkAllRead)
				r.Post("/{id}/read", h.Notification.MarkRead)
			})

			r.Get("/dashboard/summary", h.Dashboard.Summary)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
