package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/middleware"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	allowedOrigins []string,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	regularizationHandler RegularizationHandler,
	payrollHandler PayrollHandler,
	reimbursementHandler ReimbursementHandler,
	resignationHandler ResignationHandler,
	complaintHandler ComplaintHandler,
	auditHandler AuditHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.GoogleLogin)
				r.Get("/callback/google", authHandler.GoogleCallback)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", employeeHandler.Get)

				// HR or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/", attendanceHandler.ListMonthly)
				r.Get("/summary", attendanceHandler.Summary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/manual", attendanceHandler.ManualEntry)
					r.Get("/settings", attendanceHandler.GetSettings)
					r.Put("/settings", attendanceHandler.UpdateSettings)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/types", func(r chi.Router) {
					r.Get("/", leaveHandler.ListTypes)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Post("/", leaveHandler.CreateType)
						r.Put("/{id}", leaveHandler.UpdateType)
						r.Delete("/{id}", leaveHandler.DeleteType)
					})
				})

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.Apply)
					r.Get("/", leaveHandler.List)
					r.Get("/{id}", leaveHandler.Get)
					r.Post("/{id}/withdraw", leaveHandler.Withdraw)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Post("/{id}/approve", leaveHandler.Approve)
						r.Post("/{id}/reject", leaveHandler.Reject)
					})
				})

				r.Get("/balances", leaveHandler.Balances)
			})

			r.Route("/regularizations", func(r chi.Router) {
				r.Post("/", regularizationHandler.Submit)
				r.Get("/", regularizationHandler.List)
				r.Get("/{id}", regularizationHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/{id}/process", regularizationHandler.Process)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/slips", payrollHandler.ListSlipsByEmployee)
				r.Get("/slips/{id}", payrollHandler.GetSlip)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/settings", payrollHandler.GetSettings)
					r.Put("/settings", payrollHandler.UpdateSettings)
					r.Post("/batches", payrollHandler.ProcessBatch)
					r.Get("/batches", payrollHandler.ListBatches)
					r.Get("/batches/{id}", payrollHandler.GetBatch)
					r.Get("/batches/{id}/slips", payrollHandler.ListSlipsByBatch)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/batches/{id}/mark-paid", payrollHandler.MarkPaid)
				})
			})

			r.Route("/reimbursements", func(r chi.Router) {
				r.Post("/", reimbursementHandler.Submit)
				r.Get("/", reimbursementHandler.List)
				r.Get("/{id}", reimbursementHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/{id}/process", reimbursementHandler.Process)
				})
			})

			r.Route("/resignations", func(r chi.Router) {
				r.Post("/", resignationHandler.Submit)
				r.Get("/{id}", resignationHandler.Get)
				r.Post("/{id}/withdraw", resignationHandler.Withdraw)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", resignationHandler.List)
					r.Post("/{id}/process", resignationHandler.Process)
				})
			})

			r.Route("/complaints", func(r chi.Router) {
				r.Post("/", complaintHandler.Submit)
				r.Get("/", complaintHandler.List)
				r.Get("/{id}", complaintHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/{id}/respond", complaintHandler.Respond)
					r.Post("/{id}/close", complaintHandler.Close)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHR)
				r.Get("/dashboard", dashboardHandler.Summary)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/audit-logs", auditHandler.List)
			})
		})
	})

	return r
}
