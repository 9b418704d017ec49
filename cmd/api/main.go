package main

import (
	"fmt"
	"net/http"

	"github.com/hrms-core/hrms-backend-go/internal/config"
	appHTTP "github.com/hrms-core/hrms-backend-go/internal/handler/http"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/cron"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/jwt"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/oauth"
	"github.com/hrms-core/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hrms-core/hrms-backend-go/internal/service/attendance"
	auditService "github.com/hrms-core/hrms-backend-go/internal/service/audit"
	authService "github.com/hrms-core/hrms-backend-go/internal/service/auth"
	complaintService "github.com/hrms-core/hrms-backend-go/internal/service/complaint"
	dashboardService "github.com/hrms-core/hrms-backend-go/internal/service/dashboard"
	employeeService "github.com/hrms-core/hrms-backend-go/internal/service/employee"
	leaveService "github.com/hrms-core/hrms-backend-go/internal/service/leave"
	payrollService "github.com/hrms-core/hrms-backend-go/internal/service/payroll"
	regularizationService "github.com/hrms-core/hrms-backend-go/internal/service/regularization"
	reimbursementService "github.com/hrms-core/hrms-backend-go/internal/service/reimbursement"
	resignationService "github.com/hrms-core/hrms-backend-go/internal/service/resignation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	attendanceSettingsRepo := postgresql.NewAttendanceSettingsRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	regularizationRepo := postgresql.NewRegularizationRepository(db)
	payrollSettingsRepo := postgresql.NewPayrollSettingsRepository(db)
	payrollBatchRepo := postgresql.NewPayrollBatchRepository(db)
	reimbursementRepo := postgresql.NewReimbursementRepository(db)
	resignationRepo := postgresql.NewResignationRepository(db)
	complaintRepo := postgresql.NewComplaintRepository(db)
	auditLogRepo := postgresql.NewAuditLogRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleService oauth.GoogleService
	if cfg.GoogleLoginEnabled() {
		googleService = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}

	auditSvc := auditService.NewService(auditLogRepo)
	authSvc := authService.NewService(userRepo, jwtService, googleService, auditSvc)
	employeeSvc := employeeService.NewService(employeeRepo, auditSvc)
	attendanceSvc := attendanceService.NewService(
		attendanceRepo,
		attendanceSettingsRepo,
		leaveRequestRepo,
		employeeRepo,
		payrollBatchRepo,
		auditSvc,
	)
	leaveSvc := leaveService.NewService(db, leaveTypeRepo, leaveRequestRepo, leaveBalanceRepo, employeeRepo, auditSvc)
	regularizationSvc := regularizationService.NewService(
		db,
		regularizationRepo,
		attendanceRepo,
		attendanceSettingsRepo,
		payrollBatchRepo,
		auditSvc,
	)
	payrollSvc := payrollService.NewService(
		db,
		payrollSettingsRepo,
		payrollBatchRepo,
		reimbursementRepo,
		employeeRepo,
		attendanceSvc,
		auditSvc,
	)
	reimbursementSvc := reimbursementService.NewService(reimbursementRepo, auditSvc)
	resignationSvc := resignationService.NewService(db, resignationRepo, employeeRepo, auditSvc)
	complaintSvc := complaintService.NewService(complaintRepo, auditSvc)
	dashboardSvc := dashboardService.NewService(dashboardRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	regularizationHandler := appHTTP.NewRegularizationHandler(regularizationSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reimbursementHandler := appHTTP.NewReimbursementHandler(reimbursementSvc)
	resignationHandler := appHTTP.NewResignationHandler(resignationSvc)
	complaintHandler := appHTTP.NewComplaintHandler(complaintSvc)
	auditHandler := appHTTP.NewAuditHandler(auditSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		[]string{cfg.App.FrontendURL},
		authHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		regularizationHandler,
		payrollHandler,
		reimbursementHandler,
		resignationHandler,
		complaintHandler,
		auditHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
