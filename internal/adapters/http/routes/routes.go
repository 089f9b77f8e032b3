package routes

import (
	"nfc-coop/internal/adapters/http/handlers"
	"nfc-coop/internal/adapters/http/middleware"
	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/config"
	"nfc-coop/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	stationRepo := repositories.NewStationRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	savingsTypeRepo := repositories.NewSavingsTypeRepository(db)
	savingsAccountRepo := repositories.NewSavingsAccountRepository(db)

	loanTypeRepo := repositories.NewLoanTypeRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	repaymentRepo := repositories.NewLoanRepaymentRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	stationService := services.NewStationService(db, stationRepo, memberRepo, settingRepo)
	memberService := services.NewMemberService(db, memberRepo, stationRepo, settingRepo)
	savingsService := services.NewSavingsService(db, savingsAccountRepo, savingsTypeRepo, memberRepo)
	loanService := services.NewLoanService(db, loanRepo, loanTypeRepo, repaymentRepo, memberRepo, settingRepo)
	transactionService := services.NewTransactionService(transactionRepo)
	settingService := services.NewSettingService(settingRepo, memberRepo, stationRepo, loanRepo)
	dashboardService := services.NewDashboardService(memberRepo, savingsAccountRepo, loanRepo, transactionRepo)
	reportService := services.NewReportService(memberService, loanRepo, transactionRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	stationHandler := handlers.NewStationHandler(stationService)
	memberHandler := handlers.NewMemberHandler(memberService)
	savingsHandler := handlers.NewSavingsHandler(savingsService)
	loanHandler := handlers.NewLoanHandler(loanService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	settingHandler := handlers.NewSettingHandler(settingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check
	app.Get("/health", healthHandler.Check)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public + authenticated)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Everything below requires authentication
	protected := apiV1.Group("", middleware.AuthMiddleware(cfg))

	stationRoutes := protected.Group("/stations")
	setupStationRoutes(stationRoutes, stationHandler)

	memberRoutes := protected.Group("/members")
	setupMemberRoutes(memberRoutes, memberHandler, savingsHandler, loanHandler, reportHandler)

	savingsRoutes := protected.Group("/savings")
	setupSavingsRoutes(savingsRoutes, savingsHandler)

	loanRoutes := protected.Group("/loans")
	setupLoanRoutes(loanRoutes, loanHandler)

	protected.Get("/transactions", transactionHandler.List)
	protected.Get("/dashboard", dashboardHandler.Statistics)

	reportRoutes := protected.Group("/reports")
	setupReportRoutes(reportRoutes, reportHandler)

	// Settings (admin only)
	settingRoutes := protected.Group("/settings", middleware.AdminOnly())
	setupSettingRoutes(settingRoutes, settingHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, h *handlers.AuthHandler, cfg *config.Config) {
	router.Post("/login", h.Login)
	router.Post("/refresh", h.Refresh)

	router.Post("/logout", middleware.AuthMiddleware(cfg), h.Logout)
	router.Get("/me", middleware.AuthMiddleware(cfg), h.Me)
	router.Post("/users", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), h.CreateUser)
}

// setupStationRoutes configures station routes
func setupStationRoutes(router fiber.Router, h *handlers.StationHandler) {
	router.Post("/", h.Create)
	router.Get("/", h.List)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", middleware.AdminOnly(), h.Delete)
}

// setupMemberRoutes configures member routes plus the per-member
// savings, loan and statement sub-resources
func setupMemberRoutes(
	router fiber.Router,
	memberHandler *handlers.MemberHandler,
	savingsHandler *handlers.SavingsHandler,
	loanHandler *handlers.LoanHandler,
	reportHandler *handlers.ReportHandler,
) {
	router.Post("/", memberHandler.Create)
	router.Get("/", memberHandler.List)
	router.Get("/search", memberHandler.Search)
	router.Get("/:id", memberHandler.Get)
	router.Put("/:id", memberHandler.Update)
	router.Patch("/:id/status", memberHandler.ChangeStatus)
	router.Get("/:id/summary", memberHandler.Summary)

	router.Get("/:memberId/accounts", savingsHandler.ListMemberAccounts)
	router.Get("/:memberId/loans", loanHandler.ListByMember)
	router.Get("/:memberId/statement", reportHandler.MemberStatement)
}

// setupSavingsRoutes configures savings account routes
func setupSavingsRoutes(router fiber.Router, h *handlers.SavingsHandler) {
	router.Get("/types", h.ListTypes)
	router.Post("/accounts", h.CreateAccount)
	router.Get("/accounts/:id", h.GetAccount)
	router.Post("/accounts/:id/deposit", h.Deposit)
	router.Post("/accounts/:id/withdraw", h.Withdraw)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, h *handlers.LoanHandler) {
	router.Get("/types", h.ListTypes)
	router.Post("/", h.Disburse)
	router.Get("/", h.List)
	router.Get("/:id", h.Get)
	router.Post("/:id/repay", h.Repay)
	router.Get("/:id/repayments", h.ListRepayments)
}

// setupReportRoutes configures report routes
func setupReportRoutes(router fiber.Router, h *handlers.ReportHandler) {
	router.Get("/cashbook", h.Cashbook)
	router.Get("/loan-portfolio", h.LoanPortfolio)
	router.Get("/member-summaries", h.MemberSummaries)
}

// setupSettingRoutes configures system setting routes
func setupSettingRoutes(router fiber.Router, h *handlers.SettingHandler) {
	router.Get("/", h.All)
	router.Get("/:key", h.Get)
	router.Put("/:key", h.Set)
	router.Post("/resync-counters", h.ResyncCounters)
}
