// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"rezopay/internal/handlers"
	"rezopay/internal/metrics"
	"rezopay/internal/middleware"
	"rezopay/internal/models"
	"rezopay/internal/repositories"
	"rezopay/internal/services/auth"
	"rezopay/internal/services/commission"
	"rezopay/internal/services/scheme"
	"rezopay/internal/services/transaction"
	"rezopay/internal/services/user"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	schemeRepo := repositories.NewSchemeRepository(db)
	commissionRepo := repositories.NewCommissionRepository(db, repositories.CacheService)
	transactionRepo := repositories.NewTransactionRepository(db)

	// Settlement engine: resolver over the scheme tree, distribution over
	// the user chain, ledger writes through the transaction repository.
	settlementMetrics := metrics.NewSettlementMetrics()
	resolver := commission.NewResolver(schemeRepo, commissionRepo)
	engine := commission.NewEngine(resolver, userRepo, transactionRepo, settlementMetrics)

	// Initialize services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, schemeRepo)
	schemeService := scheme.NewService(schemeRepo, commissionRepo)
	transactionService := transaction.NewService(db, transactionRepo, schemeRepo, engine)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	schemeHandler := handlers.NewSchemeHandler(schemeService)
	commissionHandler := handlers.NewCommissionHandler(schemeService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Rezopay API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})
	app.Get("/health", handlers.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(userRepo)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Get("/me", userHandler.Me)
	protected.Get("/services", schemeHandler.Services)

	setupUserRoutes(protected, userHandler)
	setupSchemeRoutes(protected, schemeHandler, commissionHandler)
	setupTransactionRoutes(protected, transactionHandler)
}

func setupUserRoutes(router fiber.Router, h *handlers.UserHandler) {
	users := router.Group("/users")
	users.Post("/", h.Onboard)
	users.Get("/", h.ListSubordinates)
	users.Patch("/:id/status", h.SetStatus)
	users.Delete("/:id", h.Delete)
}

func setupSchemeRoutes(router fiber.Router, h *handlers.SchemeHandler, ch *handlers.CommissionHandler) {
	// Scheme and commission management is restricted to the configuring
	// tiers of the ladder.
	schemes := router.Group("/schemes", middleware.RequireRoles(
		models.RoleSuperAdmin,
		models.RoleAdmin,
		models.RoleWhiteLabel,
	))
	schemes.Post("/", h.Create)
	schemes.Get("/", h.List)
	schemes.Get("/:id", h.Get)
	schemes.Put("/:id", h.Update)
	schemes.Delete("/:id", h.Delete)

	schemes.Post("/commissions", ch.Setup)
	schemes.Get("/:id/commissions", ch.ListForScheme)
}

func setupTransactionRoutes(router fiber.Router, h *handlers.TransactionHandler) {
	txns := router.Group("/transactions")
	txns.Post("/", h.Create)
	txns.Get("/", h.History)
	txns.Get("/:id/ledger", h.Ledger)

	router.Get("/earnings", h.Earnings)
}
