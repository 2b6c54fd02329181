// Package api provides HTTP routing and server configuration for the
// GHXChange credit ledger. It wires together handlers, middleware, and
// services to create the application's API endpoints.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Neelshah1810/GHXChange/internal/api/handlers"
	"github.com/Neelshah1810/GHXChange/internal/api/middleware"
	"github.com/Neelshah1810/GHXChange/internal/config"
	"github.com/Neelshah1810/GHXChange/internal/ledger"
	"github.com/Neelshah1810/GHXChange/internal/service"
	"github.com/Neelshah1810/GHXChange/internal/store"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, st store.Store, logger *zap.Logger) *gin.Engine {
	// Set Gin mode
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg))

	// Initialize services
	userService := service.NewUserService(st, cfg)
	ledgerService := service.NewLedgerService(st, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, logger)
	creditsHandler := handlers.NewCreditsHandler(ledgerService, logger)
	certificatesHandler := handlers.NewCertificatesHandler(ledgerService, logger)
	statsHandler := handlers.NewStatsHandler(ledgerService, logger)

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)

		// Read-only ledger views
		public.GET("/balance/:address", creditsHandler.GetBalance)
		public.GET("/transactions", creditsHandler.ListTransactions)
		public.GET("/transactions/:address", creditsHandler.GetTransactions)
		public.GET("/certificates", certificatesHandler.List)
		public.GET("/certificates/:address", certificatesHandler.ListByProducer)
		public.GET("/producers", creditsHandler.ListProducers)
		public.GET("/stats", statsHandler.GetStats)
		public.GET("/users/:walletAddress/roles", authHandler.GetRoles)
	}

	// Protected routes (require authentication)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)
		protected.POST("/users/switch-role", authHandler.SwitchRole)
		protected.POST("/retire", creditsHandler.Retire)

		protected.POST("/issue", middleware.RequireRole(ledger.RoleProducer), creditsHandler.Issue)
		protected.POST("/purchase", middleware.RequireRole(ledger.RoleBuyer), creditsHandler.Purchase)
		protected.POST("/certificates/:certificateId/verify", middleware.RequireRole(ledger.RoleAuditor), certificatesHandler.Verify)
		protected.POST("/certificates/:certificateId/flag", middleware.RequireRole(ledger.RoleAuditor), certificatesHandler.Flag)
	}

	return router
}
