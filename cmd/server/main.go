package main

import (
	"log"
	"time"

	"helpdesk_app_go/config"
	"helpdesk_app_go/db"
	"helpdesk_app_go/handlers"
	"helpdesk_app_go/middleware"
	"helpdesk_app_go/models"
	"helpdesk_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.AuthUser{},
		&models.Profile{},
		&models.Session{},
		&models.PasswordResetToken{},
		&models.Ticket{},
		&models.TicketMessage{},
		&models.EmailSettings{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the singleton email settings row
	if err := services.EnsureDefaultEmailSettings(db.DB); err != nil {
		log.Fatalf("Failed to seed email settings: %v", err)
	}

	// Initialize file storage (R2 or local fallback)
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files (local avatar uploads)
	e.Static("/static", "static")

	// Public routes (no authentication required)
	e.POST("/api/auth/login", handlers.LoginHandler)
	e.POST("/api/auth/forgot-password", handlers.ForgotPasswordHandler)
	e.POST("/api/auth/reset-password", handlers.ResetPasswordHandler)

	// Protected routes (any authenticated staff member)
	protected := e.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/api/auth/logout", handlers.LogoutHandler)
		protected.GET("/api/me", handlers.GetCurrentUserHandler)
		protected.PUT("/api/me", handlers.UpdateMyProfile)
		protected.POST("/api/me/avatar", handlers.UploadAvatar)

		// Tickets and messages
		protected.GET("/api/tickets", handlers.GetTickets)
		protected.POST("/api/tickets", handlers.CreateTicket)
		protected.GET("/api/tickets/:id", handlers.GetTicket)
		protected.PUT("/api/tickets/:id", handlers.UpdateTicket)
		protected.GET("/api/tickets/:id/messages", handlers.GetTicketMessages)
		protected.POST("/api/tickets/:id/messages", handlers.CreateTicketMessage)

		// Customers
		protected.GET("/api/customers", handlers.GetCustomers)
		protected.POST("/api/customers", handlers.CreateCustomer)
		protected.GET("/api/customers/:id", handlers.GetCustomer)
		protected.PUT("/api/customers/:id", handlers.UpdateCustomer)

		// Reports
		protected.GET("/api/reports", handlers.GetTicketReport)
		protected.GET("/api/reports/export", handlers.ExportReportHandler)

		// Admin-only routes
		adminRoutes := protected.Group("")
		adminRoutes.Use(middleware.RequireRole(models.RoleAdmin))
		{
			adminRoutes.GET("/api/admin/agents", handlers.GetAgents)
			adminRoutes.POST("/api/admin/agents", handlers.CreateAgentHandler)
			adminRoutes.DELETE("/api/admin/agents/:id", handlers.DeleteAgentHandler)

			adminRoutes.GET("/api/settings/email", handlers.GetEmailSettings)
			adminRoutes.PUT("/api/settings/email", handlers.UpdateEmailSettings)
			adminRoutes.POST("/api/settings/email/test", handlers.TestEmailHandler)
		}
	}

	// Start background cleanup job (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
			if err := services.CleanupExpiredResetTokens(db.DB); err != nil {
				log.Printf("Error cleaning up expired reset tokens: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
