package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/printsetu/printsetu-api/internal/application/service"
	"github.com/printsetu/printsetu-api/internal/config"
	"github.com/printsetu/printsetu-api/internal/domain/pricing"
	"github.com/printsetu/printsetu-api/internal/infrastructure/database"
	"github.com/printsetu/printsetu-api/internal/infrastructure/repository"
	"github.com/printsetu/printsetu-api/internal/presentation/http/handler"
	"github.com/printsetu/printsetu-api/internal/presentation/http/routes"
	"github.com/printsetu/printsetu-api/pkg/email"
	"github.com/printsetu/printsetu-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	ratePlanRepo := repository.NewRatePlanRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// GST classifier for the seller's registration state
	classifier := pricing.NewClassifier(cfg.Tax.SellerHomeState).
		WithInternationalRate(cfg.Tax.InternationalRate)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	pricingService := service.NewPricingService(ratePlanRepo, classifier)
	orderService := service.NewOrderService(orderRepo, customerRepo, pricingService, emailService)
	customerService := service.NewCustomerService(customerRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Pricing:  handler.NewPricingHandler(pricingService),
		RatePlan: handler.NewRatePlanHandler(pricingService),
		Order:    handler.NewOrderHandler(orderService),
		Customer: handler.NewCustomerHandler(customerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
