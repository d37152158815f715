package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"rental-backend/internal/auth"
	"rental-backend/internal/cache"
	"rental-backend/internal/config"
	"rental-backend/internal/database"
	"rental-backend/internal/db"
	"rental-backend/internal/handlers"
	"rental-backend/internal/health"
	router "rental-backend/internal/http"
	"rental-backend/internal/middleware"
	"rental-backend/internal/repositories"
	"rental-backend/internal/services"
	"rental-backend/internal/storage"
	"rental-backend/migrations"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool, migrations.FS)
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	redisCache, err := cache.New(cfg)
	if err != nil {
		log.Printf("[Redis] unavailable, continuing without cache: %v", err)
	}

	archiver, err := storage.New(ctx, cfg)
	if err != nil {
		log.Printf("[Archive] disabled: %v", err)
	}

	// Repositories
	itemRepo := repositories.NewBillableItemRepository(pool)
	chargeRepo := repositories.NewChargeRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	directoryRepo := repositories.NewDirectoryRepository(pool)
	userRepo := repositories.NewUserRepository(pool)
	subscriptionRepo := repositories.NewSubscriptionRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	chargeService := services.NewChargeService(itemRepo, chargeRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, chargeRepo, itemRepo, directoryRepo, paymentRepo, chargeRepo, cfg)
	paymentService := services.NewPaymentService(paymentRepo, invoiceRepo)
	statementService := services.NewStatementService(invoiceRepo, paymentRepo, directoryRepo)
	cashflowService := services.NewCashFlowService(paymentRepo, directoryRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, redisCache)
	documentService := services.NewDocumentService(invoiceService, statementService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	chargeHandler := handlers.NewChargeHandler(chargeService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, documentService, archiver)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	statementHandler := handlers.NewStatementHandler(statementService, documentService, archiver)
	cashflowHandler := handlers.NewCashFlowHandler(cashflowService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	directoryHandler := handlers.NewDirectoryHandler(directoryRepo)
	healthHandler := handlers.NewHealthHandler(health.NewChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	r := router.NewRouter(
		authHandler,
		chargeHandler,
		invoiceHandler,
		paymentHandler,
		statementHandler,
		cashflowHandler,
		subscriptionHandler,
		directoryHandler,
		healthHandler,
		authMiddleware,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(r)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
