package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/clinicore/backend/internal/application/billing"
	inventoryapp "github.com/clinicore/backend/internal/application/inventory"
	patientapp "github.com/clinicore/backend/internal/application/patient"
	staffapp "github.com/clinicore/backend/internal/application/staff"
	"github.com/clinicore/backend/internal/infrastructure/auth"
	"github.com/clinicore/backend/internal/infrastructure/config"
	"github.com/clinicore/backend/internal/infrastructure/event"
	"github.com/clinicore/backend/internal/infrastructure/logger"
	"github.com/clinicore/backend/internal/infrastructure/persistence"
	"github.com/clinicore/backend/internal/infrastructure/scheduler"
	"github.com/clinicore/backend/internal/interfaces/http/handler"
	"github.com/clinicore/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ClinicCore Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	patientRepo := persistence.NewGormPatientRepository(db.DB)
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	supplyRepo := persistence.NewGormSupplyItemRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)

	// Initialize application services
	patientService := patientapp.NewPatientService(patientRepo, log)
	memberService := staffapp.NewMemberService(memberRepo, log)
	supplyService := inventoryapp.NewSupplyService(supplyRepo, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, patientRepo, log)

	// Initialize event bus and inject it into services that publish events
	eventBus := event.NewInMemoryEventBus(log)
	invoiceService.SetEventPublisher(eventBus)

	// Start the overdue sweep scheduler (if enabled)
	if cfg.Scheduler.Enabled {
		sweeper := scheduler.NewOverdueSweeper(cfg.Scheduler.SweepInterval, invoiceService.SweepOverdue, log)
		if err := sweeper.Start(context.Background()); err != nil {
			log.Fatal("Failed to start overdue sweeper", zap.Error(err))
		}
		defer func() {
			if err := sweeper.Stop(context.Background()); err != nil {
				log.Error("Error stopping overdue sweeper", zap.Error(err))
			}
		}()
		log.Info("Overdue sweeper started", zap.Duration("interval", cfg.Scheduler.SweepInterval))
	}

	// Initialize JWT service and HTTP handlers
	jwtService := auth.NewJWTService(cfg.JWT)
	handlers := router.Handlers{
		Health:    handler.NewHealthHandler(db, cfg.App.Name, version),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Patient:   handler.NewPatientHandler(patientService),
		Staff:     handler.NewStaffHandler(memberService),
		Inventory: handler.NewInventoryHandler(supplyService),
	}

	engine := router.New(cfg, jwtService, handlers, log)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
