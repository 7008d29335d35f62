package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/lubepos-api/internal/application/cart"
	"github.com/sangkips/lubepos-api/internal/application/service"
	"github.com/sangkips/lubepos-api/internal/config"
	"github.com/sangkips/lubepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/internal/infrastructure/memory"
	"github.com/sangkips/lubepos-api/internal/presentation/http/handler"
	"github.com/sangkips/lubepos-api/internal/presentation/http/routes"
	"github.com/sangkips/lubepos-api/pkg/logger"
	"github.com/sangkips/lubepos-api/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Money goes out as JSON numbers, e.g. 39.99 rather than "39.99"
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize stores
	inventory := memory.NewInventoryStore()
	userRepo := memory.NewUserRepository()
	saleRepo := memory.NewSaleRepository()
	idempotencyRepo := memory.NewIdempotencyRepository()
	catalogRepo, err := memory.NewCatalogRepository(memory.DemoProducts())
	if err != nil {
		zapLogger.Fatal("invalid product catalog", zap.Error(err))
	}

	if cfg.App.SeedDemoData {
		if err := memory.Seed(ctx, inventory, userRepo); err != nil {
			zapLogger.Warn("failed to seed demo data", zap.Error(err))
		}
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		zapLogger.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	sessions := cart.NewSessions(cart.SessionsConfig{
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
	})
	defer sessions.Close()

	// Initialize services
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, service.PrinterServiceConfig{
		Header: entity.ReceiptHeader{
			StoreName: cfg.Store.Name,
			Address:   cfg.Store.Address,
			Phone:     cfg.Store.Phone,
		},
		PrinterType: cfg.Printer.Type,
		CharWidth:   cfg.Printer.CharWidth,
	}, zapLogger)
	catalogService := service.NewCatalogService(catalogRepo)
	posService := service.NewPOSService(sessions, catalogRepo, inventory.Items(), saleRepo, printerService, zapLogger)
	itemService := service.NewItemService(inventory.Items(), cfg.Store.LowStockThreshold)
	categoryService := service.NewCategoryService(inventory.Categories())
	userService := service.NewUserService(userRepo)
	saleService := service.NewSaleService(saleRepo)
	dashboardService := service.NewDashboardService(saleRepo, inventory.Items(), userRepo, cfg.Store.LowStockThreshold)
	reportService := service.NewReportService(dashboardService, &service.SummaryGenerator{StoreName: cfg.Store.Name})

	// Initialize handlers
	handlers := &routes.Handlers{
		Catalog:   handler.NewCatalogHandler(catalogService),
		POS:       handler.NewPOSHandler(posService),
		Item:      handler.NewItemHandler(itemService),
		Category:  handler.NewCategoryHandler(categoryService),
		User:      handler.NewUserHandler(userService),
		Sale:      handler.NewSaleHandler(saleService, printerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Report:    handler.NewReportHandler(reportService, zapLogger),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	rateLimiter := routes.NewRateLimiter(&cfg.RateLimit)
	defer rateLimiter.Close()

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          zapLogger,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	go purgeIdempotencyKeys(ctx, idempotencyRepo, time.Hour, zapLogger)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// purgeIdempotencyKeys drops expired keys every interval until ctx is done
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				logger.Warn("failed to purge idempotency keys", zap.Error(err))
			}
		}
	}
}
