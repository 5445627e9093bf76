package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-receiving/internal/application/service"
	"github.com/sangkips/investify-receiving/internal/cache"
	domainRepo "github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/internal/infrastructure/repository"
	"github.com/sangkips/investify-receiving/internal/logger"
	"github.com/sangkips/investify-receiving/internal/presentation/http/handler"
	"github.com/sangkips/investify-receiving/internal/presentation/http/routes"
	"github.com/sangkips/investify-receiving/pkg/utils"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 15 * time.Second
	purgeInterval   = time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	cfg := a.cfg
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(a.db)
	locationRepo := repository.NewLocationRepository(a.db)
	productRepo := repository.NewProductRepository(a.db)
	categoryRepo := repository.NewCategoryRepository(a.db)
	supplierRepo := repository.NewSupplierRepository(a.db)
	receiptRepo := repository.NewGoodsReceiptRepository(a.db)
	idempotencyRepo := repository.NewIdempotencyRepository(a.db)

	// Initialize services
	catalogCache := cache.NewInMemoryCache(cfg.Receiving.CatalogCacheTTL, time.Minute)
	catalogService := service.NewCatalogService(productRepo, catalogCache, cfg.Receiving.CatalogCacheTTL)
	receivingService := a.receivingService(catalogService)
	authService := service.NewAuthService(userRepo, locationRepo, jwtManager)
	supplierService := service.NewSupplierService(supplierRepo)
	receiptService := service.NewReceiptService(receiptRepo, locationRepo)
	categoryService := service.NewCategoryService(categoryRepo)

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Receiving: handler.NewReceivingHandler(receivingService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Catalog:   handler.NewCatalogHandler(catalogService, categoryService),
		Receipt:   handler.NewReceiptHandler(receiptService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          a.log,
		LocationRepo:    locationRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go purgeLoop(ctx, a.log, receivingService, idempotencyRepo)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.log.Infow("starting server", "name", cfg.App.Name, "port", cfg.App.Port, "env", cfg.App.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// purgeLoop drops stale drafts and expired idempotency keys until ctx ends
func purgeLoop(ctx context.Context, log *logger.Logger, receivingService *service.ReceivingService, idempotencyRepo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := receivingService.PurgeStale(ctx); err != nil {
				log.Warnw("stale draft purge failed", "error", err)
			}
			if n, err := idempotencyRepo.DeleteExpired(ctx, now); err != nil {
				log.Warnw("idempotency key purge failed", "error", err)
			} else if n > 0 {
				log.Infow("purged expired idempotency keys", "count", n)
			}
		}
	}
}
