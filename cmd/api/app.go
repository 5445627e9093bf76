package main

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sangkips/investify-receiving/internal/application/service"
	"github.com/sangkips/investify-receiving/internal/cache"
	"github.com/sangkips/investify-receiving/internal/config"
	domainRepo "github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/internal/infrastructure/database"
	"github.com/sangkips/investify-receiving/internal/infrastructure/repository"
	"github.com/sangkips/investify-receiving/internal/logger"
	"gorm.io/gorm"
)

// app is the wired process shared by every command
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	db     *gorm.DB
	drafts domainRepo.DraftStore
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	logger.L = log

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, db: db}
	switch cfg.Receiving.DraftStore {
	case "memory":
		log.Warnw("drafts are kept in memory and will not survive a restart")
		a.drafts = repository.NewMemoryDraftStore(cache.NewInMemoryCache(cache.NoExpiration, 10*time.Minute))
	default:
		a.drafts = repository.NewDraftSnapshotRepository(db)
	}
	return a, nil
}

// receivingService wires the staging service over the database
func (a *app) receivingService(catalog *service.CatalogService) *service.ReceivingService {
	sessions := cache.NewInMemoryCache(a.cfg.Receiving.SessionIdle, time.Minute)
	sessions.OnEvicted(func(key string, _ interface{}) {
		a.log.Debugw("receiving session released", "key", key)
	})

	return service.NewReceivingService(
		catalog,
		repository.NewProductRepository(a.db),
		service.NewSupplierService(repository.NewSupplierRepository(a.db)),
		a.drafts,
		repository.NewGoodsReceiptRepository(a.db),
		service.NewRoleAuthorizer(a.cfg.Receiving.PriceUpdateRoles),
		sessions,
		a.cfg.Receiving.Policy(),
		a.log.With("component", "receiving"),
	)
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}
