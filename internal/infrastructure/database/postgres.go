package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sangkips/investify-receiving/internal/config"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"github.com/sangkips/investify-receiving/internal/logger"
	"github.com/sangkips/investify-receiving/pkg/utils"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormLogger.Warn
	if cfg.App.Debug {
		logLevel = gormLogger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.Database.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.L.Infow("connected to PostgreSQL", "host", cfg.Database.Host, "database", cfg.Database.Name)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logger.L.Info("running database migrations")

	err := db.AutoMigrate(
		// Access
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.Location{},
		&entity.LocationMembership{},

		// Catalog
		&entity.Category{},
		&entity.Product{},
		&entity.ProductLocation{},
		&entity.Supplier{},

		// Receiving
		&entity.GoodsReceipt{},
		&entity.GoodsReceiptLine{},
		&entity.DraftSnapshot{},

		// System
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.L.Info("database migrations completed")
	return nil
}

// clerkPermissions lets a clerk stage receipts but not change prices
var clerkPermissions = []string{
	enum.PermissionReceiveGoods,
	enum.PermissionManageSuppliers,
	enum.PermissionViewReceipts,
}

// rolePermissions is the permission set of each built-in role
var rolePermissions = map[string][]string{
	enum.RoleSuperAdmin: enum.AllPermissions(),
	enum.RoleAdmin:      enum.AllPermissions(),
	enum.RoleManager:    enum.AllPermissions(),
	enum.RoleClerk:      clerkPermissions,
}

// SeedDefaultData seeds permissions, roles, a default location and the
// super admin configured through ADMIN_EMAIL and ADMIN_PASSWORD.
func SeedDefaultData(db *gorm.DB) error {
	logger.L.Info("seeding default data")

	for _, name := range enum.AllPermissions() {
		p := entity.Permission{Name: name, GuardName: "web"}
		if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("failed to seed permission %s: %w", name, err)
		}
	}

	var allPermissions []entity.Permission
	if err := db.Find(&allPermissions).Error; err != nil {
		return err
	}

	for roleName, names := range rolePermissions {
		if err := seedRole(db, roleName, names, allPermissions); err != nil {
			return err
		}
	}

	location := entity.Location{
		Name:     "Main Store",
		Slug:     "main-store",
		Settings: entity.DefaultLocationSettings(),
	}
	if err := db.Where(entity.Location{Slug: location.Slug}).FirstOrCreate(&location).Error; err != nil {
		return fmt.Errorf("failed to seed default location: %w", err)
	}

	if err := seedAdmin(db, location.ID); err != nil {
		return err
	}

	logger.L.Info("default data seeding completed")
	return nil
}

func seedRole(db *gorm.DB, name string, permissionNames []string, all []entity.Permission) error {
	var role entity.Role
	err := db.Where("name = ?", name).First(&role).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	role = entity.Role{
		Name:      name,
		GuardName: "web",
		Permissions: lo.Filter(all, func(p entity.Permission, _ int) bool {
			return lo.Contains(permissionNames, p.Name)
		}),
	}
	if err := db.Create(&role).Error; err != nil {
		return fmt.Errorf("failed to seed role %s: %w", name, err)
	}
	return nil
}

func seedAdmin(db *gorm.DB, locationID uuid.UUID) error {
	adminEmail := strings.ToLower(strings.TrimSpace(viper.GetString("ADMIN_EMAIL")))
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		logger.L.Infow("super admin user already exists", "email", adminEmail)
		return nil
	}

	hashedPassword, err := utils.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	var saRole entity.Role
	if err := db.Where("name = ?", enum.RoleSuperAdmin).First(&saRole).Error; err != nil {
		return fmt.Errorf("super-admin role missing: %w", err)
	}

	if adminName == "" {
		adminName = "Super Admin"
	}
	firstName, lastName, _ := strings.Cut(adminName, " ")

	username, _, _ := strings.Cut(adminEmail, "@")

	admin := entity.User{
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Email:     adminEmail,
		Password:  hashedPassword,
		IsActive:  true,
		Roles:     []entity.Role{saRole},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create super admin user: %w", err)
		}
		membership := &entity.LocationMembership{LocationID: locationID, UserID: admin.ID}
		if err := tx.Omit(clause.Associations).Create(membership).Error; err != nil {
			return err
		}
		logger.L.Infow("super admin user created", "email", adminEmail)
		return nil
	})
}
