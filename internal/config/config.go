package config

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/sangkips/investify-receiving/internal/domain/receiving"
)

type Config struct {
	App       AppConfig      `validate:"required"`
	Database  DatabaseConfig `validate:"required"`
	JWT       JWTConfig      `validate:"required"`
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	Receiving ReceivingConfig `validate:"required"`
}

type AppConfig struct {
	Name  string `validate:"required"`
	Env   string `validate:"oneof=development staging production test"`
	Port  string `validate:"required,numeric"`
	Debug bool
}

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     string `validate:"required,numeric"`
	Name     string `validate:"required"`
	User     string `validate:"required"`
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string        `validate:"required,min=16"`
	ExpiryHours        time.Duration `validate:"gt=0"`
	RefreshExpiryHours time.Duration `validate:"gt=0"`
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int `validate:"gte=0"`
	Duration int `validate:"gte=0"`
}

type LoggingConfig struct {
	Level string `validate:"omitempty,oneof=debug info warn error"`
}

// ReceivingConfig tunes the goods-receipt staging engine.
type ReceivingConfig struct {
	MaxImportPrice     int64         `validate:"gt=0"`
	MaxQuantity        int64         `validate:"gt=0"`
	RetailMarkup       string        `validate:"required,numeric"`
	DraftStaleAfter    time.Duration `validate:"gt=0"`
	SessionIdle        time.Duration `validate:"gt=0"`
	RequirePaymentType bool
	PriceUpdateRoles   []string      `validate:"min=1,dive,required"`
	DraftStore         string        `validate:"oneof=postgres memory"`
	CatalogCacheTTL    time.Duration `validate:"gte=0"`
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "investify-receiving")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "investify")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Nairobi")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("RECEIVING_MAX_IMPORT_PRICE", receiving.DefaultMaxImportPrice)
	viper.SetDefault("RECEIVING_MAX_QUANTITY", receiving.DefaultMaxQuantity)
	viper.SetDefault("RECEIVING_RETAIL_MARKUP", "1.5")
	viper.SetDefault("RECEIVING_DRAFT_STALE_AFTER_HOURS", 24)
	viper.SetDefault("RECEIVING_SESSION_IDLE_MINUTES", 720)
	viper.SetDefault("RECEIVING_REQUIRE_PAYMENT_TYPE", true)
	viper.SetDefault("RECEIVING_PRICE_UPDATE_ROLES", "super-admin,admin,manager")
	viper.SetDefault("RECEIVING_DRAFT_STORE", "postgres")
	viper.SetDefault("RECEIVING_CATALOG_CACHE_SECONDS", 30)

	cfg := &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetStringSlice("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(viper.GetStringSlice("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(viper.GetStringSlice("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(viper.GetString("LOG_LEVEL")),
		},
		Receiving: ReceivingConfig{
			MaxImportPrice:     viper.GetInt64("RECEIVING_MAX_IMPORT_PRICE"),
			MaxQuantity:        viper.GetInt64("RECEIVING_MAX_QUANTITY"),
			RetailMarkup:       viper.GetString("RECEIVING_RETAIL_MARKUP"),
			DraftStaleAfter:    time.Duration(viper.GetInt("RECEIVING_DRAFT_STALE_AFTER_HOURS")) * time.Hour,
			SessionIdle:        time.Duration(viper.GetInt("RECEIVING_SESSION_IDLE_MINUTES")) * time.Minute,
			RequirePaymentType: viper.GetBool("RECEIVING_REQUIRE_PAYMENT_TYPE"),
			PriceUpdateRoles:   splitList(viper.GetStringSlice("RECEIVING_PRICE_UPDATE_ROLES")),
			DraftStore:         viper.GetString("RECEIVING_DRAFT_STORE"),
			CatalogCacheTTL:    time.Duration(viper.GetInt("RECEIVING_CATALOG_CACHE_SECONDS")) * time.Second,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of the whole configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Policy converts the receiving settings into engine limits.
func (c ReceivingConfig) Policy() receiving.Policy {
	p := receiving.DefaultPolicy()
	p.MaxImportPrice = c.MaxImportPrice
	p.MaxQuantity = c.MaxQuantity
	if markup, err := decimal.NewFromString(c.RetailMarkup); err == nil && markup.IsPositive() {
		p.RetailMarkup = markup
	}
	p.StaleAfter = c.DraftStaleAfter
	p.RequirePaymentType = c.RequirePaymentType
	return p
}

// splitList accepts both list values and a single comma separated string, as
// environment variables arrive.
func splitList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
