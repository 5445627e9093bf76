package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/sangkips/investify-receiving/internal/config"
)

var (
	defaultOrigins = []string{"http://localhost:3000", "http://localhost:3001", "http://127.0.0.1:3000"}
	defaultMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	defaultHeaders = []string{"Accept", "Content-Type", "Origin", "X-CSRF-Token"}

	// the receiving desk cannot work cross-origin without these
	requiredHeaders = []string{"Authorization", "X-Request-ID", IdempotencyKeyHeader}
	exposedHeaders  = []string{"Content-Length", "Content-Type", "X-Request-ID", IdempotencyReplayedHeader}
)

// CORSConfig builds the gin-contrib/cors settings for the receiving desk
// front end. A "*" origin allows any origin but then drops credentials.
func CORSConfig(cfg *config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowOrigins:     lo.Ternary(len(cfg.AllowedOrigins) > 0, cfg.AllowedOrigins, defaultOrigins),
		AllowMethods:     lo.Ternary(len(cfg.AllowedMethods) > 0, cfg.AllowedMethods, defaultMethods),
		AllowHeaders:     lo.Union(lo.Ternary(len(cfg.AllowedHeaders) > 0, cfg.AllowedHeaders, defaultHeaders), requiredHeaders),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if lo.Contains(out.AllowOrigins, "*") {
		out.AllowOrigins = nil
		out.AllowAllOrigins = true
		out.AllowCredentials = false
	}
	return out
}

// CORSMiddleware applies CORSConfig
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(CORSConfig(cfg))
}
