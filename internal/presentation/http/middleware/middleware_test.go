package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/config"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	infraRepo "github.com/sangkips/investify-receiving/internal/infrastructure/repository"
	"github.com/sangkips/investify-receiving/internal/logger"
	"github.com/sangkips/investify-receiving/internal/presentation/http/dto/response"
	"github.com/sangkips/investify-receiving/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withUser stands in for AuthMiddleware
func withUser(userID uuid.UUID, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_roles", roles)
		c.Next()
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()
	var body response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLocationMiddleware(t *testing.T) {
	branch := entity.Location{ID: uuid.New(), Name: "Main Branch", Slug: "main-branch"}
	locations := testutil.NewInMemoryLocationStore(branch)
	member := uuid.New()
	require.NoError(t, locations.AddMember(context.Background(), &entity.LocationMembership{LocationID: branch.ID, UserID: member}))

	newRouter := func(userID uuid.UUID, roles ...string) *gin.Engine {
		r := gin.New()
		r.GET("/locations/:location_id/ping", withUser(userID, roles...), LocationMiddleware(locations), func(c *gin.Context) {
			fromCtx, ok := infraRepo.GetLocationID(c.Request.Context())
			assert.True(t, ok)
			assert.Equal(t, GetLocationID(c), fromCtx)
			c.String(http.StatusOK, GetLocationID(c).String())
		})
		return r
	}

	tests := []struct {
		name     string
		userID   uuid.UUID
		roles    []string
		location string
		want     int
	}{
		{"member", member, []string{enum.RoleClerk}, branch.ID.String(), http.StatusOK},
		{"not a member", uuid.New(), []string{enum.RoleClerk}, branch.ID.String(), http.StatusForbidden},
		{"super admin bypass", uuid.New(), []string{enum.RoleSuperAdmin}, branch.ID.String(), http.StatusOK},
		{"unknown location", member, []string{enum.RoleClerk}, uuid.New().String(), http.StatusNotFound},
		{"malformed id", member, []string{enum.RoleClerk}, "main", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/locations/"+tt.location+"/ping", nil)
			newRouter(tt.userID, tt.roles...).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, branch.ID.String(), w.Body.String())
			}
		})
	}
}

func TestIdempotencyRequired(t *testing.T) {
	userID := uuid.New()
	store := testutil.NewInMemoryIdempotencyStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	var calls atomic.Int32
	var status atomic.Int32
	status.Store(http.StatusCreated)

	r := gin.New()
	r.POST("/commit", withUser(userID), IdempotencyRequired(IdempotencyConfig{
		Repo:   store,
		Logger: logger.NewNop(),
		Now:    func() time.Time { return now },
	}), func(c *gin.Context) {
		n := calls.Add(1)
		code := int(status.Load())
		if code >= 300 {
			response.ErrorWithCode(c, code, "sink down")
			return
		}
		response.Created(c, "Goods receipt saved", gin.H{"call": n})
	})

	post := func(key, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/commit", strings.NewReader(body))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("key is required", func(t *testing.T) {
		w := post("", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, calls.Load())
	})

	t.Run("failed response is not stored", func(t *testing.T) {
		status.Store(http.StatusBadGateway)
		w := post("k-retry", `{"note":"a"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Zero(t, store.Len())
		status.Store(http.StatusCreated)
	})

	t.Run("replay returns the stored response", func(t *testing.T) {
		before := calls.Load()
		first := post("k-1", `{"note":"a"}`)
		require.Equal(t, http.StatusCreated, first.Code)

		second := post("k-1", `{"note":"a"}`)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
		assert.JSONEq(t, first.Body.String(), second.Body.String())
		assert.Equal(t, before+1, calls.Load())
	})

	t.Run("same key with a different body is rejected", func(t *testing.T) {
		w := post("k-1", `{"note":"b"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.False(t, decode(t, w).Success)
	})

	t.Run("expired key runs again", func(t *testing.T) {
		before := calls.Load()
		now = now.Add(entity.IdempotencyTTL + time.Minute)
		w := post("k-1", `{"note":"b"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get(IdempotencyReplayedHeader))
		assert.Equal(t, before+1, calls.Load())
	})
}

func TestRequirePermission(t *testing.T) {
	newRouter := func(roles, permissions []string) *gin.Engine {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) {
			c.Set("user_roles", roles)
			c.Set("user_permissions", permissions)
			c.Next()
		}, RequirePermission(enum.PermissionReceiveGoods), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	tests := []struct {
		name        string
		roles       []string
		permissions []string
		want        int
	}{
		{"granted", []string{enum.RoleClerk}, []string{enum.PermissionReceiveGoods}, http.StatusNoContent},
		{"missing", []string{enum.RoleClerk}, nil, http.StatusForbidden},
		{"super admin", []string{enum.RoleSuperAdmin}, nil, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter(tt.roles, tt.permissions).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCORSConfig(t *testing.T) {
	t.Run("defaults keep required headers", func(t *testing.T) {
		cfg := CORSConfig(&config.CORSConfig{})
		assert.Equal(t, defaultOrigins, cfg.AllowOrigins)
		assert.Subset(t, cfg.AllowHeaders, []string{"Authorization", IdempotencyKeyHeader})
		assert.Contains(t, cfg.ExposeHeaders, IdempotencyReplayedHeader)
		assert.True(t, cfg.AllowCredentials)
	})

	t.Run("configured headers are extended once", func(t *testing.T) {
		cfg := CORSConfig(&config.CORSConfig{AllowedHeaders: []string{"Content-Type", "Authorization"}})
		assert.Equal(t, []string{"Content-Type", "Authorization", "X-Request-ID", IdempotencyKeyHeader}, cfg.AllowHeaders)
	})

	t.Run("wildcard origin drops credentials", func(t *testing.T) {
		cfg := CORSConfig(&config.CORSConfig{AllowedOrigins: []string{"*"}})
		assert.True(t, cfg.AllowAllOrigins)
		assert.Empty(t, cfg.AllowOrigins)
		assert.False(t, cfg.AllowCredentials)
	})

	t.Run("preflight from a desk origin", func(t *testing.T) {
		r := gin.New()
		r.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"https://desk.example.com"}}))
		r.POST("/commit", func(c *gin.Context) { c.Status(http.StatusCreated) })

		req := httptest.NewRequest(http.MethodOptions, "/commit", nil)
		req.Header.Set("Origin", "https://desk.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", IdempotencyKeyHeader)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://desk.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
