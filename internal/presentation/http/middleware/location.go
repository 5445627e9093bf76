package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"github.com/sangkips/investify-receiving/internal/domain/repository"
	infraRepo "github.com/sangkips/investify-receiving/internal/infrastructure/repository"
	"github.com/sangkips/investify-receiving/internal/presentation/http/dto/response"
)

// LocationParam is the route parameter carrying the location id
const LocationParam = "location_id"

// LocationMiddleware resolves the :location_id route parameter, checks the
// caller belongs to it and scopes the request context to it. Super admins may
// open any existing location.
func LocationMiddleware(locationRepo repository.LocationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		locationID, err := uuid.Parse(c.Param(LocationParam))
		if err != nil {
			response.BadRequest(c, "Invalid location ID")
			c.Abort()
			return
		}

		location, err := locationRepo.GetByID(c.Request.Context(), locationID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if location == nil {
			response.NotFound(c, "Location not found")
			c.Abort()
			return
		}

		userID, _ := c.Get("user_id")
		roles, _ := c.Get("user_roles")
		roleNames, _ := roles.([]string)
		if !lo.Contains(roleNames, enum.RoleSuperAdmin) {
			id, ok := userID.(uuid.UUID)
			if !ok {
				response.Unauthorized(c, "User not authenticated")
				c.Abort()
				return
			}
			isMember, err := locationRepo.IsMember(c.Request.Context(), location.ID, id)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			if !isMember {
				response.Forbidden(c, "Access denied to this location")
				c.Abort()
				return
			}
		}

		// Gin context for middleware/handlers, request context for repositories
		c.Set("location_id", location.ID)
		c.Set("location", location)
		ctx := infraRepo.WithLocation(c.Request.Context(), location.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetLocationID retrieves the location ID from gin context
func GetLocationID(c *gin.Context) uuid.UUID {
	locationID, exists := c.Get("location_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := locationID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
