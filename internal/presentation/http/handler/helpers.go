package handler

import (
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sangkips/investify-receiving/internal/application/service"
	"github.com/sangkips/investify-receiving/internal/presentation/http/dto/response"
	"github.com/sangkips/investify-receiving/internal/presentation/http/middleware"
	"github.com/sangkips/investify-receiving/pkg/apperror"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	list, _ := roles.([]string)
	return list
}

// GetUserPermissions extracts the user permissions from the Gin context
func GetUserPermissions(c *gin.Context) []string {
	permissions, exists := c.Get("user_permissions")
	if !exists {
		return nil
	}
	list, _ := permissions.([]string)
	return list
}

// GetActor builds the service actor of the authenticated user
func GetActor(c *gin.Context) (service.Actor, bool) {
	userID := GetUserID(c)
	if userID == nil {
		return service.Actor{}, false
	}
	return service.Actor{
		ID:          *userID,
		Roles:       GetUserRoles(c),
		Permissions: GetUserPermissions(c),
	}, true
}

// GetLocationID returns the location resolved by the location middleware
func GetLocationID(c *gin.Context) uuid.UUID {
	return middleware.GetLocationID(c)
}

// bindError answers a failed ShouldBind. Field validation failures are 422
// with one entry per field, anything else is a malformed body.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.ValidationError(c, lo.Map(verrs, func(fe validator.FieldError, _ int) apperror.FieldError {
			return apperror.FieldError{Field: fe.Field(), Message: validationMessage(fe)}
		}))
		return
	}
	response.BadRequest(c, "Invalid request body")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email"
	default:
		return "is invalid"
	}
}
