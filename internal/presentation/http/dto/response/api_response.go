package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/pkg/apperror"
	"github.com/sangkips/investify-receiving/pkg/pagination"
)

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Hint    string      `json:"hint,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// newMeta reuses the request id assigned by the logger middleware so a
// response can be matched to its log line
func newMeta(c *gin.Context) *Meta {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    newMeta(c),
	})
}

// SuccessWithPagination wraps a page of results
func SuccessWithPagination[T any](c *gin.Context, statusCode int, message string, result *pagination.PaginatedResult[T]) {
	Success(c, statusCode, message, result)
}

func fail(c *gin.Context, statusCode int, body APIResponse) {
	body.Success = false
	body.Meta = newMeta(c)
	c.JSON(statusCode, body)
}

// Error maps err to a status. An *apperror.AppError keeps its own code.
// Staging engine errors are mapped by category: failed commit preconditions
// are 422 with the operator hint, creation and commit rejections are 502.
// Anything else is a 500 that hides the cause from the client.
func Error(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok {
		fail(c, appErr.Code, APIResponse{Message: appErr.Message, Errors: appErr.Errors})
		return
	}

	code, message := http.StatusInternalServerError, "Internal server error"
	switch {
	case receiving.IsPrecondition(err):
		code, message = http.StatusUnprocessableEntity, err.Error()
	case receiving.IsCreation(err):
		code, message = http.StatusBadGateway, "Could not create the record"
	case receiving.IsCommit(err):
		code, message = http.StatusBadGateway, "Could not save the goods receipt"
	}
	_ = c.Error(err)
	fail(c, code, APIResponse{Message: message, Hint: receiving.Hint(err)})
}

func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	fail(c, statusCode, APIResponse{Message: message})
}

// ValidationError reports rejected request fields as 422
func ValidationError(c *gin.Context, fieldErrors []apperror.FieldError) {
	fail(c, http.StatusUnprocessableEntity, APIResponse{Message: "Validation failed", Errors: fieldErrors})
}

func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusInternalServerError, message)
}
