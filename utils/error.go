package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// Service error kinds, one per recovery strategy at the HTTP boundary.
const (
	KindNotFound     = "notFound"
	KindConflict     = "conflict"
	KindInvalidInput = "invalidInput"
	KindForbidden    = "forbidden"
	KindStateError   = "stateError"
)

// ServiceError carries a machine-distinguishable code plus a human-readable
// message. Service packages construct these; handlers map Kind to a status.
type ServiceError struct {
	Kind    string `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var kindStatus = map[string]int{
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
	KindInvalidInput: http.StatusBadRequest,
	KindForbidden:    http.StatusForbidden,
	KindStateError:   http.StatusUnprocessableEntity,
}

// RespondServiceError writes a ServiceError with its mapped status, or a
// generic 500 for unexpected failures, which are logged at error level.
func RespondServiceError(c *gin.Context, err error) {
	var se *ServiceError
	if errors.As(err, &se) {
		status, ok := kindStatus[se.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": se.Message, "code": se.Code})
		return
	}
	GetLogger().Error("unexpected failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
