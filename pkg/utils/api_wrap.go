package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondSuccessWithCode(c, http.StatusOK, data, message)
}

func RespondSuccessWithCode(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Error:   message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps a service error onto an HTTP status and a client-safe message.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRating):
		RespondError(c, http.StatusBadRequest, MsgInvalidRating)
	case errors.Is(err, ErrFingerprintRequired):
		RespondError(c, http.StatusBadRequest, MsgFingerprintRequired)
	case errors.Is(err, ErrFingerprintTooLong):
		RespondError(c, http.StatusBadRequest, MsgFingerprintTooLong)
	case errors.Is(err, ErrInvalidRole):
		RespondError(c, http.StatusBadRequest, "Invalid user role")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrValidation):
		var fe *FieldError
		if errors.As(err, &fe) {
			RespondError(c, http.StatusBadRequest, fe.Message)
			return
		}
		RespondError(c, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, ErrDuplicateSubmission):
		RespondError(c, http.StatusForbidden, MsgDuplicateSubmission)
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrAlreadyExists):
		RespondError(c, http.StatusConflict, "Already exists")
	case errors.Is(err, ErrDatabaseError):
		slog.Error("database error", "error", err, "trace_id", traceID(c))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		slog.Error("unhandled service error", "error", err, "trace_id", traceID(c))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
