package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

var clientSentinels = []error{
	apperrors.ErrValidation,
	apperrors.ErrUnauthorized,
	apperrors.ErrNotFound,
	apperrors.ErrDuplicate,
}

// clientMessage drops the sentinel prefix added by fmt.Errorf("%w: ...").
func clientMessage(err error) string {
	if errors.Is(err, apperrors.ErrInsufficientFunds) {
		return "Insufficient balance"
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	msg := err.Error()
	for _, sentinel := range clientSentinels {
		if errors.Is(err, sentinel) {
			return strings.TrimPrefix(msg, sentinel.Error()+": ")
		}
	}
	return msg
}

// respondError maps err onto its status code. Server errors hide the cause
// unless showDetails is set.
func respondError(c *gin.Context, err error, showDetails bool) {
	logger := middleware.GetLoggerFromContext(c)
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
		resp := ErrorResponse{Error: "Internal server error"}
		if showDetails {
			resp.Details = err.Error()
		}
		c.JSON(status, resp)
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: clientMessage(err)})
}

func bindFailed(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromContext(c).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error()})
}

func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromContext(c).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}
