package handlers

import (
	"errors"
	"net/http"

	"github.com/geocoder89/categoryhub/internal/domain/category"
	"github.com/geocoder89/categoryhub/internal/http/middlewares"
	"github.com/geocoder89/categoryhub/internal/store"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if id := ctx.GetString(middlewares.CtxRequestID); id != "" {
		return id
	}

	// fallback header
	return ctx.GetHeader(middlewares.RequestIDHeader)
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}

// RespondStoreError turns a store error into the matching failure response and
// records it on the gin context so the request logger picks it up.
func RespondStoreError(ctx *gin.Context, action string, err error) {
	_ = ctx.Error(err)

	switch {
	case errors.Is(err, category.ErrParentNotFound):
		RespondError(ctx, http.StatusUnprocessableEntity, "parent_not_found", "Parent category does not exist", nil)
	case errors.Is(err, category.ErrTreeTooDeep):
		RespondError(ctx, http.StatusInternalServerError, "tree_too_deep", "Category tree is too deep to list", nil)
	case errors.Is(err, store.ErrPersistence):
		RespondError(ctx, http.StatusInternalServerError, "persistence_error", "Could not "+action, nil)
	case errors.Is(err, store.ErrStoreUnavailable):
		RespondError(ctx, http.StatusServiceUnavailable, "store_unavailable", "Could not "+action+", store unavailable", nil)
	default:
		RespondInternal(ctx, "Could not "+action)
	}
}
