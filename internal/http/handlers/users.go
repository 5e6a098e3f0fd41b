package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/categoryhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UserCreator interface {
	Create(ctx context.Context, req user.CreateUserRequest) (user.User, error)
}

type UsersHandler struct {
	repo    UserCreator
	timeout time.Duration
}

func NewUsersHandler(repo UserCreator, timeout time.Duration) *UsersHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &UsersHandler{repo: repo, timeout: timeout}
}

// CreateUser answers with the store assigned id under "user_id", not the
// user_id sent in the body.
func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), h.timeout)
	defer cancel()

	u, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondStoreError(ctx, "create user", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  "ok",
		"user_id": u.ID,
	})
}
