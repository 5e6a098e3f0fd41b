package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/categoryhub/internal/domain/user"
	"github.com/geocoder89/categoryhub/internal/http/handlers"
	"github.com/geocoder89/categoryhub/internal/store"
)

type fakeUsersRepo struct {
	createFn func(ctx context.Context, req user.CreateUserRequest) (user.User, error)
}

func (f *fakeUsersRepo) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}

	return user.User{}, nil
}

func TestCreateUserHandler(t *testing.T) {
	valid := `{"email":"batman@cave.com","first_name":"Bruce","last_name":"Wayne","access_token":"pass","user_id":77}`

	tests := []struct {
		name           string
		body           string
		createFn       func(ctx context.Context, req user.CreateUserRequest) (user.User, error)
		wantStatusCode int
		wantUserID     int64
	}{
		{
			name: "success_returns_store_id",
			body: valid,
			createFn: func(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
				u := user.NewFromCreateRequest(req)
				u.ID = 5
				return u, nil
			},
			wantStatusCode: http.StatusCreated,
			// the store id, not the 77 from the body
			wantUserID: 5,
		},
		{
			name: "user_id_zero",
			body: `{"email":"batman@cave.com","first_name":"Bruce","last_name":"Wayne","access_token":"pass","user_id":0}`,
			createFn: func(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
				if req.UserID == nil || *req.UserID != 0 {
					return user.User{}, errors.New("user_id not passed through")
				}
				return user.User{ID: 9}, nil
			},
			wantStatusCode: http.StatusCreated,
			wantUserID:     9,
		},
		{
			name:           "user_id_missing",
			body:           `{"email":"batman@cave.com","first_name":"Bruce","last_name":"Wayne","access_token":"pass"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "long_access_token",
			body: `{"email":"batman@cave.com","first_name":"Bruce","last_name":"Wayne","access_token":"` + strings.Repeat("t", 200) + `","user_id":1}`,
			createFn: func(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
				return user.User{ID: 3}, nil
			},
			wantStatusCode: http.StatusCreated,
			wantUserID:     3,
		},
		{
			name:           "invalid_email",
			body:           `{"email":"nope","first_name":"Bruce","last_name":"Wayne","access_token":"pass","user_id":1}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "user_id_as_string",
			body:           `{"email":"batman@cave.com","first_name":"Bruce","last_name":"Wayne","access_token":"pass","user_id":"1"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "malformed_json",
			body:           `{"email":`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "empty_body",
			body:           ``,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_unavailable",
			body: valid,
			createFn: func(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
				return user.User{}, store.ErrStoreUnavailable
			},
			wantStatusCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUsersRepo{createFn: tt.createFn}

			h := handlers.NewUsersHandler(repo, 0)
			r := setupRouter(http.MethodPost, "/api/user", h.CreateUser)

			req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantUserID == 0 {
				return
			}

			var resp struct {
				Status string `json:"status"`
				UserID int64  `json:"user_id"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if resp.Status != "ok" || resp.UserID != tt.wantUserID {
				t.Fatalf("unexpected body: %s", w.Body.String())
			}
		})
	}
}
