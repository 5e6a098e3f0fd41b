package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/categoryhub/internal/domain/user"
	"github.com/geocoder89/categoryhub/internal/security"
)

type UsersRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[int64]user.User),
	}
}

func (r *UsersRepo) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	u := user.NewFromCreateRequest(req)

	hash, err := security.HashToken(u.AccessToken)

	if err != nil {
		return user.User{}, err
	}

	u.AccessToken = hash

	r.mu.Lock()
	r.nextID++
	u.ID = r.nextID
	r.items[u.ID] = u
	r.mu.Unlock()

	return u, nil
}
