package postgres

import (
	"context"

	"github.com/geocoder89/categoryhub/internal/domain/user"
	"github.com/geocoder89/categoryhub/internal/observability"
	"github.com/geocoder89/categoryhub/internal/security"
	"github.com/geocoder89/categoryhub/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

// Create inserts the user with its access token hashed and returns it with
// the store assigned id.
func (r *UsersRepo) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	u := user.NewFromCreateRequest(req)

	hash, err := security.HashToken(u.AccessToken)

	if err != nil {
		return user.User{}, err
	}

	u.AccessToken = hash

	err = r.prom.ObserveDB("users.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO users (email, first_name, last_name, access_token, user_id)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id`,
			u.Email, u.FirstName, u.LastName, u.AccessToken, u.UserID,
		).Scan(&u.ID)
	})

	if err != nil {
		return user.User{}, store.Classify(err)
	}

	return u, nil
}
