package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// parent_id references categories(id): inserting under a missing parent is a
// foreign key violation. No ON DELETE rule, categories are never deleted here.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id           BIGSERIAL PRIMARY KEY,
	email        TEXT   NOT NULL,
	first_name   TEXT   NOT NULL,
	last_name    TEXT   NOT NULL,
	access_token TEXT   NOT NULL,
	user_id      BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id           BIGSERIAL PRIMARY KEY,
	name         TEXT   NOT NULL,
	display_name TEXT   NOT NULL,
	parent_id    BIGINT REFERENCES categories(id)
);

CREATE INDEX IF NOT EXISTS categories_parent_id_idx ON categories (parent_id, id);
`

// EnsureSchema creates the tables on startup when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)

	return err
}
