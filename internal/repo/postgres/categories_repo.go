package postgres

import (
	"context"
	"fmt"

	"github.com/geocoder89/categoryhub/internal/domain/category"
	"github.com/geocoder89/categoryhub/internal/observability"
	"github.com/geocoder89/categoryhub/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoriesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

// prom may be nil
func NewCategoriesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CategoriesRepo {
	return &CategoriesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *CategoriesRepo) Create(ctx context.Context, req category.CreateCategoryRequest) (category.Row, error) {
	c := category.NewFromCreateRequest(req)

	err := r.prom.ObserveDB("categories.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO categories(name, display_name, parent_id) VALUES($1,$2,$3) RETURNING id`,
			c.Name, c.DisplayName, c.ParentID,
		).Scan(&c.ID)
	})

	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return category.Row{}, fmt.Errorf("%w: %w", category.ErrParentNotFound, err)
		}
		return category.Row{}, store.Classify(err)
	}

	return c, nil
}

// ListByParent returns the direct children of parentID, or the roots when
// parentID is nil, ordered by id.
func (r *CategoriesRepo) ListByParent(ctx context.Context, parentID *int64) ([]category.Row, error) {
	var out []category.Row

	err := r.prom.ObserveDB("categories.list_by_parent", func() error {
		var (
			rows pgx.Rows
			err  error
		)

		if parentID == nil {
			rows, err = r.pool.Query(ctx,
				`SELECT id, name, display_name, parent_id FROM categories WHERE parent_id IS NULL ORDER BY id ASC`)
		} else {
			rows, err = r.pool.Query(ctx,
				`SELECT id, name, display_name, parent_id FROM categories WHERE parent_id = $1 ORDER BY id ASC`, *parentID)
		}

		if err != nil {
			return err
		}

		out, err = scanRows(rows)
		return err
	})

	if err != nil {
		return nil, store.Classify(err)
	}

	return out, nil
}

// ListAll reads every category in one statement, a consistent snapshot of the table.
func (r *CategoriesRepo) ListAll(ctx context.Context) ([]category.Row, error) {
	var out []category.Row

	err := r.prom.ObserveDB("categories.list_all", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, display_name, parent_id FROM categories ORDER BY id ASC`)

		if err != nil {
			return err
		}

		out, err = scanRows(rows)
		return err
	})

	if err != nil {
		return nil, store.Classify(err)
	}

	return out, nil
}

func (r *CategoriesRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanRows(rows pgx.Rows) ([]category.Row, error) {
	defer rows.Close()

	output := make([]category.Row, 0)

	for rows.Next() {
		var c category.Row

		err := rows.Scan(&c.ID, &c.Name, &c.DisplayName, &c.ParentID)

		if err != nil {
			return nil, err
		}

		output = append(output, c)
	}

	err := rows.Err()

	if err != nil {
		return nil, err
	}

	return output, nil
}
