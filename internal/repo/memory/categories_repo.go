package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/categoryhub/internal/domain/category"
)

type CategoriesRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   []category.Row // insertion order == id order
	byID   map[int64]struct{}
}

func NewCategoriesRepo() *CategoriesRepo {
	return &CategoriesRepo{
		byID: make(map[int64]struct{}),
	}
}

func (r *CategoriesRepo) Create(ctx context.Context, req category.CreateCategoryRequest) (category.Row, error) {
	c := category.NewFromCreateRequest(req)

	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ParentID != nil {
		if _, ok := r.byID[*c.ParentID]; !ok {
			return category.Row{}, category.ErrParentNotFound
		}
	}

	r.nextID++
	c.ID = r.nextID

	r.rows = append(r.rows, c)
	r.byID[c.ID] = struct{}{}

	return c, nil
}

func (r *CategoriesRepo) ListByParent(ctx context.Context, parentID *int64) ([]category.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]category.Row, 0)

	for _, c := range r.rows {
		switch {
		case parentID == nil && c.ParentID == nil:
			out = append(out, c)
		case parentID != nil && c.ParentID != nil && *c.ParentID == *parentID:
			out = append(out, c)
		}
	}

	return out, nil
}

func (r *CategoriesRepo) ListAll(ctx context.Context) ([]category.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]category.Row, len(r.rows))
	copy(out, r.rows)

	return out, nil
}

func (r *CategoriesRepo) Ping(ctx context.Context) error {
	return nil
}
