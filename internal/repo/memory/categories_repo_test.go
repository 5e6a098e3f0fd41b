package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/geocoder89/categoryhub/internal/domain/category"
	"github.com/geocoder89/categoryhub/internal/store"
)

func ptr(v int64) *int64 {
	return &v
}

func TestCategoriesRepo_CreateAndList(t *testing.T) {
	ctx := context.Background()
	r := NewCategoriesRepo()

	cars, err := r.Create(ctx, category.CreateCategoryRequest{Name: "cars", DisplayName: "Cars"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if cars.ID != 1 {
		t.Fatalf("got id %d, want 1", cars.ID)
	}

	for _, name := range []string{"sedan", "suv"} {
		if _, err := r.Create(ctx, category.CreateCategoryRequest{Name: name, DisplayName: name, ParentID: ptr(cars.ID)}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	roots, err := r.ListByParent(ctx, nil)
	if err != nil || len(roots) != 1 || roots[0].Name != "cars" {
		t.Fatalf("unexpected roots: %v %v", roots, err)
	}

	kids, err := r.ListByParent(ctx, ptr(cars.ID))
	if err != nil || len(kids) != 2 || kids[0].Name != "sedan" || kids[1].Name != "suv" {
		t.Fatalf("unexpected children: %v %v", kids, err)
	}

	none, err := r.ListByParent(ctx, ptr(42))
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v %v", none, err)
	}

	all, _ := r.ListAll(ctx)
	if len(all) != 3 {
		t.Fatalf("got %d rows, want 3", len(all))
	}
}

func TestCategoriesRepo_UnknownParent(t *testing.T) {
	_, err := NewCategoriesRepo().Create(context.Background(), category.CreateCategoryRequest{Name: "x", DisplayName: "X", ParentID: ptr(7)})

	if !errors.Is(err, category.ErrParentNotFound) || !errors.Is(err, store.ErrPersistence) {
		t.Fatalf("got %v, want ErrParentNotFound", err)
	}
}

func TestCategoriesRepo_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	r := NewCategoriesRepo()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Create(ctx, category.CreateCategoryRequest{Name: "n", DisplayName: "N"})
		}()
	}
	wg.Wait()

	nodes, err := category.BuildTree(ctx, r, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(nodes) != 20 {
		t.Fatalf("got %d roots, want 20", len(nodes))
	}
}
