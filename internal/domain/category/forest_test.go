package category_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/geocoder89/categoryhub/internal/domain/category"
)

func TestBuildForest_MatchesBuildTree(t *testing.T) {
	rowSets := map[string][]category.Row{
		"empty": {},
		"cars":  carsRows(),
		"chain": chainRows(20),
		"mixed": {
			{ID: 1, Name: "a", DisplayName: "A"},
			{ID: 2, Name: "a1", DisplayName: "A1", ParentID: ptr(1)},
			{ID: 3, Name: "b", DisplayName: "B"},
			{ID: 4, Name: "a2", DisplayName: "A2", ParentID: ptr(1)},
			{ID: 5, Name: "a1x", DisplayName: "A1X", ParentID: ptr(2)},
			{ID: 6, Name: "b1", DisplayName: "B1", ParentID: ptr(3)},
		},
	}

	for name, rows := range rowSets {
		t.Run(name, func(t *testing.T) {
			want, err := category.BuildTree(context.Background(), &fakeLister{rows: rows}, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := category.BuildForest(rows, nil)

			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %#v, want %#v", got, want)
			}
		})
	}
}

func TestBuildForest_Subtree(t *testing.T) {
	got := category.BuildForest(carsRows(), ptr(1))

	want := []category.Node{
		{Name: "sedan", DisplayName: "Sedan", Children: []category.Node{}},
		{Name: "suv", DisplayName: "SUV", Children: []category.Node{}},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}

	if got := category.BuildForest(carsRows(), ptr(99)); len(got) != 0 {
		t.Fatalf("unknown parent should give an empty forest, got %#v", got)
	}
}

func TestBuildForest_CycleTerminates(t *testing.T) {
	rows := []category.Row{
		{ID: 1, Name: "x", DisplayName: "X", ParentID: ptr(2)},
		{ID: 2, Name: "y", DisplayName: "Y", ParentID: ptr(1)},
	}

	got := category.BuildForest(rows, ptr(1))

	// 1 -> 2 -> (1 already visited)
	if len(got) != 1 || got[0].Name != "y" || len(got[0].Children) != 0 {
		t.Fatalf("unexpected forest for cyclic rows: %#v", got)
	}
}

func TestBuilder_FoldMaxDepth(t *testing.T) {
	rows := chainRows(3)

	for _, maxDepth := range []int{0, 3, 4} {
		got, err := (category.Builder{MaxDepth: maxDepth}).Fold(rows, nil)
		if err != nil {
			t.Fatalf("max depth %d: unexpected error: %v", maxDepth, err)
		}
		if category.Count(got) != 3 {
			t.Fatalf("max depth %d: got %d nodes, want 3", maxDepth, category.Count(got))
		}
	}

	got, err := (category.Builder{MaxDepth: 2}).Fold(rows, nil)
	if !errors.Is(err, category.ErrTreeTooDeep) {
		t.Fatalf("got %v, want ErrTreeTooDeep", err)
	}
	if got != nil {
		t.Fatalf("no partial tree expected, got %#v", got)
	}

	// both strategies agree on where the limit trips
	_, treeErr := (category.Builder{MaxDepth: 2}).Build(context.Background(), &fakeLister{rows: rows}, nil)
	if !errors.Is(treeErr, category.ErrTreeTooDeep) {
		t.Fatalf("per node build: got %v, want ErrTreeTooDeep", treeErr)
	}
}
