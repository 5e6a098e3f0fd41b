package category

import (
	"errors"
	"fmt"

	"github.com/geocoder89/categoryhub/internal/store"
)

// Row is one persisted category. A nil ParentID marks a root.
type Row struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	ParentID    *int64 `json:"parent_id"`
}

// Node is the response shape of a category; ids are not exposed.
type Node struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Children    []Node `json:"children"`
}

// a nil parent_id (or a missing one) creates a root category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=200"`
	ParentID    *int64 `json:"parent_id" binding:"omitnil,min=1"`
}

var ErrParentNotFound = fmt.Errorf("%w: parent category does not exist", store.ErrPersistence)

var ErrTreeTooDeep = errors.New("category tree exceeds the maximum depth")

func NewFromCreateRequest(req CreateCategoryRequest) Row {
	return Row{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		ParentID:    req.ParentID,
	}
}
