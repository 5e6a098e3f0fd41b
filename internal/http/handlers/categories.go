package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/geocoder89/categoryhub/internal/config"
	"github.com/geocoder89/categoryhub/internal/domain/category"
	"github.com/geocoder89/categoryhub/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type CategoryStore interface {
	Create(ctx context.Context, req category.CreateCategoryRequest) (category.Row, error)
	ListByParent(ctx context.Context, parentID *int64) ([]category.Row, error)
	ListAll(ctx context.Context) ([]category.Row, error)
}

type CategoriesOptions struct {
	// config.TreeStrategyPerNode or config.TreeStrategySnapshot
	Strategy string
	MaxDepth int
	Timeout  time.Duration
	Prom     *observability.Prom
}

type CategoriesHandler struct {
	repo CategoryStore
	opts CategoriesOptions
}

func NewCategoriesHandler(repo CategoryStore, opts CategoriesOptions) *CategoriesHandler {
	if opts.Strategy == "" {
		opts.Strategy = config.TreeStrategyPerNode
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	return &CategoriesHandler{repo: repo, opts: opts}
}

func (h *CategoriesHandler) CreateCategory(ctx *gin.Context) {
	var req category.CreateCategoryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), h.opts.Timeout)
	defer cancel()

	c, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondStoreError(ctx, "create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status": "ok",
		"id":     c.ID,
	})
}

// ListCategories renders the whole category forest, or the subtree under
// ?parent_id= when given.
func (h *CategoriesHandler) ListCategories(ctx *gin.Context) {
	var parentID *int64

	if raw := ctx.Query("parent_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)

		if err != nil || id < 1 {
			RespondBadRequest(ctx, "parent_id must be a positive integer", gin.H{"field": "parent_id"})
			return
		}

		parentID = &id
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), h.opts.Timeout)
	defer cancel()

	nodes, err := h.buildTree(cctx, parentID)

	if err != nil {
		RespondStoreError(ctx, "list categories", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"status":     "ok",
		"categories": nodes,
	})
}

func (h *CategoriesHandler) buildTree(ctx context.Context, parentID *int64) ([]category.Node, error) {
	ctx, span := otel.Tracer("categoryhub/categories").Start(ctx, "category.build_tree")
	defer span.End()

	span.SetAttributes(attribute.String("category.tree.strategy", h.opts.Strategy))
	if parentID != nil {
		span.SetAttributes(attribute.Int64("category.parent_id", *parentID))
	}

	start := time.Now()

	var (
		nodes []category.Node
		err   error
	)

	switch h.opts.Strategy {
	case config.TreeStrategySnapshot:
		var rows []category.Row

		rows, err = h.repo.ListAll(ctx)
		if err == nil {
			nodes, err = category.Builder{MaxDepth: h.opts.MaxDepth}.Fold(rows, parentID)
		}
	default:
		nodes, err = category.Builder{MaxDepth: h.opts.MaxDepth}.Build(ctx, h.repo, parentID)
	}

	count := category.Count(nodes)
	h.opts.Prom.ObserveTree(h.opts.Strategy, start, count, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build tree failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("category.tree.nodes", count))

	return nodes, nil
}
