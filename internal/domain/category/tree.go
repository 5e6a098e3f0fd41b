package category

import "context"

// Lister is the read side of the category store.
type Lister interface {
	ListByParent(ctx context.Context, parentID *int64) ([]Row, error)
}

// Builder materializes the category hierarchy by asking the store for the
// children of every node it visits, one call per node, depth first.
//
// No transaction spans the traversal: a category created under an already
// visited node while the build runs is not part of the result.
type Builder struct {
	// 0 means unlimited
	MaxDepth int
}

// BuildTree returns the nodes under parentID (roots when nil) with their
// children filled in, in store order. Store errors are returned unchanged and
// no partial tree is produced.
func BuildTree(ctx context.Context, store Lister, parentID *int64) ([]Node, error) {
	return Builder{}.Build(ctx, store, parentID)
}

func (b Builder) Build(ctx context.Context, store Lister, parentID *int64) ([]Node, error) {
	return b.build(ctx, store, parentID, 1)
}

func (b Builder) build(ctx context.Context, store Lister, parentID *int64, depth int) ([]Node, error) {
	rows, err := store.ListByParent(ctx, parentID)

	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(rows))

	if len(rows) == 0 {
		return nodes, nil
	}

	if b.MaxDepth > 0 && depth > b.MaxDepth {
		return nil, ErrTreeTooDeep
	}

	for _, row := range rows {
		id := row.ID

		children, err := b.build(ctx, store, &id, depth+1)

		if err != nil {
			return nil, err
		}

		nodes = append(nodes, Node{
			Name:        row.Name,
			DisplayName: row.DisplayName,
			Children:    children,
		})
	}

	return nodes, nil
}

// Count returns the number of nodes in a forest.
func Count(nodes []Node) int {
	n := len(nodes)

	for _, node := range nodes {
		n += Count(node.Children)
	}

	return n
}
