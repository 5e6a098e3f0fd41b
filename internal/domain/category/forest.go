package category

// BuildForest folds a snapshot of every category row into the tree under
// parentID (roots when nil). Sibling order follows the order of rows.
//
// The walk uses an explicit stack, and a row reached twice is skipped, so
// cyclic data yields a truncated tree instead of looping.
func BuildForest(rows []Row, parentID *int64) []Node {
	nodes, _ := Builder{}.Fold(rows, parentID)
	return nodes
}

// Fold is BuildForest bounded by MaxDepth, with the same depth semantics as
// Build: top level nodes are at depth 1.
func (b Builder) Fold(rows []Row, parentID *int64) ([]Node, error) {
	children := make(map[int64][]Row)
	var roots []Row

	for _, row := range rows {
		if row.ParentID == nil {
			roots = append(roots, row)
			continue
		}
		children[*row.ParentID] = append(children[*row.ParentID], row)
	}

	top := roots
	if parentID != nil {
		top = children[*parentID]
	}

	type frame struct {
		rows  []Row
		out   *[]Node
		depth int
	}

	result := make([]Node, 0, len(top))
	visited := make(map[int64]bool, len(rows))

	if parentID != nil {
		visited[*parentID] = true
	}

	stack := []frame{{rows: top, out: &result, depth: 1}}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if len(f.rows) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		row := f.rows[0]
		f.rows = f.rows[1:]

		if visited[row.ID] {
			continue
		}
		visited[row.ID] = true

		if b.MaxDepth > 0 && f.depth > b.MaxDepth {
			return nil, ErrTreeTooDeep
		}

		kids := children[row.ID]

		*f.out = append(*f.out, Node{
			Name:        row.Name,
			DisplayName: row.DisplayName,
			Children:    make([]Node, 0, len(kids)),
		})

		// every out slice is allocated with its final capacity, so this
		// pointer stays valid while the children are appended
		parent := &(*f.out)[len(*f.out)-1]

		stack = append(stack, frame{rows: kids, out: &parent.Children, depth: f.depth + 1})
	}

	return result, nil
}
