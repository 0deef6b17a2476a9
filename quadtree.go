package sweep

type quadNode struct {
	bounds   BB
	depth    int
	items    []indexItem
	children *[4]*quadNode
}

// Quadtree is a SpatialIndexer splitting its region into quadrants once a node
// holds more than MaxItems boxes, down to MaxDepth levels. A box that does not fit
// entirely inside one quadrant stays in the node that straddles it.
type Quadtree struct {
	MaxItems int
	MaxDepth int

	root   *quadNode
	count  int
	pooled []*quadNode
}

// NewQuadtree returns an empty quadtree.
func NewQuadtree(maxItems, maxDepth int) *Quadtree {
	if maxItems < 1 {
		maxItems = DefaultQuadtreeMaxItems
	}
	if maxDepth < 0 {
		maxDepth = DefaultQuadtreeMaxDepth
	}
	return &Quadtree{MaxItems: maxItems, MaxDepth: maxDepth}
}

func (tree *Quadtree) Reset(bounds BB) {
	if tree.root != nil {
		tree.recycle(tree.root)
	}
	tree.root = tree.nodeFromPool(bounds, 0)
	tree.count = 0
}

func (tree *Quadtree) Insert(slot int, bb BB) {
	if tree.root == nil {
		tree.Reset(bb)
	}
	tree.insert(tree.root, indexItem{slot, bb})
	tree.count++
}

// Query scans the root items unconditionally, so boxes inserted outside the
// root region are still found.
func (tree *Quadtree) Query(bb BB, f func(slot int)) {
	if tree.root == nil {
		return
	}
	for _, it := range tree.root.items {
		if bb.Intersects(it.bb) {
			f(it.slot)
		}
	}
	if tree.root.children != nil {
		for _, child := range tree.root.children {
			tree.query(child, bb, f)
		}
	}
}

func (tree *Quadtree) Count() int {
	return tree.count
}

// Depth returns the depth of the deepest node.
func (tree *Quadtree) Depth() int {
	if tree.root == nil {
		return 0
	}
	return depthOf(tree.root)
}

func depthOf(node *quadNode) int {
	d := node.depth
	if node.children != nil {
		for _, child := range node.children {
			d = max(d, depthOf(child))
		}
	}
	return d
}

func (tree *Quadtree) insert(node *quadNode, it indexItem) {
	for node.children != nil {
		idx := childIndex(node, it.bb)
		if idx < 0 {
			break
		}
		node = node.children[idx]
	}
	node.items = append(node.items, it)
	if node.children == nil && len(node.items) > tree.MaxItems && node.depth < tree.MaxDepth {
		tree.subdivide(node)
	}
}

func (tree *Quadtree) subdivide(node *quadNode) {
	b := node.bounds
	midX := (b.L + b.R) / 2
	midY := (b.B + b.T) / 2
	d := node.depth + 1
	node.children = &[4]*quadNode{
		tree.nodeFromPool(BB{b.L, b.B, midX, midY}, d),
		tree.nodeFromPool(BB{midX, b.B, b.R, midY}, d),
		tree.nodeFromPool(BB{b.L, midY, midX, b.T}, d),
		tree.nodeFromPool(BB{midX, midY, b.R, b.T}, d),
	}

	items := node.items
	node.items = node.items[:0:0]
	for _, it := range items {
		if idx := childIndex(node, it.bb); idx >= 0 {
			tree.insert(node.children[idx], it)
		} else {
			node.items = append(node.items, it)
		}
	}
}

func childIndex(node *quadNode, bb BB) int {
	for i, child := range node.children {
		if child.bounds.Contains(bb) {
			return i
		}
	}
	return -1
}

func (tree *Quadtree) query(node *quadNode, bb BB, f func(slot int)) {
	if !bb.Intersects(node.bounds) {
		return
	}
	for _, it := range node.items {
		if bb.Intersects(it.bb) {
			f(it.slot)
		}
	}
	if node.children != nil {
		for _, child := range node.children {
			tree.query(child, bb, f)
		}
	}
}

func (tree *Quadtree) nodeFromPool(bounds BB, depth int) *quadNode {
	if n := len(tree.pooled); n > 0 {
		node := tree.pooled[n-1]
		tree.pooled = tree.pooled[:n-1]
		node.bounds = bounds
		node.depth = depth
		return node
	}
	return &quadNode{bounds: bounds, depth: depth}
}

func (tree *Quadtree) recycle(node *quadNode) {
	if node.children != nil {
		for _, child := range node.children {
			tree.recycle(child)
		}
		node.children = nil
	}
	node.items = node.items[:0]
	tree.pooled = append(tree.pooled, node)
}
