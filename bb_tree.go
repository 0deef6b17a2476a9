package sweep

// bbNode is a node of a BBTree. Leaves have slot >= 0 and no children.
type bbNode struct {
	bb     BB
	parent *bbNode
	a, b   *bbNode
	slot   int
}

func (node *bbNode) isLeaf() bool {
	return node.slot >= 0
}

func (node *bbNode) setA(value *bbNode) {
	node.a = value
	value.parent = node
}

func (node *bbNode) setB(value *bbNode) {
	node.b = value
	value.parent = node
}

// BBTree is a SpatialIndexer keeping the boxes in a binary bounding volume
// hierarchy. Each insert descends towards the child whose box grows the least.
// Unlike the Quadtree it ignores the region given to Reset.
type BBTree struct {
	root  *bbNode
	count int
	// recycled nodes, linked through parent
	pooledNodes *bbNode
}

// NewBBTree returns an empty tree.
func NewBBTree() *BBTree {
	return &BBTree{}
}

func (tree *BBTree) Reset(BB) {
	if tree.root != nil {
		tree.recycleSubtree(tree.root)
	}
	tree.root = nil
	tree.count = 0
}

func (tree *BBTree) Insert(slot int, bb BB) {
	leaf := tree.nodeFromPool()
	leaf.bb = bb
	leaf.slot = slot
	tree.root = tree.subtreeInsert(tree.root, leaf)
	tree.count++
}

func (tree *BBTree) Query(bb BB, f func(slot int)) {
	if tree.root != nil {
		tree.root.subtreeQuery(bb, f)
	}
}

func (tree *BBTree) Count() int {
	return tree.count
}

func (tree *BBTree) subtreeInsert(subtree, leaf *bbNode) *bbNode {
	if subtree == nil {
		return leaf
	}
	if subtree.isLeaf() {
		return tree.newNode(leaf, subtree)
	}

	costA := subtree.b.bb.Area() + subtree.a.bb.MergedArea(leaf.bb)
	costB := subtree.a.bb.Area() + subtree.b.bb.MergedArea(leaf.bb)

	if costA == costB {
		costA = subtree.a.bb.Proximity(leaf.bb)
		costB = subtree.b.bb.Proximity(leaf.bb)
	}

	if costB < costA {
		subtree.setB(tree.subtreeInsert(subtree.b, leaf))
	} else {
		subtree.setA(tree.subtreeInsert(subtree.a, leaf))
	}

	subtree.bb = subtree.bb.Merge(leaf.bb)
	return subtree
}

func (node *bbNode) subtreeQuery(bb BB, f func(slot int)) {
	if !node.bb.Intersects(bb) {
		return
	}
	if node.isLeaf() {
		f(node.slot)
		return
	}
	node.a.subtreeQuery(bb, f)
	node.b.subtreeQuery(bb, f)
}

func (tree *BBTree) newNode(a, b *bbNode) *bbNode {
	node := tree.nodeFromPool()
	node.bb = a.bb.Merge(b.bb)
	node.setA(a)
	node.setB(b)
	return node
}

func (tree *BBTree) nodeFromPool() *bbNode {
	node := tree.pooledNodes
	if node == nil {
		return &bbNode{slot: -1}
	}
	tree.pooledNodes = node.parent
	node.parent = nil
	node.a, node.b = nil, nil
	node.slot = -1
	return node
}

func (tree *BBTree) recycleSubtree(node *bbNode) {
	if !node.isLeaf() {
		tree.recycleSubtree(node.a)
		tree.recycleSubtree(node.b)
	}
	node.a, node.b = nil, nil
	node.parent = tree.pooledNodes
	tree.pooledNodes = node
}
