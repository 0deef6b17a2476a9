package sweep

// SpatialIndexer is the broadphase used by the Scene. It is rebuilt for every
// sub-step: Reset, then Insert every leaf with its swept box, then Query.
//
// An index only reports candidates. It may report slots whose boxes do not touch
// the query box, but it must never miss one that does.
type SpatialIndexer interface {
	// Reset empties the index and sets the region the next inserts fall into.
	Reset(bounds BB)

	// Insert adds the leaf with the given slot and bounding box.
	Insert(slot int, bb BB)

	// Query calls f for every inserted slot whose box intersects bb.
	Query(bb BB, f func(slot int))

	// Count returns the number of inserted slots.
	Count() int
}

var (
	_ SpatialIndexer = (*BruteForce)(nil)
	_ SpatialIndexer = (*Quadtree)(nil)
	_ SpatialIndexer = (*BBTree)(nil)
)

type indexItem struct {
	slot int
	bb   BB
}

// BruteForce is a SpatialIndexer testing every inserted box.
type BruteForce struct {
	items []indexItem
}

// NewBruteForce returns an empty brute-force index.
func NewBruteForce() *BruteForce {
	return &BruteForce{}
}

func (bf *BruteForce) Reset(BB) {
	bf.items = bf.items[:0]
}

func (bf *BruteForce) Insert(slot int, bb BB) {
	bf.items = append(bf.items, indexItem{slot, bb})
}

func (bf *BruteForce) Query(bb BB, f func(slot int)) {
	for _, it := range bf.items {
		if bb.Intersects(it.bb) {
			f(it.slot)
		}
	}
}

func (bf *BruteForce) Count() int {
	return len(bf.items)
}
