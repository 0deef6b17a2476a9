package sweep

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// BB is an axis-aligned bounding box. (left, bottom, right, top)
type BB struct {
	L, B, R, T float64
}

// NewBB is convenience constructor for BB structs.
func NewBB(l, b, r, t float64) BB {
	return BB{L: l, B: b, R: r, T: t}
}

func (bb BB) String() string {
	return fmt.Sprintf("%v %v %v %v", bb.L, bb.B, bb.R, bb.T)
}

// NewBBForExtents constructs a BB centered on a point with the given extents (half sizes).
func NewBBForExtents(c vec.Vec2, hw, hh float64) BB {
	return BB{
		L: c.X - hw,
		B: c.Y - hh,
		R: c.X + hw,
		T: c.Y + hh,
	}
}

// NewBBForCircle constructs a BB for a circle with the given position and radius.
func NewBBForCircle(p vec.Vec2, r float64) BB {
	return NewBBForExtents(p, r, r)
}

// NewBBForSegment constructs the BB holding both end points.
func NewBBForSegment(a, b vec.Vec2) BB {
	return BB{
		L: math.Min(a.X, b.X),
		B: math.Min(a.Y, b.Y),
		R: math.Max(a.X, b.X),
		T: math.Max(a.Y, b.Y),
	}
}

// Intersects returns true if a and b intersect.
func (bb BB) Intersects(b BB) bool {
	return bb.L <= b.R && b.L <= bb.R && bb.B <= b.T && b.B <= bb.T
}

// Contains returns true if other lies completely within bb.
func (bb BB) Contains(other BB) bool {
	return bb.L <= other.L && bb.R >= other.R && bb.B <= other.B && bb.T >= other.T
}

// Merge returns a bounding box that holds both bounding boxes.
func (bb BB) Merge(b BB) BB {
	return BB{
		math.Min(bb.L, b.L),
		math.Min(bb.B, b.B),
		math.Max(bb.R, b.R),
		math.Max(bb.T, b.T),
	}
}

// Grow returns bb with every side pushed out by pad.
func (bb BB) Grow(pad float64) BB {
	return BB{bb.L - pad, bb.B - pad, bb.R + pad, bb.T + pad}
}

// Sweep returns bb grown by |velocity*lookahead| on every side, holding the box
// wherever the motion takes it within the lookahead, forwards or backwards.
func (bb BB) Sweep(velocity vec.Vec2, lookahead float64) BB {
	if lookahead == 0 {
		return bb
	}
	dx := math.Abs(velocity.X * lookahead)
	dy := math.Abs(velocity.Y * lookahead)
	return BB{bb.L - dx, bb.B - dy, bb.R + dx, bb.T + dy}
}

// MergedArea returns the area of the box holding both bb and b.
func (bb BB) MergedArea(b BB) float64 {
	return (math.Max(bb.R, b.R) - math.Min(bb.L, b.L)) * (math.Max(bb.T, b.T) - math.Min(bb.B, b.B))
}

// Proximity returns a cheap distance between the centers of bb and b.
func (bb BB) Proximity(b BB) float64 {
	return math.Abs(bb.L+bb.R-b.L-b.R) + math.Abs(bb.B+bb.T-b.B-b.T)
}

// Center returns the center of a bounding box.
func (bb BB) Center() vec.Vec2 {
	return vec.Vec2{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
}

// Area returns the area of the bounding box.
func (bb BB) Area() float64 {
	return (bb.R - bb.L) * (bb.T - bb.B)
}

