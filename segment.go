package sweep

import (
	"github.com/setanarut/vec"
)

// Segment is a line segment primitive between A and B in world coordinates.
type Segment struct {
	*Shape
	A, B vec.Vec2
}

// NewSegmentShape returns a segment from a to b attached to body.
func NewSegmentShape(body *Body, a, b vec.Vec2) *Segment {
	seg := newSegment(a, b)
	body.AttachShape(seg.Shape)
	return seg
}

func newSegment(a, b vec.Vec2) *Segment {
	seg := &Segment{A: a, B: b}
	seg.Shape = newShape(seg)
	return seg
}

func (seg *Segment) cacheData() BB {
	return NewBBForSegment(seg.A, seg.B)
}

func (seg *Segment) translate(dx, dy float64) {
	seg.A.X += dx
	seg.A.Y += dy
	seg.B.X += dx
	seg.B.Y += dy
}

func (seg *Segment) clone() *Shape {
	return newSegment(seg.A, seg.B).Shape
}

// Vector returns B - A.
func (seg *Segment) Vector() vec.Vec2 {
	return seg.B.Sub(seg.A)
}

// Length returns the length of the segment.
func (seg *Segment) Length() float64 {
	return seg.Vector().Mag()
}

// Midpoint returns the point halfway between A and B.
func (seg *Segment) Midpoint() vec.Vec2 {
	return vec.Vec2{X: (seg.A.X + seg.B.X) / 2, Y: (seg.A.Y + seg.B.Y) / 2}
}
