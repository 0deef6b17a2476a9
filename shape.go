package sweep

import (
	"fmt"

	"github.com/setanarut/vec"
)

// IShape is implemented by the leaf primitives, *Circle and *Segment.
//
// The methods are unexported: every primitive kind needs collision time and
// resolution code for every other kind, so new kinds live in this package.
type IShape interface {
	cacheData() BB
	translate(dx, dy float64)
	clone() *Shape
}

// Shape is a leaf primitive owned by exactly one Body.
//
// Velocity, mass and restitution are never stored on a shape; they are read from
// and written to the owning body, so all shapes of a composite move as one.
type Shape struct {
	Class IShape
	// BB is the bounding box computed by the last CacheBB call.
	BB   BB
	body *Body
	// leaf index assigned by the scene for the current sub-step
	slot int
}

func newShape(class IShape) *Shape {
	return &Shape{Class: class, slot: -1}
}

func (sh Shape) String() string {
	return fmt.Sprintf("%T", sh.Class)
}

// Body returns the body owning the shape.
func (sh *Shape) Body() *Body {
	return sh.body
}

// Order returns 0 for circles and 1 for segments.
func (sh *Shape) Order() int {
	switch sh.Class.(type) {
	case *Circle:
		return 0
	case *Segment:
		return 1
	default:
		return 2
	}
}

// Circle returns the shape as a circle.
func (sh *Shape) Circle() (*Circle, bool) {
	c, ok := sh.Class.(*Circle)
	return c, ok
}

// Segment returns the shape as a segment.
func (sh *Shape) Segment() (*Segment, bool) {
	s, ok := sh.Class.(*Segment)
	return s, ok
}

// Velocity returns the velocity of the owning body.
func (sh *Shape) Velocity() vec.Vec2 {
	if sh.body == nil {
		return vec.Vec2{}
	}
	return sh.body.velocity
}

// SetVelocity sets the velocity of the owning body.
func (sh *Shape) SetVelocity(v vec.Vec2) {
	if sh.body != nil {
		sh.body.velocity = v
	}
}

// InverseMass returns the inverse mass of the owning body.
func (sh *Shape) InverseMass() float64 {
	if sh.body == nil {
		return 0
	}
	return sh.body.inverseMass
}

// SetInverseMass sets the inverse mass of the owning body.
func (sh *Shape) SetInverseMass(m float64) {
	if sh.body != nil {
		sh.body.inverseMass = m
	}
}

// Restitution returns the restitution of the owning body.
func (sh *Shape) Restitution() float64 {
	if sh.body == nil {
		return 0
	}
	return sh.body.restitution
}

// SetRestitution sets the restitution of the owning body.
func (sh *Shape) SetRestitution(r float64) {
	if sh.body != nil {
		sh.body.restitution = r
	}
}

// MoveByDelta moves only this leaf by the owning body's velocity times dt.
// On a composite body this shifts the leaf away from its siblings; use
// Body.MoveByDelta to move the whole body.
func (sh *Shape) MoveByDelta(dt float64) {
	v := sh.Velocity()
	sh.translate(v.X*dt, v.Y*dt)
}

// CacheBB recomputes and returns the bounding box of the shape.
func (sh *Shape) CacheBB() BB {
	sh.BB = sh.class().cacheData()
	return sh.BB
}

func (sh *Shape) translate(dx, dy float64) {
	sh.class().translate(dx, dy)
}

func (sh *Shape) clone() *Shape {
	return sh.class().clone()
}

func (sh *Shape) class() IShape {
	if sh.Class == nil {
		panic("sweep: shape has no primitive class")
	}
	return sh.Class
}
