package sweep

import (
	"github.com/setanarut/vec"
)

// Circle is a circle primitive in world coordinates. A zero radius makes it a point.
type Circle struct {
	*Shape
	Center vec.Vec2
	Radius float64
}

// NewCircleShape returns a circle attached to body.
func NewCircleShape(body *Body, center vec.Vec2, radius float64) *Circle {
	circle := newCircle(center, radius)
	body.AttachShape(circle.Shape)
	return circle
}

func newCircle(center vec.Vec2, radius float64) *Circle {
	circle := &Circle{Center: center, Radius: radius}
	circle.Shape = newShape(circle)
	return circle
}

func (circle *Circle) cacheData() BB {
	return NewBBForCircle(circle.Center, circle.Radius)
}

func (circle *Circle) translate(dx, dy float64) {
	circle.Center.X += dx
	circle.Center.Y += dy
}

func (circle *Circle) clone() *Shape {
	return newCircle(circle.Center, circle.Radius).Shape
}

// PositionAt returns the center after moving with the owning body for t.
func (circle *Circle) PositionAt(t float64) vec.Vec2 {
	v := circle.Velocity()
	return vec.Vec2{X: circle.Center.X + v.X*t, Y: circle.Center.Y + v.Y*t}
}
