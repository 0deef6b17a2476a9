package sweep

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/setanarut/vec"
)

// Body is a rigid body: the single owner of the velocity, inverse mass and
// restitution shared by all of its shapes.
//
// A body with one shape is a plain circle or segment; a body with many shapes is
// a composite whose shapes keep their relative offsets forever.
type Body struct {
	// UserData is an object that this body is associated with.
	//
	// You can use this get a reference to your game object or controller object.
	UserData any
	ID       uuid.UUID
	// Kind is matched by the rules of the bodies this body touches.
	Kind BodyKind
	// Rule decides the response of this body when it touches another body.
	Rule Rule

	velocity    vec.Vec2
	inverseMass float64
	restitution float64
	shapes      []*Shape
	scene       *Scene
}

// NewBody returns a body without shapes.
func NewBody(velocity vec.Vec2, inverseMass, restitution float64) *Body {
	return &Body{
		ID:          uuid.New(),
		Rule:        BounceRule(),
		velocity:    velocity,
		inverseMass: inverseMass,
		restitution: restitution,
	}
}

// NewCircleBody returns a movable body (inverse mass 1, restitution 1) holding one circle.
func NewCircleBody(center vec.Vec2, radius float64, velocity vec.Vec2) *Body {
	body := NewBody(velocity, 1, 1)
	NewCircleShape(body, center, radius)
	return body
}

// NewSegmentBody returns an immovable body (inverse mass 0, restitution 1) holding one segment.
func NewSegmentBody(a, b vec.Vec2, velocity vec.Vec2) *Body {
	body := NewBody(velocity, 0, 1)
	NewSegmentShape(body, a, b)
	return body
}

// NewCompositeBody returns a body made of the shapes of parts.
func NewCompositeBody(velocity vec.Vec2, inverseMass, restitution float64, parts ...*Body) *Body {
	body := NewBody(velocity, inverseMass, restitution)
	for _, part := range parts {
		body.AddBody(part)
	}
	return body
}

func (b *Body) String() string {
	return fmt.Sprint("Body ", b.ID, ", Shapes ", len(b.shapes))
}

// AttachShape makes b the owner of sh.
func (b *Body) AttachShape(sh *Shape) {
	if sh.body == b {
		return
	}
	if sh.body != nil {
		sh.body.detachShape(sh)
	}
	sh.body = b
	b.shapes = append(b.shapes, sh)
}

func (b *Body) detachShape(sh *Shape) {
	if i := slices.Index(b.shapes, sh); i >= 0 {
		b.shapes = slices.Delete(b.shapes, i, i+1)
	}
}

// AddBody moves every shape of part into b. part is left empty and its own
// velocity, mass and restitution no longer matter. Adding a part that still
// belongs to a scene panics.
func (b *Body) AddBody(part *Body) {
	if part == b {
		return
	}
	if part.scene != nil {
		panic("sweep: composite part still belongs to a scene")
	}
	shapes := part.shapes
	part.shapes = nil
	for _, sh := range shapes {
		sh.body = b
		b.shapes = append(b.shapes, sh)
	}
}

// Shapes returns the flattened leaf primitives of the body. The slice is owned by
// the body and must not be modified.
func (b *Body) Shapes() []*Shape {
	return b.shapes
}

// ShapeAtIndex returns shape at index attached to this body
func (b *Body) ShapeAtIndex(index int) *Shape {
	return b.shapes[index]
}

// IsPartOfObject returns true if sh is one of the body's leaves.
func (b *Body) IsPartOfObject(sh *Shape) bool {
	return slices.Contains(b.shapes, sh)
}

// Scene returns the scene the body belongs to, or nil.
func (b *Body) Scene() *Scene {
	return b.scene
}

// Velocity returns the velocity of the body.
func (b *Body) Velocity() vec.Vec2 {
	return b.velocity
}

// SetVelocity sets the velocity of the body.
func (b *Body) SetVelocity(v vec.Vec2) {
	b.velocity = v
}

// InverseMass returns the inverse mass of the body. Zero means immovable.
func (b *Body) InverseMass() float64 {
	return b.inverseMass
}

// SetInverseMass sets the inverse mass of the body.
func (b *Body) SetInverseMass(m float64) {
	b.inverseMass = m
}

// Restitution returns the restitution of the body.
func (b *Body) Restitution() float64 {
	return b.restitution
}

// SetRestitution sets restitution (0-1 range)
func (b *Body) SetRestitution(r float64) {
	b.restitution = r
}

// MoveByDelta moves every shape by velocity*dt. The velocity is not modified.
func (b *Body) MoveByDelta(dt float64) {
	dx := b.velocity.X * dt
	dy := b.velocity.Y * dt
	for _, sh := range b.shapes {
		sh.translate(dx, dy)
	}
}

// Translate moves every shape by d.
func (b *Body) Translate(d vec.Vec2) {
	for _, sh := range b.shapes {
		sh.translate(d.X, d.Y)
	}
}

// BB returns the bounding box of all shapes.
func (b *Body) BB() BB {
	var bb BB
	for i, sh := range b.shapes {
		if i == 0 {
			bb = sh.CacheBB()
			continue
		}
		bb = bb.Merge(sh.CacheBB())
	}
	return bb
}

// Clone returns a deep copy of the geometry and kinematic state. The copy gets a
// new ID and belongs to no scene.
func (b *Body) Clone() *Body {
	body := NewBody(b.velocity, b.inverseMass, b.restitution)
	body.Kind = b.Kind
	body.Rule = b.Rule
	body.UserData = b.UserData
	for _, sh := range b.shapes {
		body.AttachShape(sh.clone())
	}
	return body
}
