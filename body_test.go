package sweep_test

import (
	"testing"

	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/sweep"
)

func TestBodyPropertiesFromShapes(t *testing.T) {
	body := sweep.NewBody(vec.Vec2{X: 1, Y: 2}, 0.5, 0.8)
	sweep.NewCircleShape(body, vec.Vec2{}, 5)
	sweep.NewCircleShape(body, vec.Vec2{X: 10}, 5)

	for _, sh := range body.Shapes() {
		assert.Same(t, body, sh.Body())
		assert.Equal(t, vec.Vec2{X: 1, Y: 2}, sh.Velocity())
		assert.Equal(t, 0.5, sh.InverseMass())
		assert.Equal(t, 0.8, sh.Restitution())
	}

	// writes through a shape land on the body
	body.ShapeAtIndex(1).SetVelocity(vec.Vec2{X: -3})
	assert.Equal(t, vec.Vec2{X: -3}, body.Velocity())
	assert.Equal(t, vec.Vec2{X: -3}, body.ShapeAtIndex(0).Velocity())
}

func TestBodyMoveByDelta(t *testing.T) {
	body := sweep.NewBody(vec.Vec2{X: 2, Y: -1}, 1, 1)
	c := sweep.NewCircleShape(body, vec.Vec2{}, 1)
	s := sweep.NewSegmentShape(body, vec.Vec2{X: 1}, vec.Vec2{X: 1, Y: 5})

	body.MoveByDelta(0.5)
	assert.Equal(t, vec.Vec2{X: 1, Y: -0.5}, c.Center)
	assert.Equal(t, vec.Vec2{X: 2, Y: -0.5}, s.A)
	assert.Equal(t, vec.Vec2{X: 2, Y: 4.5}, s.B)
	assert.Equal(t, vec.Vec2{X: 2, Y: -1}, body.Velocity())

	assert.Equal(t, sweep.NewBB(0, -1.5, 2, 4.5), body.BB())
}

func TestCompositeOwnership(t *testing.T) {
	a := sweep.NewCircleBody(vec.Vec2{}, 1, vec.Vec2{})
	b := sweep.NewSegmentBody(vec.Vec2{}, vec.Vec2{X: 1}, vec.Vec2{})
	composite := sweep.NewCompositeBody(vec.Vec2{Y: 3}, 0, 1, a, b)

	require.Len(t, composite.Shapes(), 2)
	assert.Empty(t, a.Shapes())
	assert.Empty(t, b.Shapes())
	for _, sh := range composite.Shapes() {
		assert.Same(t, composite, sh.Body())
		assert.True(t, composite.IsPartOfObject(sh))
		assert.Equal(t, vec.Vec2{Y: 3}, sh.Velocity())
	}

	// attaching moves the shape out of its previous owner
	other := sweep.NewBody(vec.Vec2{}, 1, 1)
	sh := composite.ShapeAtIndex(0)
	other.AttachShape(sh)
	assert.Len(t, composite.Shapes(), 1)
	assert.False(t, composite.IsPartOfObject(sh))
	assert.Same(t, other, sh.Body())
}

func TestCompositePartInScenePanics(t *testing.T) {
	scene := sweep.NewScene(sweep.DefaultConfig())
	part := sweep.NewCircleBody(vec.Vec2{}, 1, vec.Vec2{})
	scene.AddBody(part)

	assert.Panics(t, func() {
		sweep.NewCompositeBody(vec.Vec2{}, 1, 1, part)
	})
}

func TestBodyClone(t *testing.T) {
	body := sweep.NewCircleBody(vec.Vec2{X: 1}, 2, vec.Vec2{X: 3})
	body.Kind = 7
	body.Rule = sweep.IgnoreRule()

	clone := body.Clone()
	assert.NotEqual(t, body.ID, clone.ID)
	assert.Equal(t, body.Kind, clone.Kind)
	assert.Equal(t, body.Rule, clone.Rule)
	assert.Nil(t, clone.Scene())

	c, ok := clone.ShapeAtIndex(0).Circle()
	require.True(t, ok)
	assert.Equal(t, 2.0, c.Radius)

	clone.MoveByDelta(1)
	orig, _ := body.ShapeAtIndex(0).Circle()
	assert.Equal(t, vec.Vec2{X: 1}, orig.Center, "clone shares no geometry")
	assert.Equal(t, vec.Vec2{X: 4}, c.Center)
}
