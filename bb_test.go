package sweep_test

import (
	"testing"

	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"

	"github.com/setanarut/sweep"
)

func TestBBIntersects(t *testing.T) {
	a := sweep.NewBB(0, 0, 10, 10)
	assert.True(t, a.Intersects(sweep.NewBB(10, 10, 20, 20)), "touching boxes intersect")
	assert.False(t, a.Intersects(sweep.NewBB(10.5, 0, 20, 10)))
	assert.True(t, a.Contains(sweep.NewBB(1, 1, 9, 9)))
	assert.False(t, a.Contains(sweep.NewBB(1, 1, 11, 9)))
}

func TestBBSweep(t *testing.T) {
	bb := sweep.NewBBForCircle(vec.Vec2{}, 1)
	swept := bb.Sweep(vec.Vec2{X: 10, Y: -2}, 0.5)
	assert.Equal(t, sweep.NewBB(-6, -2, 6, 2), swept)
	assert.Equal(t, bb, bb.Sweep(vec.Vec2{X: 10}, 0))
}

func TestBBForSegment(t *testing.T) {
	bb := sweep.NewBBForSegment(vec.Vec2{X: 5, Y: -1}, vec.Vec2{X: -3, Y: 4})
	assert.Equal(t, sweep.NewBB(-3, -1, 5, 4), bb)
	assert.Equal(t, vec.Vec2{X: 1, Y: 1.5}, bb.Center())
	assert.Equal(t, 40.0, bb.Area())
}
