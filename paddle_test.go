package sweep_test

import (
	"math"
	"testing"

	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/sweep"
)

func testPaddle() *sweep.Paddle {
	return sweep.NewPaddle(sweep.PaddleConfig{
		Width:              30,
		Height:             10,
		Direction:          vec.Vec2{Y: -1},
		ProtectedWallWidth: 100,
		SpeedFactor:        1,
		PlayerID:           7,
	})
}

func TestPaddleShape(t *testing.T) {
	p := testPaddle()
	require.Len(t, p.Shapes(), 8)

	segments, corners := 0, 0
	for _, sh := range p.Shapes() {
		assert.Same(t, p.Body, sh.Body())
		if c, ok := sh.Circle(); ok {
			assert.Zero(t, c.Radius)
			corners++
		} else {
			segments++
		}
	}
	assert.Equal(t, 4, segments)
	assert.Equal(t, 4, corners)

	assert.Zero(t, p.InverseMass())
	assert.Equal(t, 1.0, p.Restitution())
	assert.Equal(t, 7, p.PlayerID)
	assert.InDelta(t, 0, p.Center().X, 1e-12)
	assert.InDelta(t, 0, p.Center().Y, 1e-12)
	assert.Equal(t, sweep.NewBB(-15, -5, 15, 5), p.BB())
	assert.InDelta(t, -math.Pi/2, p.Angle(), 1e-12)
}

func TestPaddleBounds(t *testing.T) {
	p := testPaddle()
	lo, hi := p.Bounds()
	// half the goal minus half the paddle minus one
	assert.InDelta(t, -34, lo.X, 1e-12)
	assert.InDelta(t, 34, hi.X, 1e-12)
	assert.InDelta(t, 0, lo.Y, 1e-12)
}

func TestPaddleBoundsFromWalls(t *testing.T) {
	p := sweep.NewPaddle(sweep.PaddleConfig{
		Width:              30,
		Height:             10,
		Direction:          vec.Vec2{Y: -1},
		ProtectedWallWidth: 200,
		SpeedFactor:        1,
		Walls: [2]*sweep.Segment{
			newWall(vec.Vec2{X: -60, Y: -100}, vec.Vec2{X: -60, Y: 100}),
			newWall(vec.Vec2{X: 60, Y: -100}, vec.Vec2{X: 60, Y: 100}),
		},
	})
	lo, hi := p.Bounds()
	assert.InDelta(t, -34, lo.X, 1e-9)
	assert.InDelta(t, 34, hi.X, 1e-9)
	assert.Equal(t, 200.0, p.BaseSpeed())
}

func TestPaddleUpdateVelocity(t *testing.T) {
	p := testPaddle()
	assert.True(t, math.IsInf(p.UpdateVelocity(), 1))
	assert.Equal(t, vec.Vec2{}, p.Velocity())

	require.True(t, p.PressKey(sweep.KeyRight, true))
	assert.InDelta(t, 0.34, p.UpdateVelocity(), 1e-12)
	assert.InDelta(t, 100, p.Velocity().X, 1e-12)
	assert.InDelta(t, 0, p.Velocity().Y, 1e-12)

	p.SetReverseControls(true)
	assert.InDelta(t, 0.34, p.UpdateVelocity(), 1e-12)
	assert.InDelta(t, -100, p.Velocity().X, 1e-12)
	p.SetReverseControls(false)

	p.SetSpeed(50)
	p.SetSpeed(-1)
	assert.Equal(t, 50.0, p.Speed())
	assert.Equal(t, 100.0, p.BaseSpeed())
	assert.InDelta(t, 0.68, p.UpdateVelocity(), 1e-12)

	assert.False(t, p.PressKey("Space", true))
}

func TestPaddleBothKeysCancel(t *testing.T) {
	p := testPaddle()
	p.PressKey(sweep.KeyLeft, true)
	p.PressKey(sweep.KeyRight, true)

	assert.True(t, math.IsInf(p.UpdateVelocity(), 1))
	assert.Equal(t, vec.Vec2{}, p.Velocity())
}

func TestPaddleStopsAtBound(t *testing.T) {
	p := testPaddle()
	p.Translate(vec.Vec2{X: 34})

	p.PressKey(sweep.KeyRight, true)
	assert.True(t, math.IsInf(p.UpdateVelocity(), 1))
	assert.Equal(t, vec.Vec2{}, p.Velocity())

	p.PressKey(sweep.KeyRight, false)
	p.PressKey(sweep.KeyLeft, true)
	assert.InDelta(t, 0.68, p.UpdateVelocity(), 1e-9)
}

func TestPaddleMovesInScene(t *testing.T) {
	scene := sweep.NewScene(sweep.DefaultConfig())
	p := testPaddle()
	scene.AddBody(p.Body)

	p.PressKey(sweep.KeyRight, true)
	limit := p.UpdateVelocity()
	scene.PlaySimulation(limit, nil)
	_, hi := p.Bounds()
	assert.InDelta(t, hi.X, p.Center().X, 1e-9)
	assert.True(t, math.IsInf(p.UpdateVelocity(), 1))
}

func TestPaddleSanitizesInputs(t *testing.T) {
	p := sweep.NewPaddle(sweep.PaddleConfig{
		Center:             vec.Vec2{X: math.NaN()},
		Width:              math.NaN(),
		Height:             -1,
		SpeedFactor:        math.Inf(1),
		ProtectedWallWidth: 0,
	})
	assert.Equal(t, sweep.DefaultPaddleWidth, p.Width())
	assert.Equal(t, sweep.DefaultPaddleHeight, p.Height())
	assert.Equal(t, sweep.DefaultPaddleWidth*sweep.DefaultPaddleSpeedFactor, p.BaseSpeed())
	assert.InDelta(t, -math.Pi/2, p.Angle(), 1e-12)
	assert.InDelta(t, 0, p.Center().X, 1e-12)

	p.PressKey(sweep.KeyLeft, true)
	assert.True(t, math.IsInf(p.UpdateVelocity(), 1), "no room to travel")
}

func TestPaddleRebuildsOnOverflow(t *testing.T) {
	p := sweep.NewPaddle(sweep.PaddleConfig{
		Center:             vec.Vec2{X: 0.9 * math.MaxFloat64},
		Width:              10,
		Height:             1e308,
		Direction:          vec.Vec2{X: 1},
		ProtectedWallWidth: 100,
	})
	assert.Equal(t, sweep.DefaultPaddleWidth, p.Width())
	assert.InDelta(t, -math.Pi/2, p.Angle(), 1e-12)

	lo, hi := p.Bounds()
	for _, v := range []vec.Vec2{lo, hi} {
		assert.False(t, math.IsInf(v.X, 0) || math.IsNaN(v.X))
	}
	for _, sh := range p.Shapes() {
		bb := sh.CacheBB()
		assert.False(t, math.IsInf(bb.L, 0) || math.IsInf(bb.R, 0))
	}
}
