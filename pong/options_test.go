package pong

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/sweep"
)

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(`
ball_speed: 300
amount_of_balls: 2
seed: 99
engine:
  max_iterations: 50
  broadphase:
    verify: true
`))
	require.NoError(t, err)
	assert.Equal(t, 300.0, opts.BallSpeed)
	assert.Equal(t, 2, opts.AmountOfBalls)
	assert.Equal(t, uint64(99), opts.Seed)
	assert.Equal(t, 50, opts.Engine.MaxIterations)
	assert.True(t, opts.Engine.Broadphase.Verify)
	assert.True(t, opts.Engine.Broadphase.Enabled)
	assert.Equal(t, DefaultOptions().CanvasWidth, opts.CanvasWidth)
}

func TestLoadOptionsInvalid(t *testing.T) {
	_, err := LoadOptions(strings.NewReader("amount_of_balls: 0"))
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = LoadOptions(strings.NewReader("paddle_width_factor: 1.5"))
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = LoadOptions(strings.NewReader("engine:\n  time_scale: -1"))
	assert.ErrorIs(t, err, ErrInvalidOptions)
	assert.ErrorIs(t, err, sweep.ErrInvalidConfig)

	_, err = LoadOptions(strings.NewReader("ball_speed: {"))
	assert.Error(t, err)
}

func TestNewBoardRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.CanvasWidth = 0
	_, err := NewBoard([]int{1}, opts, nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}
