package pong

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/sweep"
)

func TestRunnerRegistry(t *testing.T) {
	r := NewRunner(nil, 0)
	a := newTestBoard(t, []int{1, 2})
	b := newTestBoard(t, []int{3})

	assert.Equal(t, a.ID, r.Add(a))
	r.Add(b)
	r.Add(a)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []*Board{a, b}, r.Boards())

	got, ok := r.Get(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	assert.True(t, r.Remove(a.ID))
	assert.False(t, r.Remove(a.ID))
	_, ok = r.Get(a.ID)
	assert.False(t, ok)
	_, ok = r.Get(uuid.New())
	assert.False(t, ok)
	assert.Equal(t, []*Board{b}, r.Boards())
}

func TestRunnerTickAll(t *testing.T) {
	r := NewRunner(nil, 2)
	for i := range 5 {
		opts := DefaultOptions()
		opts.Seed = uint64(i)
		board, err := NewBoard([]int{1, 2, 3, 4}, opts, nil)
		require.NoError(t, err)
		r.Add(board)
	}

	const dt = 1.0 / 60
	for range 30 {
		require.NoError(t, r.TickAll(context.Background(), dt))
	}
	for _, b := range r.Boards() {
		assert.InDelta(t, 30*dt, b.ElapsedTime(), 1e-9)
	}
}

func TestRunnerTickAllMatchesSerialTicks(t *testing.T) {
	r := NewRunner(nil, 0)
	var serial []*Board
	for i := range 3 {
		opts := DefaultOptions()
		opts.Seed = uint64(10 + i)
		a, err := NewBoard([]int{1, 2}, opts, nil)
		require.NoError(t, err)
		b, err := NewBoard([]int{1, 2}, opts, nil)
		require.NoError(t, err)
		r.Add(a)
		serial = append(serial, b)
	}

	for range 120 {
		require.NoError(t, r.TickAll(context.Background(), 1.0/60))
		for _, b := range serial {
			require.NoError(t, b.Tick(1.0/60))
		}
	}
	for i, b := range r.Boards() {
		assert.Equal(t, serial[i].Digest(), b.Digest())
	}
}

func TestRunnerTickAllErrors(t *testing.T) {
	r := NewRunner(nil, 0)
	r.Add(newTestBoard(t, []int{1}))

	assert.ErrorIs(t, r.TickAll(context.Background(), -1), ErrInvalidDelta)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.TickAll(ctx, 1.0/60), context.Canceled)
	assert.Zero(t, r.Boards()[0].ElapsedTime())
}

func TestBoardConcurrentInput(t *testing.T) {
	b := newTestBoard(t, []int{1, 2})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 100 {
			assert.NoError(t, b.Tick(1.0/120))
		}
	}()
	go func() {
		defer wg.Done()
		for i := range 100 {
			b.HandleKey(sweep.KeyLeft, i%2 == 0)
			_ = b.State()
		}
	}()
	wg.Wait()
	assert.InDelta(t, 100.0/120, b.ElapsedTime(), 1e-9)
}
