package pong

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner ticks many independent boards in parallel.
type Runner struct {
	mu     sync.RWMutex
	boards map[uuid.UUID]*Board
	order  []uuid.UUID
	logger *zap.Logger
	limit  int
}

// NewRunner returns an empty runner. limit caps the number of boards ticked at the
// same time; zero or less means no cap.
func NewRunner(logger *zap.Logger, limit int) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		boards: make(map[uuid.UUID]*Board),
		logger: logger,
		limit:  limit,
	}
}

// Add registers b under its ID.
func (r *Runner) Add(b *Board) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[b.ID]; !ok {
		r.order = append(r.order, b.ID)
	}
	r.boards[b.ID] = b
	r.logger.Debug("board added", zap.Stringer("board", b.ID))
	return b.ID
}

// Remove unregisters the board with id and reports whether it was registered.
func (r *Runner) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[id]; !ok {
		return false
	}
	delete(r.boards, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Debug("board removed", zap.Stringer("board", id))
	return true
}

func (r *Runner) Get(id uuid.UUID) (*Board, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.boards[id]
	return b, ok
}

func (r *Runner) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.boards)
}

// Boards returns the registered boards in the order they were added.
func (r *Runner) Boards() []*Board {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Board, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.boards[id])
	}
	return out
}

// TickAll ticks every registered board by dt, each on its own goroutine. A
// cancelled context stops boards that have not started their tick yet. The first
// error is returned.
func (r *Runner) TickAll(ctx context.Context, dt float64) error {
	boards := r.Boards()

	g, ctx := errgroup.WithContext(ctx)
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}
	for _, b := range boards {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := b.Tick(dt); err != nil {
				return fmt.Errorf("tick board %s: %w", b.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}
