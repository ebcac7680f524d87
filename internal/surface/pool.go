package surface

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/zjrosen/scrollview/internal/cachemanager"
	"github.com/zjrosen/scrollview/internal/log"
)

// DefaultMaxCells caps a single buffer allocation: 2048x2048 cells.
const DefaultMaxCells = 4 << 20

// idleTTL is how long a released buffer stays available for reuse.
const idleTTL = 30 * time.Second

// ErrTooLarge is returned when a requested buffer exceeds the pool's cell budget.
var ErrTooLarge = errors.New("buffer exceeds cell budget")

type bufferKey string

func keyFor(size image.Point) bufferKey {
	return bufferKey(fmt.Sprintf("%dx%d", size.X, size.Y))
}

// Pool hands out off-screen grids and keeps released ones around briefly, so that
// toggling between content sizes does not reallocate every time.
type Pool struct {
	maxCells int
	idle     *cachemanager.InMemoryCacheManager[bufferKey, *Grid]
}

// NewPool creates a pool. maxCells <= 0 selects DefaultMaxCells.
func NewPool(maxCells int) *Pool {
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	return &Pool{
		maxCells: maxCells,
		idle:     cachemanager.NewInMemoryCacheManager[bufferKey, *Grid]("surface-pool", idleTTL, 2*idleTTL),
	}
}

// Get returns a grid of exactly size cells.
func (p *Pool) Get(size image.Point) (*Grid, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("invalid buffer size %dx%d", size.X, size.Y)
	}
	if size.X*size.Y > p.maxCells {
		return nil, fmt.Errorf("%dx%d is %d cells, over the %d-cell limit: %w",
			size.X, size.Y, size.X*size.Y, p.maxCells, ErrTooLarge)
	}
	if g, ok := p.idle.Take(context.Background(), keyFor(size)); ok {
		return g, nil
	}
	log.Debug(log.CatPaint, "pool miss", "size", size)
	return NewGrid(size), nil
}

// Put returns g to the pool.
func (p *Pool) Put(g *Grid) {
	if g == nil {
		return
	}
	p.idle.Set(context.Background(), keyFor(g.Size()), g, idleTTL)
}

// Drain drops every idle grid.
func (p *Pool) Drain() {
	_ = p.idle.Flush(context.Background())
}

// Idle is the number of grids waiting for reuse.
func (p *Pool) Idle() int {
	return p.idle.Len()
}
