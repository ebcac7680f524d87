package window

import (
	"context"
	"errors"
	"fmt"
	"image"

	zone "github.com/lrstanley/bubblezone"
)

// ErrOutOfRange is returned by Snapshot for a position outside the content.
var ErrOutOfRange = errors.New("scroll position outside the content")

// Snapshot renders a single frame of cfg at the given outer size, scrolled to
// at, without a status line. It runs the same load, sync and paint path as the
// interactive viewer. at must lie within [0, total]; positions that leave part of
// the client past the end are clamped.
func Snapshot(ctx context.Context, cfg Config, size, at image.Point) (string, error) {
	if size.X <= 0 || size.Y <= 0 {
		return "", fmt.Errorf("snapshot size must be positive, got %dx%d", size.X, size.Y)
	}
	cfg.Watch = false
	m := NewModel(cfg)
	defer m.shutdown()
	m.showStatus = false
	m.width, m.height = size.X, size.Y
	m.relayout()

	c, err := m.loader.Load(ctx, cfg.Source)
	if err != nil {
		return "", err
	}
	m.applyContent(contentLoadedMsg{content: c})
	if m.lastErr != nil {
		return "", m.lastErr
	}
	if total := m.view.TotalScrollSize(); at.X < 0 || at.Y < 0 || at.X > total.X || at.Y > total.Y {
		return "", fmt.Errorf("%w: %d,%d is not within 0,0 and %d,%d", ErrOutOfRange, at.X, at.Y, total.X, total.Y)
	}
	if err := m.view.SetScrollPosition(at); err != nil {
		return "", fmt.Errorf("scrolling to %d,%d: %w", at.X, at.Y, err)
	}
	m.paint()
	if m.lastErr != nil {
		return "", m.lastErr
	}
	return zone.Scan(m.win.Render()), nil
}
