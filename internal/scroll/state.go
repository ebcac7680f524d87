// Package scroll implements a viewport scrolling engine: scroll offset bookkeeping,
// scrollbar synchronization, input translation and double-buffered painting.
//
// The engine is host agnostic. Everything it needs from a window system is expressed
// through the interfaces in host.go; internal/window provides a terminal binding.
package scroll

import (
	"image"
	"image/color"
)

// defaultDivisor derives page from total and line from page when the caller passes 0.
const defaultDivisor = 10

// DefaultBackground is the fill used for content background and outside margins.
var DefaultBackground color.Color = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// State is the scroll bookkeeping for one viewport.
// Bar visibility is deliberately absent: the host owns it.
type State struct {
	Position   image.Point // top-left of the visible window into the content
	Total      image.Point // logical content extent; (0,0) disables scrolling
	Page       image.Point // step for page commands
	Line       image.Point // step for line commands and wheel notches
	Background color.Color
}

// NewState returns a disabled state with the default background.
func NewState() State {
	return State{Background: DefaultBackground}
}

// Enabled reports whether scrolling is on.
func (s State) Enabled() bool {
	return s.Total != image.Point{}
}

// WithSizes returns a copy with all size fields replaced, page and line defaulted
// where zero, and the position reset to the origin.
func (s State) WithSizes(total, page, line image.Point) State {
	if page.X == 0 {
		page.X = total.X / defaultDivisor
	}
	if page.Y == 0 {
		page.Y = total.Y / defaultDivisor
	}
	if line.X == 0 {
		line.X = page.X / defaultDivisor
	}
	if line.Y == 0 {
		line.Y = page.Y / defaultDivisor
	}
	s.Total = total
	s.Page = page
	s.Line = line
	s.Position = image.Point{}
	return s
}

// MaxOffset returns the largest valid offset for a given client size.
func (s State) MaxOffset(client image.Point) image.Point {
	return image.Pt(
		max(0, s.Total.X-client.X),
		max(0, s.Total.Y-client.Y),
	)
}

// Clamp bounds p into [0, MaxOffset(client)] on both axes.
func (s State) Clamp(p image.Point, client image.Point) image.Point {
	limit := s.MaxOffset(client)
	return image.Pt(clamp(p.X, 0, limit.X), clamp(p.Y, 0, limit.Y))
}

// InRange reports whether p satisfies the SetScrollPosition precondition.
func (s State) InRange(p image.Point) bool {
	return p.X >= 0 && p.X <= s.Total.X && p.Y >= 0 && p.Y <= s.Total.Y
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
