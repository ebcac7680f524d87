// Package window binds the scroll engine to a terminal. A Window is the host: a
// client area of cells, an optional border and two one-cell scrollbars. Model
// drives a Window and its scroll.View from a Bubble Tea program.
package window

import (
	"image"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/scrollview/internal/log"
	"github.com/zjrosen/scrollview/internal/scroll"
	"github.com/zjrosen/scrollview/internal/surface"
)

// Zone IDs for mouse hit-testing of the bars.
const (
	zoneHBar = "scrollview-hbar"
	zoneVBar = "scrollview-vbar"
)

var borderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#6B7280"))

// Options configures a Window.
type Options struct {
	Size    image.Point // outer size in cells
	Border  bool
	HScroll bool // the horizontal bar may be shown
	VScroll bool // the vertical bar may be shown
	Pool    *surface.Pool
}

// Window is a terminal-backed scroll.Host.
type Window struct {
	outer   image.Point
	border  bool
	allowed [2]bool
	visible [2]bool
	info    [2]scroll.BarInfo
	pool    *surface.Pool

	front *surface.Grid // what the client area currently shows
	dirty bool

	// onFrameChanged runs when showing or hiding a bar changes the client area.
	onFrameChanged func()
}

var _ scroll.Host = (*Window)(nil)

// New creates a window. A nil pool gets a private one.
func New(opts Options) *Window {
	pool := opts.Pool
	if pool == nil {
		pool = surface.NewPool(0)
	}
	w := &Window{
		outer:   image.Pt(max(0, opts.Size.X), max(0, opts.Size.Y)),
		border:  opts.Border,
		allowed: [2]bool{opts.HScroll, opts.VScroll},
		visible: [2]bool{opts.HScroll, opts.VScroll},
		pool:    pool,
		dirty:   true,
	}
	w.front = surface.NewGrid(w.ClientRect().Size())
	return w
}

// OnFrameChanged registers fn to run whenever bar visibility changes the client size.
func (w *Window) OnFrameChanged(fn func()) { w.onFrameChanged = fn }

// Size returns the outer size.
func (w *Window) Size() image.Point { return w.outer }

// SetSize commits a new outer size. Callers announce it with scroll.Resizable first.
func (w *Window) SetSize(outer image.Point) {
	w.outer = image.Pt(max(0, outer.X), max(0, outer.Y))
	w.dirty = true
}

// Resize runs the two-phase resize protocol against r.
func (w *Window) Resize(r scroll.Resizable, outer image.Point) error {
	if err := r.Resizing(outer); err != nil {
		return err
	}
	w.SetSize(outer)
	return r.Resized()
}

// Dirty reports whether the client area needs a paint.
func (w *Window) Dirty() bool { return w.dirty }

// Front returns the grid shown in the client area.
func (w *Window) Front() *surface.Grid { return w.front }

// ClientRect is the area left for content inside the border and the visible bars.
func (w *Window) ClientRect() image.Rectangle {
	size := w.outer.Sub(w.Decoration())
	if w.visible[scroll.AxisV] {
		size.X--
	}
	if w.visible[scroll.AxisH] {
		size.Y--
	}
	return image.Rectangle{Max: image.Pt(max(0, size.X), max(0, size.Y))}
}

// WindowRect places the window at the top-left of the terminal.
func (w *Window) WindowRect() image.Rectangle {
	return image.Rectangle{Max: w.outer}
}

// ScreenToClient moves r from terminal coordinates into client coordinates.
func (w *Window) ScreenToClient(r image.Rectangle) image.Rectangle {
	return r.Sub(w.Decoration().Div(2))
}

// Decoration is the border: one cell on every side.
func (w *Window) Decoration() image.Point {
	if w.border {
		return image.Pt(2, 2)
	}
	return image.Point{}
}

// BarThickness is one cell for both bars.
func (w *Window) BarThickness() image.Point { return image.Pt(1, 1) }

// BarVisible reports whether the bar is shown. For AxisBoth both must be.
func (w *Window) BarVisible(axis scroll.Axis) bool {
	if axis == scroll.AxisBoth {
		return w.visible[scroll.AxisH] && w.visible[scroll.AxisV]
	}
	return w.visible[axis]
}

// ShowBar shows or hides a bar. Bars that are not allowed stay hidden.
func (w *Window) ShowBar(axis scroll.Axis, show bool) error {
	before := w.ClientRect()
	for _, a := range []scroll.Axis{scroll.AxisH, scroll.AxisV} {
		if axis == a || axis == scroll.AxisBoth {
			w.visible[a] = show && w.allowed[a]
		}
	}
	if w.ClientRect() == before {
		return nil
	}
	log.Debug(log.CatHost, "client area changed", "axis", axis, "show", show, "client", w.ClientRect().Size())
	w.dirty = true
	if w.onFrameChanged != nil {
		w.onFrameChanged()
	}
	return nil
}

// AllowBars changes which bars may be shown, hiding any that no longer may.
// Newly allowed bars appear on the next sync.
func (w *Window) AllowBars(h, v bool) error {
	w.allowed = [2]bool{h, v}
	if !h {
		if err := w.ShowBar(scroll.AxisH, false); err != nil {
			return err
		}
	}
	if !v {
		return w.ShowBar(scroll.AxisV, false)
	}
	return nil
}

// SetBarInfo stores info with the thumb kept inside [Min, Max-Page+1], the way a
// native scrollbar normalizes it.
func (w *Window) SetBarInfo(axis scroll.Axis, info scroll.BarInfo) error {
	hi := max(info.Min, info.Max-max(0, info.Page-1))
	info.Pos = max(info.Min, min(info.Pos, hi))
	w.info[axis] = info
	return nil
}

// BarInfo returns the range, page and thumb last set for the bar.
func (w *Window) BarInfo(axis scroll.Axis) scroll.BarInfo { return w.info[axis] }

// ScrollContent moves what is on screen by (dx, dy) and marks the window for a
// repaint of the uncovered strip.
func (w *Window) ScrollContent(dx, dy int) error {
	w.front.Blit(image.Pt(dx, dy), w.front, image.Point{}, w.front.Size())
	w.dirty = true
	return nil
}

// Invalidate marks the client area for a full repaint.
func (w *Window) Invalidate() { w.dirty = true }

// BeginPaint returns the client grid, resized to the current client area.
func (w *Window) BeginPaint() (scroll.Surface, error) {
	if size := w.ClientRect().Size(); w.front.Size() != size {
		w.front = surface.NewGrid(size)
	}
	w.dirty = false
	return w.front, nil
}

// NewBuffer takes an off-screen grid of size cells from the pool.
func (w *Window) NewBuffer(size image.Point) (scroll.Surface, error) {
	g, err := w.pool.Get(size)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ReleaseBuffer returns a grid from NewBuffer to the pool.
func (w *Window) ReleaseBuffer(s scroll.Surface) {
	if g, ok := s.(*surface.Grid); ok {
		w.pool.Put(g)
	}
}

// DefaultPaint clears the client area to the terminal's own background.
func (w *Window) DefaultPaint() error {
	dc, err := w.BeginPaint()
	if err != nil {
		return err
	}
	dc.Fill(image.Rectangle{Max: dc.Size()}, nil)
	return nil
}

// DefaultErase blanks the client area.
func (w *Window) DefaultErase() bool {
	w.front.Fill(w.front.Bounds(), nil)
	return true
}

// Render draws the client area, the visible bars and the border.
func (w *Window) Render() string {
	if w.outer.X <= 0 || w.outer.Y <= 0 {
		return ""
	}
	client := w.ClientRect().Size()
	body := w.front.Render()
	if w.front.Size() != client {
		// Not painted since the last resize.
		body = surface.NewGrid(client).Render()
	}

	if w.visible[scroll.AxisV] {
		bar := renderBar(scroll.AxisV, w.info[scroll.AxisV], client.Y)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, zone.Mark(zoneVBar, bar))
	}
	if w.visible[scroll.AxisH] {
		bar := zone.Mark(zoneHBar, renderBar(scroll.AxisH, w.info[scroll.AxisH], client.X))
		if w.visible[scroll.AxisV] {
			bar += " "
		}
		body = lipgloss.JoinVertical(lipgloss.Left, body, bar)
	}
	if w.border {
		body = borderStyle.Render(body)
	}
	return body
}
