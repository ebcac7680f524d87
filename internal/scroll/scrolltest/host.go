// Package scrolltest provides an in-memory scroll.Host that records every call,
// for exercising the engine without a terminal.
package scrolltest

import (
	"errors"
	"image"

	"github.com/zjrosen/scrollview/internal/scroll"
	"github.com/zjrosen/scrollview/internal/surface"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("injected host failure")

// Host is a fake window. Its client area is Outer minus Decoration minus the
// thickness of every visible bar, like a native window with a sunken client edge.
type Host struct {
	Origin     image.Point // window position on screen
	Outer      image.Point
	Deco       image.Point
	Thickness  image.Point
	Visible    [2]bool
	Info       [2]scroll.BarInfo
	Screen     *surface.Grid
	FailAlloc  bool
	FailShow   bool
	FailScroll bool

	// Refuse lists bars ShowBar will never show, like a window created without
	// that scroll style.
	Refuse [2]bool

	// OnFrameChanged runs whenever showing or hiding a bar changes the client area,
	// mimicking the resize notification a real window sends.
	OnFrameChanged func()

	Shifts        []image.Point
	ShowCalls     int
	Invalidations int
	DefaultPaints int
	DefaultErases int
	Allocations   int
	Released      int
}

// New returns a host of the given outer size with 1-cell bars, no border and both
// bars initially visible.
func New(outer image.Point) *Host {
	return &Host{
		Origin:    image.Pt(3, 2),
		Outer:     outer,
		Thickness: image.Pt(1, 1),
		Visible:   [2]bool{true, true},
		Screen:    surface.NewGrid(outer),
	}
}

var _ scroll.Host = (*Host)(nil)

func (h *Host) ClientRect() image.Rectangle {
	size := h.Outer.Sub(h.Deco)
	if h.Visible[scroll.AxisV] {
		size.X -= h.Thickness.X
	}
	if h.Visible[scroll.AxisH] {
		size.Y -= h.Thickness.Y
	}
	return image.Rectangle{Max: image.Pt(max(0, size.X), max(0, size.Y))}
}

func (h *Host) WindowRect() image.Rectangle {
	return image.Rectangle{Min: h.Origin, Max: h.Origin.Add(h.Outer)}
}

func (h *Host) ScreenToClient(r image.Rectangle) image.Rectangle {
	return r.Sub(h.Origin.Add(h.Deco.Div(2)))
}

func (h *Host) Decoration() image.Point   { return h.Deco }
func (h *Host) BarThickness() image.Point { return h.Thickness }

func (h *Host) BarVisible(axis scroll.Axis) bool { return h.Visible[axis] }

func (h *Host) ShowBar(axis scroll.Axis, show bool) error {
	h.ShowCalls++
	if h.FailShow {
		return ErrInjected
	}
	before := h.ClientRect()
	for _, a := range []scroll.Axis{scroll.AxisH, scroll.AxisV} {
		if axis == a || axis == scroll.AxisBoth {
			h.Visible[a] = show && !h.Refuse[a]
		}
	}
	if h.ClientRect() != before && h.OnFrameChanged != nil {
		h.OnFrameChanged()
	}
	return nil
}

func (h *Host) SetBarInfo(axis scroll.Axis, info scroll.BarInfo) error {
	h.Info[axis] = info
	return nil
}

func (h *Host) BarInfo(axis scroll.Axis) scroll.BarInfo { return h.Info[axis] }

func (h *Host) ScrollContent(dx, dy int) error {
	if h.FailScroll {
		return ErrInjected
	}
	h.Shifts = append(h.Shifts, image.Pt(dx, dy))
	return nil
}

func (h *Host) Invalidate() { h.Invalidations++ }

func (h *Host) BeginPaint() (scroll.Surface, error) { return h.Screen, nil }

func (h *Host) NewBuffer(size image.Point) (scroll.Surface, error) {
	if h.FailAlloc {
		return nil, ErrInjected
	}
	h.Allocations++
	return surface.NewGrid(size), nil
}

func (h *Host) ReleaseBuffer(scroll.Surface) { h.Released++ }

func (h *Host) DefaultPaint() error {
	h.DefaultPaints++
	return nil
}

func (h *Host) DefaultErase() bool {
	h.DefaultErases++
	return true
}

// Resize drives the two-phase resize protocol against v.
func (h *Host) Resize(v scroll.Resizable, outer image.Point) error {
	if err := v.Resizing(outer); err != nil {
		return err
	}
	h.Outer = outer
	h.Screen = surface.NewGrid(outer)
	return v.Resized()
}
