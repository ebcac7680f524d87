package scroll

import (
	"image"
	"image/color"
)

// Axis selects a scrollbar.
type Axis int

const (
	// AxisH is the horizontal bar; it scrolls along X.
	AxisH Axis = iota
	// AxisV is the vertical bar; it scrolls along Y.
	AxisV
	// AxisBoth addresses both bars at once. Only valid for ShowBar.
	AxisBoth
)

func (a Axis) String() string {
	switch a {
	case AxisH:
		return "horizontal"
	case AxisV:
		return "vertical"
	case AxisBoth:
		return "both"
	default:
		return "unknown"
	}
}

// of picks the component of p that belongs to the axis.
func (a Axis) of(p image.Point) int {
	if a == AxisH {
		return p.X
	}
	return p.Y
}

// set returns p with the axis component replaced by v.
func (a Axis) set(p image.Point, v int) image.Point {
	if a == AxisH {
		p.X = v
	} else {
		p.Y = v
	}
	return p
}

// BarInfo is the range/page/position triple of one scrollbar.
type BarInfo struct {
	Min  int
	Max  int
	Page int
	Pos  int
}

// Geometry answers size queries about the host window.
type Geometry interface {
	// ClientRect is the drawable area in client coordinates, bars and border excluded.
	ClientRect() image.Rectangle
	// WindowRect is the outer window rectangle in screen coordinates.
	WindowRect() image.Rectangle
	// ScreenToClient converts a screen rectangle to client coordinates.
	ScreenToClient(r image.Rectangle) image.Rectangle
	// Decoration is the total border size per axis (left+right, top+bottom).
	Decoration() image.Point
	// BarThickness is the vertical bar width (X) and horizontal bar height (Y).
	BarThickness() image.Point
}

// Scrollbars controls the two bar widgets. Visibility is owned by the host.
type Scrollbars interface {
	BarVisible(axis Axis) bool
	ShowBar(axis Axis, show bool) error
	SetBarInfo(axis Axis, info BarInfo) error
	BarInfo(axis Axis) BarInfo
}

// Shifter moves already visible pixels without a full redraw.
type Shifter interface {
	// ScrollContent shifts visible pixels by (dx, dy) and invalidates what is exposed.
	ScrollContent(dx, dy int) error
	// Invalidate marks the whole client area for repaint.
	Invalidate()
}

// Surface is a drawable pixel grid.
type Surface interface {
	Size() image.Point
	Fill(r image.Rectangle, c color.Color)
	// Blit copies size pixels from src at srcPos to this surface at dst, clipped to both.
	Blit(dst image.Point, src Surface, srcPos image.Point, size image.Point)
}

// Surfaces hands out the real paint surface and off-screen buffers.
type Surfaces interface {
	BeginPaint() (Surface, error)
	NewBuffer(size image.Point) (Surface, error)
	ReleaseBuffer(s Surface)
	// DefaultPaint is the host's own paint behaviour, used while scrolling is off.
	DefaultPaint() error
	// DefaultErase is the host's own background erase; it reports whether it erased.
	DefaultErase() bool
}

// Host is everything the engine needs from the window system.
type Host interface {
	Geometry
	Scrollbars
	Shifter
	Surfaces
}

// DrawFunc paints the entire logical content into buf on every call.
type DrawFunc func(buf Surface)
