package scroll

import (
	"fmt"
	"image"
)

// Kind tags a host event.
type Kind uint8

const (
	KindPageUp Kind = iota
	KindPageDown
	KindLineUp
	KindLineDown
	KindPageLeft
	KindPageRight
	KindLineLeft
	KindLineRight
	KindThumbTrackH
	KindThumbTrackV
	KindWheel
	KindResizing
	KindResized
	KindPaint
	KindEraseBackground
	numKinds
)

var kindNames = [numKinds]string{
	"page-up", "page-down", "line-up", "line-down",
	"page-left", "page-right", "line-left", "line-right",
	"thumb-track-h", "thumb-track-v", "wheel",
	"resizing", "resized", "paint", "erase-background",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Event is a window-system-neutral input to the view.
type Event struct {
	Kind  Kind
	Value int         // thumb position or wheel rotation
	Size  image.Point // proposed outer size for KindResizing
}

// PageUp scrolls up by one vertical page.
func PageUp() Event { return Event{Kind: KindPageUp} }

// PageDown scrolls down by one vertical page.
func PageDown() Event { return Event{Kind: KindPageDown} }

// LineUp scrolls up by one vertical line.
func LineUp() Event { return Event{Kind: KindLineUp} }

// LineDown scrolls down by one vertical line.
func LineDown() Event { return Event{Kind: KindLineDown} }

// PageLeft scrolls left by one horizontal page.
func PageLeft() Event { return Event{Kind: KindPageLeft} }

// PageRight scrolls right by one horizontal page.
func PageRight() Event { return Event{Kind: KindPageRight} }

// LineLeft scrolls left by one horizontal line.
func LineLeft() Event { return Event{Kind: KindLineLeft} }

// LineRight scrolls right by one horizontal line.
func LineRight() Event { return Event{Kind: KindLineRight} }

// ThumbTrack reports the thumb of the axis bar dragged to value.
func ThumbTrack(axis Axis, value int) Event {
	if axis == AxisH {
		return Event{Kind: KindThumbTrackH, Value: value}
	}
	return Event{Kind: KindThumbTrackV, Value: value}
}

// Wheel reports a wheel rotation in NotchUnit steps per detent.
func Wheel(rotation int) Event { return Event{Kind: KindWheel, Value: rotation} }

// Resizing announces a proposed outer size before it takes effect.
func Resizing(outer image.Point) Event { return Event{Kind: KindResizing, Size: outer} }

// Resized reports that the host committed its new size.
func Resized() Event { return Event{Kind: KindResized} }

// Paint asks the view to draw the client area.
func Paint() Event { return Event{Kind: KindPaint} }

// EraseBackground is the host's request to clear the client area before a paint.
func EraseBackground() Event { return Event{Kind: KindEraseBackground} }

// Paintable is implemented by components that draw into a host window.
type Paintable interface {
	Paint() error
	EraseBackground() bool
}

// Scrollable is implemented by components that react to scroll input.
type Scrollable interface {
	Scroll(axis Axis, cmd Command, value int) error
	Wheel(rotation int) error
}

// Resizable is implemented by components that track host size changes.
type Resizable interface {
	Resizing(outer image.Point) error
	Resized() error
}

var (
	_ Paintable  = (*View)(nil)
	_ Scrollable = (*View)(nil)
	_ Resizable  = (*View)(nil)
)

type handler func(v *View, ev Event) (handled bool, err error)

func command(axis Axis, cmd Command) handler {
	return func(v *View, ev Event) (bool, error) {
		return true, v.Scroll(axis, cmd, ev.Value)
	}
}

var handlers = [numKinds]handler{
	KindPageUp:      command(AxisV, CmdPageBack),
	KindPageDown:    command(AxisV, CmdPageForward),
	KindLineUp:      command(AxisV, CmdLineBack),
	KindLineDown:    command(AxisV, CmdLineForward),
	KindPageLeft:    command(AxisH, CmdPageBack),
	KindPageRight:   command(AxisH, CmdPageForward),
	KindLineLeft:    command(AxisH, CmdLineBack),
	KindLineRight:   command(AxisH, CmdLineForward),
	KindThumbTrackH: command(AxisH, CmdThumbTrack),
	KindThumbTrackV: command(AxisV, CmdThumbTrack),
	KindWheel: func(v *View, ev Event) (bool, error) {
		return true, v.Wheel(ev.Value)
	},
	KindResizing: func(v *View, ev Event) (bool, error) {
		return true, v.Resizing(ev.Size)
	},
	KindResized: func(v *View, _ Event) (bool, error) {
		return true, v.Resized()
	},
	KindPaint: func(v *View, _ Event) (bool, error) {
		return true, v.Paint()
	},
	KindEraseBackground: func(v *View, _ Event) (bool, error) {
		return v.EraseBackground(), nil
	},
}

// Dispatch routes ev to its handler. handled is false for unknown kinds and for
// erase requests that fell through to the host.
func (v *View) Dispatch(ev Event) (handled bool, err error) {
	if ev.Kind >= numKinds {
		return false, nil
	}
	return handlers[ev.Kind](v, ev)
}
