package scroll

import (
	"image"

	"github.com/zjrosen/scrollview/internal/log"
)

// NotchUnit is the wheel rotation reported for one detent.
const NotchUnit = 120

// Command is a scrollbar action on one axis.
type Command int

const (
	CmdPageBack    Command = iota // page up / page left
	CmdPageForward                // page down / page right
	CmdLineBack                   // line up / line left
	CmdLineForward                // line down / line right
	CmdThumbTrack                 // thumb dragged to an absolute value
)

func (c Command) String() string {
	switch c {
	case CmdPageBack:
		return "page-back"
	case CmdPageForward:
		return "page-forward"
	case CmdLineBack:
		return "line-back"
	case CmdLineForward:
		return "line-forward"
	case CmdThumbTrack:
		return "thumb-track"
	default:
		return "unknown"
	}
}

// Scroll applies a scrollbar command on axis. value is only read for CmdThumbTrack.
func (v *View) Scroll(axis Axis, cmd Command, value int) error {
	if axis != AxisH && axis != AxisV {
		return nil
	}
	cur := axis.of(v.state.Position)
	next := cur
	switch cmd {
	case CmdPageBack:
		next = cur - axis.of(v.state.Page)
	case CmdPageForward:
		next = cur + axis.of(v.state.Page)
	case CmdLineBack:
		next = cur - axis.of(v.state.Line)
	case CmdLineForward:
		next = cur + axis.of(v.state.Line)
	case CmdThumbTrack:
		next = value
	}
	log.Debug(log.CatInput, "scroll command", "view", v.id, "axis", axis, "cmd", cmd, "from", cur, "to", next)
	return v.moveTo(axis, next)
}

// Wheel scrolls vertically by rotation/NotchUnit lines. Positive rotation moves the
// content towards the top.
func (v *View) Wheel(rotation int) error {
	lines := mulDiv(rotation, v.state.Line.Y, NotchUnit)
	log.Debug(log.CatInput, "wheel", "view", v.id, "rotation", rotation, "pixels", lines)
	return v.moveTo(AxisV, v.state.Position.Y-lines)
}

// moveTo clamps next against the current client extent, shifts the visible pixels
// and refreshes the thumbs. Bar visibility is left as it is.
func (v *View) moveTo(axis Axis, next int) error {
	if !v.state.Enabled() {
		return nil
	}
	client := v.host.ClientRect().Size()
	limit := axis.of(v.state.Total) - axis.of(client)
	next = max(0, min(next, limit))

	delta := next - axis.of(v.state.Position)
	if delta == 0 {
		return nil
	}
	shift := axis.set(image.Point{}, -delta)
	if err := v.host.ScrollContent(shift.X, shift.Y); err != nil {
		return hostErr("scroll content", err)
	}
	v.commit(axis.set(v.state.Position, next))
	return v.refreshThumbs()
}

// refreshThumbs moves the thumb of every visible bar to the current offset.
func (v *View) refreshThumbs() error {
	for _, axis := range []Axis{AxisH, AxisV} {
		if !v.host.BarVisible(axis) {
			continue
		}
		info := v.host.BarInfo(axis)
		info.Pos = axis.of(v.state.Position)
		if err := v.host.SetBarInfo(axis, info); err != nil {
			return hostErr("set "+axis.String()+" scrollbar info", err)
		}
	}
	return nil
}

// mulDiv computes a*b/c rounded half away from zero.
func mulDiv(a, b, c int) int {
	if c == 0 {
		return 0
	}
	n := int64(a) * int64(b)
	d := int64(c)
	neg := (n < 0) != (d < 0)
	if n < 0 {
		n = -n
	}
	if d < 0 {
		d = -d
	}
	q := (n + d/2) / d
	if neg {
		q = -q
	}
	return int(q)
}
