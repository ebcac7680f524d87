package scroll

import (
	"image"

	"github.com/zjrosen/scrollview/internal/log"
	"github.com/zjrosen/scrollview/internal/tracing"
)

// maxSyncPasses bounds reconciliation when applying a plan changes the client area.
// Each pass measures the page against the bars the previous one showed.
const maxSyncPasses = 3

// Layout is a snapshot of the host geometry taken at the start of a sync pass.
type Layout struct {
	Client     image.Point // current client size, bars excluded
	Outer      image.Point // outer window size, unaffected by bars
	Decoration image.Point
	Thickness  image.Point // X: vertical bar width, Y: horizontal bar height
}

// BarPlan is the target state of one scrollbar.
type BarPlan struct {
	Visible bool
	Info    BarInfo
}

// Plan is the result of reconciling a State against a Layout.
type Plan struct {
	Bars     [2]BarPlan // indexed by AxisH, AxisV
	Position image.Point
	Delta    image.Point // Position minus the incoming position
}

// Reconcile decides bar visibility, bar ranges and the clamped offset.
// It is pure, so running it twice on the same inputs yields the same plan.
func Reconcile(s State, l Layout) Plan {
	if !s.Enabled() {
		return Plan{Delta: image.Point{}.Sub(s.Position)}
	}

	total := s.Total.Add(l.Decoration)
	client := l.Client.Add(l.Decoration)

	// The undecorated outer window already holds everything: no bars on either axis.
	fitsOuter := l.Outer.X >= total.X && l.Outer.Y >= total.Y

	pos := s.Position
	var plan Plan
	for _, axis := range []Axis{AxisH, AxisV} {
		if fitsOuter || axis.of(client) >= axis.of(total) {
			pos = axis.set(pos, 0)
			continue
		}
		plan.Bars[axis] = BarPlan{
			Visible: true,
			Info: BarInfo{
				Max:  axis.of(s.Total),
				Page: axis.of(l.Client),
				Pos:  axis.of(pos),
			},
		}
	}

	plan.Position = pos
	return plan.Clamped(s, l, plan.Visible())
}

// Visible reports which bars the plan shows, indexed by AxisH, AxisV.
func (p Plan) Visible() [2]bool {
	return [2]bool{p.Bars[AxisH].Visible, p.Bars[AxisV].Visible}
}

// Clamped bounds the plan's position by total - outer plus the thickness of each
// bar in visible, and moves the thumbs to match. visible is what the host actually
// shows, which differs from the plan when the host refuses a bar.
func (p Plan) Clamped(s State, l Layout, visible [2]bool) Plan {
	if !s.Enabled() {
		return p
	}
	// A visible vertical bar narrows the client, and vice versa.
	var cross image.Point
	if visible[AxisV] {
		cross.X = l.Thickness.X
	}
	if visible[AxisH] {
		cross.Y = l.Thickness.Y
	}
	limit := s.Total.Add(l.Decoration).Sub(l.Outer).Add(cross)
	pos := p.Position
	pos.X = clamp(pos.X, 0, max(0, limit.X))
	pos.Y = clamp(pos.Y, 0, max(0, limit.Y))

	for _, axis := range []Axis{AxisH, AxisV} {
		if p.Bars[axis].Visible {
			p.Bars[axis].Info.Pos = axis.of(pos)
		}
	}
	p.Position = pos
	p.Delta = pos.Sub(s.Position)
	return p
}

// layout snapshots the host geometry.
func (v *View) layout() Layout {
	return Layout{
		Client:     v.host.ClientRect().Size(),
		Outer:      v.host.WindowRect().Size(),
		Decoration: v.host.Decoration(),
		Thickness:  v.host.BarThickness(),
	}
}

// Sync reconciles the bars and the offset with the current geometry.
// Calls made while a sync is already applying (from host show/hide side effects)
// return immediately; the running sync re-checks the geometry afterwards.
// Calls made from inside Resizing are dropped: Resized syncs once the size commits.
func (v *View) Sync() error {
	if v.resizing {
		log.Debug(log.CatScroll, "sync deferred until resize commits", "view", v.id)
		return nil
	}
	if v.syncing {
		v.resynced = true
		log.Debug(log.CatScroll, "nested sync coalesced", "view", v.id)
		return nil
	}
	v.syncing = true
	defer func() { v.syncing = false }()

	_, span := v.startSpan(tracing.SpanSync)
	defer span.End()

	for pass := 0; pass < maxSyncPasses; pass++ {
		v.resynced = false
		before := v.layout()
		if err := v.apply(Reconcile(v.state, before), before); err != nil {
			span.RecordError(err)
			return err
		}
		if !v.resynced && v.layout().Client == before.Client {
			return nil
		}
	}
	return nil
}

// apply pushes a plan to the host and commits the new position. The offset is
// clamped again against the bars the host actually shows.
func (v *View) apply(p Plan, l Layout) error {
	if !v.state.Enabled() {
		if err := v.host.ShowBar(AxisBoth, false); err != nil {
			return hostErr("hide scrollbars", err)
		}
		v.commit(image.Point{})
		return nil
	}

	for _, axis := range []Axis{AxisH, AxisV} {
		show := p.Bars[axis].Visible
		if err := v.host.ShowBar(axis, show); err != nil {
			verb := "hide "
			if show {
				verb = "show "
			}
			return hostErr(verb+axis.String()+" scrollbar", err)
		}
	}

	shown := [2]bool{v.host.BarVisible(AxisH), v.host.BarVisible(AxisV)}
	if shown != p.Visible() {
		log.Debug(log.CatScroll, "host refused a scrollbar", "view", v.id, "planned", p.Visible(), "shown", shown)
		p = p.Clamped(v.state, l, shown)
	}
	for _, axis := range []Axis{AxisH, AxisV} {
		if !p.Bars[axis].Visible {
			continue
		}
		if err := v.host.SetBarInfo(axis, p.Bars[axis].Info); err != nil {
			return hostErr("set "+axis.String()+" scrollbar info", err)
		}
	}

	if p.Delta != (image.Point{}) {
		if err := v.host.ScrollContent(-p.Delta.X, -p.Delta.Y); err != nil {
			return hostErr("scroll content", err)
		}
	}
	v.commit(p.Position)
	return nil
}
