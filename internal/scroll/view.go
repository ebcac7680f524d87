package scroll

import (
	"context"
	"image"
	"image/color"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/scrollview/internal/log"
	"github.com/zjrosen/scrollview/internal/pubsub"
	"github.com/zjrosen/scrollview/internal/tracing"
)

// PositionEvent is published whenever the committed scroll position changes.
type PositionEvent struct {
	ViewID   string
	Position image.Point
	Total    image.Point
}

// View is a scrolling viewport bound to one host window.
// It is not safe for concurrent use; drive it from the host's event loop.
type View struct {
	id     string
	host   Host
	draw   DrawFunc
	state  State
	strict bool

	buffer     Surface
	bufferSize image.Point

	syncing  bool
	resynced bool
	resizing bool // inside Resizing: the new outer size is not committed yet

	tracer trace.Tracer
	events pubsub.Publisher[PositionEvent]
}

// Option configures a View.
type Option func(*View)

// WithStrict makes failed assertions panic instead of logging and clamping.
func WithStrict(strict bool) Option {
	return func(v *View) { v.strict = strict }
}

// WithTracer records paint and sync spans.
func WithTracer(t trace.Tracer) Option {
	return func(v *View) {
		if t != nil {
			v.tracer = t
		}
	}
}

// WithPublisher publishes a PositionEvent on every position change.
func WithPublisher(p pubsub.Publisher[PositionEvent]) Option {
	return func(v *View) { v.events = p }
}

// WithBackground overrides DefaultBackground.
func WithBackground(c color.Color) Option {
	return func(v *View) {
		if c != nil {
			v.state.Background = c
		}
	}
}

// New creates a View with scrolling disabled. draw may be nil, in which case
// only the background is painted.
func New(host Host, draw DrawFunc, opts ...Option) *View {
	v := &View{
		id:     uuid.NewString(),
		host:   host,
		draw:   draw,
		state:  NewState(),
		tracer: noop.NewTracerProvider().Tracer("scroll"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ID identifies the view in logs, traces and events.
func (v *View) ID() string { return v.id }

// State returns a copy of the scroll bookkeeping.
func (v *View) State() State { return v.state }

// ScrollPosition returns the top-left offset of the visible window.
func (v *View) ScrollPosition() image.Point { return v.state.Position }

// TotalScrollSize returns the logical content extent.
func (v *View) TotalScrollSize() image.Point { return v.state.Total }

// PageSize returns the effective page step after defaulting.
func (v *View) PageSize() image.Point { return v.state.Page }

// LineSize returns the effective line step after defaulting.
func (v *View) LineSize() image.Point { return v.state.Line }

// IsHScrollVisible asks the host whether the horizontal bar is shown.
func (v *View) IsHScrollVisible() bool { return v.host.BarVisible(AxisH) }

// IsVScrollVisible asks the host whether the vertical bar is shown.
func (v *View) IsVScrollVisible() bool { return v.host.BarVisible(AxisV) }

// Background returns the fill used behind and around the content.
func (v *View) Background() color.Color { return v.state.Background }

// SetBackground changes the fill. It takes effect on the next paint.
func (v *View) SetBackground(c color.Color) {
	if c == nil {
		c = DefaultBackground
	}
	v.state.Background = c
}

// SetScrollSizes replaces the content, page and line sizes and scrolls back to the
// origin. A total of (0,0) turns scrolling off. Zero page or line axes are derived
// from total (page = total/10, line = page/10).
func (v *View) SetScrollSizes(total, page, line image.Point) error {
	if !v.assert(total.X >= 0 && total.Y >= 0, "SetScrollSizes", "negative total size %v", total) {
		total = image.Pt(max(0, total.X), max(0, total.Y))
	}

	if err := v.host.ShowBar(AxisBoth, false); err != nil {
		return hostErr("hide scrollbars", err)
	}
	v.host.Invalidate()

	v.state = v.state.WithSizes(total, page, line)
	log.Debug(log.CatScroll, "scroll sizes set", "view", v.id,
		"total", total, "page", v.state.Page, "line", v.state.Line)
	v.publish()
	return v.Sync()
}

// SetScrollPosition moves the view to p and re-synchronizes. p must lie within
// [0, total] on both axes; outside that it is clamped unless strict.
func (v *View) SetScrollPosition(p image.Point) error {
	if !v.assert(v.state.InRange(p), "SetScrollPosition", "position %v outside [0,%v]", p, v.state.Total) {
		p = image.Pt(clamp(p.X, 0, v.state.Total.X), clamp(p.Y, 0, v.state.Total.Y))
	}
	v.commit(p)
	return v.Sync()
}

// Close releases the off-screen buffer.
func (v *View) Close() {
	v.releaseBuffer()
}

// commit stores a new position and announces it.
func (v *View) commit(p image.Point) {
	if p == v.state.Position {
		return
	}
	v.state.Position = p
	v.publish()
}

func (v *View) publish() {
	if v.events == nil {
		return
	}
	v.events.Publish(pubsub.ScrolledEvent, PositionEvent{
		ViewID:   v.id,
		Position: v.state.Position,
		Total:    v.state.Total,
	})
}

func (v *View) startSpan(name string) (context.Context, trace.Span) {
	return v.tracer.Start(context.Background(), name,
		trace.WithAttributes(
			attribute.String(tracing.AttrViewID, v.id),
			attribute.Int(tracing.AttrScrollX, v.state.Position.X),
			attribute.Int(tracing.AttrScrollY, v.state.Position.Y),
			attribute.Int(tracing.AttrTotalWidth, v.state.Total.X),
			attribute.Int(tracing.AttrTotalHeight, v.state.Total.Y),
		))
}
