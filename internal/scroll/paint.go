package scroll

import (
	"fmt"
	"image"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/scrollview/internal/log"
	"github.com/zjrosen/scrollview/internal/tracing"
)

// Paint renders the view. With scrolling off it defers to the host's default paint.
// Otherwise the whole content is drawn off-screen and only the visible slice is copied.
func (v *View) Paint() error {
	if !v.state.Enabled() {
		return v.defaultPaint()
	}
	if !v.assert(v.state.Total.X > 0 && v.state.Total.Y > 0,
		"Paint", "total size %v must be positive on both axes", v.state.Total) {
		return v.defaultPaint()
	}

	_, span := v.startSpan(tracing.SpanPaint)
	defer span.End()

	buf, err := v.acquireBuffer()
	if err != nil {
		span.RecordError(err)
		return err
	}

	buf.Fill(image.Rectangle{Max: v.state.Total}, v.state.Background)
	if v.draw != nil {
		v.draw(buf)
	}

	dc, err := v.host.BeginPaint()
	if err != nil {
		span.RecordError(err)
		return hostErr("begin paint", err)
	}
	client := v.host.ClientRect().Size()
	dc.Blit(image.Point{}, buf, v.state.Position, client)
	v.fillOutside(dc)

	span.SetAttributes(attribute.Int(tracing.AttrClientWidth, client.X), attribute.Int(tracing.AttrClientHeight, client.Y))
	return nil
}

// EraseBackground reports whether the erase request was handled. While scrolling is on
// the erase is swallowed, since Paint covers every pixel.
func (v *View) EraseBackground() bool {
	if v.state.Enabled() {
		return true
	}
	return v.host.DefaultErase()
}

func (v *View) defaultPaint() error {
	if err := v.host.DefaultPaint(); err != nil {
		return hostErr("default paint", err)
	}
	return nil
}

// fillOutside paints the part of the window that lies beyond the content extent.
func (v *View) fillOutside(dc Surface) {
	win := v.host.ScreenToClient(v.host.WindowRect())
	total := v.state.Total

	// Rectangle literals, not image.Rect: content wider than the window must yield
	// an empty strip rather than a swapped one.
	right := image.Rectangle{Min: image.Pt(total.X, 0), Max: win.Max}
	bottom := image.Rectangle{Min: image.Pt(0, total.Y), Max: image.Pt(min(total.X, win.Max.X), win.Max.Y)}
	if !right.Empty() {
		dc.Fill(right, v.state.Background)
	}
	if !bottom.Empty() {
		dc.Fill(bottom, v.state.Background)
	}
}

// acquireBuffer returns an off-screen buffer the size of the content, replacing the
// cached one when the content size has changed.
func (v *View) acquireBuffer() (Surface, error) {
	if v.buffer != nil && v.bufferSize == v.state.Total {
		return v.buffer, nil
	}
	v.releaseBuffer()

	buf, err := v.host.NewBuffer(v.state.Total)
	if err != nil {
		return nil, hostErr(fmt.Sprintf("allocate %dx%d buffer", v.state.Total.X, v.state.Total.Y), err)
	}
	log.Debug(log.CatPaint, "allocated buffer", "view", v.id, "size", v.state.Total)
	v.buffer = buf
	v.bufferSize = v.state.Total
	return buf, nil
}

func (v *View) releaseBuffer() {
	if v.buffer == nil {
		return
	}
	v.host.ReleaseBuffer(v.buffer)
	v.buffer = nil
	v.bufferSize = image.Point{}
}
