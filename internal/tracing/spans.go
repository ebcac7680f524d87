package tracing

// Span names.
const (
	SpanSync  = "scroll.sync"
	SpanPaint = "scroll.paint"
)

// Span attribute keys.
const (
	AttrViewID       = "view.id"
	AttrScrollX      = "scroll.x"
	AttrScrollY      = "scroll.y"
	AttrTotalWidth   = "total.width"
	AttrTotalHeight  = "total.height"
	AttrClientWidth  = "client.width"
	AttrClientHeight = "client.height"
)
