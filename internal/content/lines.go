package content

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/scrollview/internal/scroll"
	"github.com/zjrosen/scrollview/internal/surface"
)

const tabWidth = 4

// Lines is a block of plain text, one entry per row. Its width is the widest row.
type Lines struct {
	lines []string
	width int
	FG    color.Color
}

// NewLines strips escape sequences and expands tabs. A non-empty block is at
// least one cell wide.
func NewLines(lines []string) *Lines {
	l := &Lines{lines: make([]string, len(lines))}
	for i, line := range lines {
		line = strings.ReplaceAll(ansi.Strip(line), "\t", strings.Repeat(" ", tabWidth))
		l.lines[i] = line
		l.width = max(l.width, ansi.StringWidth(line))
	}
	if len(l.lines) > 0 {
		l.width = max(l.width, 1)
	}
	return l
}

// Text wraps src at width columns. width <= 0 keeps the source line breaks only.
func Text(src string, width int) *Lines {
	if width > 0 {
		src = wordwrap.String(src, width)
	}
	src = strings.TrimRight(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	if src == "" {
		return NewLines(nil)
	}
	return NewLines(strings.Split(src, "\n"))
}

// Size implements Content.
func (l *Lines) Size() image.Point { return image.Pt(l.width, len(l.lines)) }

// Line returns row y.
func (l *Lines) Line(y int) string { return l.lines[y] }

// Draw implements Content.
func (l *Lines) Draw(buf scroll.Surface) {
	g, ok := buf.(*surface.Grid)
	if !ok {
		return
	}
	for y, line := range l.lines {
		g.DrawText(0, y, line, l.FG, nil)
	}
}
