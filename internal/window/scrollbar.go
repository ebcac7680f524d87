package window

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/scrollview/internal/scroll"
)

// Scrollbar characters
const (
	thumbChar = "█" // Full block
	trackChar = "░" // Light shade
)

var (
	trackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	thumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))
	arrowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// arrows holds the back and forward arrow per axis.
var arrows = [2][2]string{
	scroll.AxisH: {"◀", "▶"},
	scroll.AxisV: {"▲", "▼"},
}

// part is a region of a scrollbar.
type part int

const (
	partNone part = iota
	partBackArrow
	partBackTrack
	partThumb
	partForwardTrack
	partForwardArrow
)

// barLayout is the cell geometry of a bar of a given length.
type barLayout struct {
	length     int
	arrows     bool
	track      int // cells between the arrows
	thumbStart int // offset within the track
	thumbLen   int
	maxOffset  int // largest thumb position, relative to Min
}

// measureBar lays out info along length cells. Arrows need at least three cells.
// Thumb length: max(1, track*page/range); position: scrollable*offset/maxOffset.
func measureBar(info scroll.BarInfo, length int) barLayout {
	l := barLayout{length: max(0, length)}
	l.arrows = l.length >= 3
	l.track = l.length
	if l.arrows {
		l.track -= 2
	}

	total := info.Max - info.Min
	if total <= 0 || l.track <= 0 {
		l.thumbLen = l.track
		return l
	}
	page := max(0, info.Page)
	l.maxOffset = max(0, total-page)
	if page >= total {
		l.thumbLen = l.track
		return l
	}

	l.thumbLen = min(l.track, max(1, l.track*page/total))
	scrollable := l.track - l.thumbLen
	if scrollable <= 0 || l.maxOffset == 0 {
		return l
	}
	offset := max(0, min(info.Pos-info.Min, l.maxOffset))
	l.thumbStart = max(0, min(scrollable*offset/l.maxOffset, scrollable))
	return l
}

// trackIndex converts a cell index along the bar to an index within the track.
func (l barLayout) trackIndex(i int) int {
	if l.arrows {
		return i - 1
	}
	return i
}

// hit classifies cell i.
func (l barLayout) hit(i int) part {
	if i < 0 || i >= l.length {
		return partNone
	}
	if l.arrows && i == 0 {
		return partBackArrow
	}
	if l.arrows && i == l.length-1 {
		return partForwardArrow
	}
	t := l.trackIndex(i)
	switch {
	case t < l.thumbStart:
		return partBackTrack
	case t < l.thumbStart+l.thumbLen:
		return partThumb
	default:
		return partForwardTrack
	}
}

// dragValue maps a thumb whose top is at track cell top back to a bar position.
func (l barLayout) dragValue(info scroll.BarInfo, top int) int {
	scrollable := l.track - l.thumbLen
	if scrollable <= 0 {
		return info.Min
	}
	top = max(0, min(top, scrollable))
	// Round to the nearest position so the end cells reach both limits.
	return info.Min + (top*l.maxOffset+scrollable/2)/scrollable
}

// renderBar draws a bar. Vertical bars come out one cell per line.
func renderBar(axis scroll.Axis, info scroll.BarInfo, length int) string {
	l := measureBar(info, length)
	if l.length == 0 {
		return ""
	}
	cells := make([]string, l.length)
	for i := range cells {
		switch l.hit(i) {
		case partBackArrow:
			cells[i] = arrowStyle.Render(arrows[axis][0])
		case partForwardArrow:
			cells[i] = arrowStyle.Render(arrows[axis][1])
		case partThumb:
			cells[i] = thumbStyle.Render(thumbChar)
		default:
			cells[i] = trackStyle.Render(trackChar)
		}
	}
	sep := ""
	if axis == scroll.AxisV {
		sep = "\n"
	}
	return strings.Join(cells, sep)
}
