package window

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/scrollview/internal/scroll"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// footer is the status line or the help, whichever is showing.
func (m Model) footer() string {
	switch {
	case m.showHelp:
		m.help.ShowAll = true
		return m.help.View(m.keys)
	case m.showStatus:
		return m.statusLine()
	default:
		return ""
	}
}

// statusLine reads "x,y / w×h [HV]" followed by the last error or log entry.
func (m Model) statusLine() string {
	pos, total := m.lastPos.Position, m.lastPos.Total
	bars := []byte("--")
	if m.win.BarVisible(scroll.AxisH) {
		bars[0] = 'H'
	}
	if m.win.BarVisible(scroll.AxisV) {
		bars[1] = 'V'
	}
	line := statusStyle.Render(fmt.Sprintf(" %d,%d / %d×%d [%s]", pos.X, pos.Y, total.X, total.Y, bars))

	switch {
	case m.lastErr != nil:
		line += " " + errorStyle.Render(m.lastErr.Error())
	case m.lastLog != "":
		line += " " + statusStyle.Render(strings.TrimSpace(m.lastLog))
	}
	return ansi.Truncate(line, max(0, m.width), "…")
}
