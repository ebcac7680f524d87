package window

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scrollview/internal/content"
	"github.com/zjrosen/scrollview/internal/pubsub"
	"github.com/zjrosen/scrollview/internal/scroll"
	"github.com/zjrosen/scrollview/internal/surface"
)

func gridConfig() Config {
	return Config{
		Source:     content.Source{Kind: content.KindGrid, GridSize: image.Pt(200, 100)},
		HScroll:    true,
		VScroll:    true,
		Background: color.White,
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a 40x12 viewer showing a 200x100 grid. The status line takes one
// row, so the client area is 39x10 with both bars.
func loaded(t *testing.T, cfg Config) Model {
	t.Helper()
	m := NewModel(cfg)
	t.Cleanup(m.shutdown)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	return update(t, m, m.load()())
}

func TestModel_LoadShowsBars(t *testing.T) {
	m := loaded(t, gridConfig())

	require.True(t, m.win.BarVisible(scroll.AxisH))
	require.True(t, m.win.BarVisible(scroll.AxisV))
	require.Equal(t, image.Pt(39, 10), m.win.ClientRect().Size())
	require.Equal(t, image.Pt(200, 100), m.view.TotalScrollSize())
	require.False(t, m.win.Dirty(), "painted after the update")
	require.Contains(t, m.win.Front().String(), "0,0")
	require.Contains(t, m.statusLine(), "0,0 / 200×100 [HV]", "status shows the new size without waiting for the listener")
}

func TestModel_KeysScroll(t *testing.T) {
	m := loaded(t, gridConfig())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	require.Equal(t, image.Pt(0, 10), m.view.ScrollPosition())

	m = update(t, m, keyPress("j"))
	require.Equal(t, image.Pt(0, 11), m.view.ScrollPosition())

	m = update(t, m, keyPress("L"))
	require.Equal(t, image.Pt(20, 11), m.view.ScrollPosition())

	m = update(t, m, keyPress("G"))
	require.Equal(t, image.Pt(20, 90), m.view.ScrollPosition(), "bottom clamps to total - client")

	m = update(t, m, keyPress("g"))
	require.Equal(t, image.Pt(20, 0), m.view.ScrollPosition())
	require.Contains(t, m.win.Front().String(), "20,0")
}

func TestModel_WheelScrollsOneLinePerNotch(t *testing.T) {
	m := loaded(t, gridConfig())

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	require.Equal(t, 2, m.view.ScrollPosition().Y)

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress, Shift: true})
	require.Equal(t, image.Pt(2, 2), m.view.ScrollPosition(), "shift turns the wheel sideways")

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	require.Equal(t, 1, m.view.ScrollPosition().Y)
}

func TestModel_PressBarParts(t *testing.T) {
	m := loaded(t, gridConfig())
	// Vertical bar: 10 cells, arrows at 0 and 9, 1-cell thumb at track 0.

	m.pressBar(scroll.AxisV, 9)
	require.Equal(t, 1, m.view.ScrollPosition().Y, "forward arrow steps a line")

	m.pressBar(scroll.AxisV, 8)
	require.Equal(t, 11, m.view.ScrollPosition().Y, "track below the thumb steps a page")

	m.pressBar(scroll.AxisV, 0)
	require.Equal(t, 10, m.view.ScrollPosition().Y, "back arrow steps a line")

	m.pressBar(scroll.AxisH, 38)
	require.Equal(t, 2, m.view.ScrollPosition().X)
}

func TestModel_ThumbDrag(t *testing.T) {
	m := loaded(t, gridConfig())

	m.pressBar(scroll.AxisV, 1)
	require.NotNil(t, m.drag, "pressing the thumb starts a drag")

	m.dragTo(8)
	require.Equal(t, 90, m.view.ScrollPosition().Y)
	require.Equal(t, 90, m.win.BarInfo(scroll.AxisV).Pos)

	m.dragTo(1)
	require.Equal(t, 0, m.view.ScrollPosition().Y)

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.Nil(t, m.drag)
}

func TestModel_ShrinkingHidesBars(t *testing.T) {
	cfg := gridConfig()
	cfg.Source.GridSize = image.Pt(30, 8)
	m := loaded(t, cfg)
	require.False(t, m.win.BarVisible(scroll.AxisH))
	require.False(t, m.win.BarVisible(scroll.AxisV))

	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 12})
	require.True(t, m.win.BarVisible(scroll.AxisH))
	require.False(t, m.win.BarVisible(scroll.AxisV))
}

func TestModel_ToggleStatusGivesRowBack(t *testing.T) {
	m := loaded(t, gridConfig())
	require.Equal(t, 11, m.win.Size().Y)

	m = update(t, m, keyPress("w"))
	require.Equal(t, 12, m.win.Size().Y)
	require.Equal(t, 12, strings.Count(m.View(), "\n")+1)
}

func TestModel_StatusLine(t *testing.T) {
	m := loaded(t, gridConfig())
	m = update(t, m, pubsub.Event[scroll.PositionEvent]{
		Type:    pubsub.ScrolledEvent,
		Payload: scroll.PositionEvent{Position: image.Pt(0, 10), Total: image.Pt(200, 100)},
	})

	require.Contains(t, m.statusLine(), "0,10 / 200×100 [HV]")
}

func TestModel_ConfigChangeAddsBorder(t *testing.T) {
	m := loaded(t, gridConfig())
	cfg := gridConfig()
	cfg.Border = true

	m = update(t, m, ConfigChangedMsg{Config: cfg})
	require.Equal(t, image.Pt(37, 8), m.win.ClientRect().Size())
	require.True(t, strings.HasPrefix(m.View(), "╭"))
}

func TestModel_ConfigChangeDisallowsBar(t *testing.T) {
	m := loaded(t, gridConfig())
	cfg := gridConfig()
	cfg.HScroll = false

	m = update(t, m, ConfigChangedMsg{Config: cfg})
	require.False(t, m.win.BarVisible(scroll.AxisH))
	require.True(t, m.win.BarVisible(scroll.AxisV))
	require.Equal(t, image.Pt(39, 11), m.win.ClientRect().Size())

	m = update(t, m, keyPress("L"))
	require.Equal(t, 20, m.view.ScrollPosition().X, "keys still scroll an axis without a bar")
}

func TestModel_ConfigChangeResetsSteps(t *testing.T) {
	m := loaded(t, gridConfig())
	cfg := gridConfig()
	cfg.Line = image.Pt(0, 5)

	m = update(t, m, ConfigChangedMsg{Config: cfg})
	m = update(t, m, keyPress("j"))
	require.Equal(t, 5, m.view.ScrollPosition().Y)
}

func TestModel_LoadErrorIsReported(t *testing.T) {
	m := loaded(t, gridConfig())
	m = update(t, m, contentLoadedMsg{err: assertErr("boom")})

	require.Contains(t, m.statusLine(), "boom")
	require.Equal(t, image.Pt(200, 100), m.view.TotalScrollSize(), "previous content stays")
}

func TestModel_OversizedContentReportsCellLimit(t *testing.T) {
	cfg := gridConfig()
	cfg.Source.GridSize = image.Pt(3000, 2000)
	m := loaded(t, cfg)

	require.ErrorIs(t, m.lastErr, surface.ErrTooLarge)
	require.ErrorContains(t, m.lastErr, "6000000 cells, over the 4194304-cell limit")
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func TestModel_Program(t *testing.T) {
	tm := teatest.NewTestModel(t, NewModel(gridConfig()), teatest.WithInitialTermSize(40, 12))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("0,0 / 200×100 [HV]"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyPress("j"))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("0,1 / 200×100 [HV]"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyPress("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}

func TestSnapshot(t *testing.T) {
	cfg := gridConfig()
	cfg.Source.GridSize = image.Pt(100, 50)

	out, err := Snapshot(context.Background(), cfg, image.Pt(30, 8), image.Pt(10, 5))
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	require.True(t, strings.HasPrefix(lines[0], "+---------+"), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "|10,5     |20,5"), lines[1])
	require.True(t, strings.HasSuffix(lines[0], "▲"))
	require.True(t, strings.HasPrefix(lines[7], "◀"))
}

func TestSnapshot_ClampsPastTheEnd(t *testing.T) {
	cfg := gridConfig()
	cfg.Source.GridSize = image.Pt(20, 10)
	cfg.HScroll, cfg.VScroll = false, false

	out, err := Snapshot(context.Background(), cfg, image.Pt(20, 5), image.Pt(0, 10))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "+---------+---------"), "10 rows minus a 5-row client leaves offset 5")
}

func TestSnapshot_RejectsPositionOutsideContent(t *testing.T) {
	cfg := gridConfig()
	cfg.Source.GridSize = image.Pt(100, 50)
	cfg.Strict = true

	for _, at := range []image.Point{image.Pt(5000, 0), image.Pt(0, 51), image.Pt(-1, 0)} {
		require.NotPanics(t, func() {
			_, err := Snapshot(context.Background(), cfg, image.Pt(30, 8), at)
			require.ErrorIs(t, err, ErrOutOfRange, "at %v", at)
		})
	}

	_, err := Snapshot(context.Background(), cfg, image.Pt(30, 8), image.Pt(100, 50))
	require.NoError(t, err, "the far corner is a valid position")
}

func TestSnapshot_RejectsEmptySize(t *testing.T) {
	_, err := Snapshot(context.Background(), gridConfig(), image.Point{}, image.Point{})
	require.Error(t, err)
}
