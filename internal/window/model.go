package window

import (
	"context"
	"image"
	"image/color"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/scrollview/internal/content"
	"github.com/zjrosen/scrollview/internal/keys"
	"github.com/zjrosen/scrollview/internal/log"
	"github.com/zjrosen/scrollview/internal/pubsub"
	"github.com/zjrosen/scrollview/internal/scroll"
	"github.com/zjrosen/scrollview/internal/surface"
	"github.com/zjrosen/scrollview/internal/watcher"
)

// Config is everything the viewer takes from the command line and config file.
type Config struct {
	Source     content.Source
	Page       image.Point
	Line       image.Point
	Border     bool
	HScroll    bool
	VScroll    bool
	Background color.Color
	Strict     bool
	Watch      bool // reload the content file when it changes on disk
	Tracer     trace.Tracer
}

// ConfigChangedMsg delivers a reloaded configuration.
type ConfigChangedMsg struct {
	Config Config
}

type contentLoadedMsg struct {
	content content.Content
	err     error
}

type contentChangedMsg struct{}

// document is shared by every copy of Model so the draw callback sees reloads.
type document struct {
	content content.Content
}

type drag struct {
	axis scroll.Axis
	grab int // cell offset of the pointer within the thumb
}

// Model is the root Bubble Tea model of the viewer.
type Model struct {
	cfg    Config
	win    *Window
	view   *scroll.View
	doc    *document
	loader *content.Loader
	keys   keys.KeyMap
	help   help.Model

	width, height int
	showStatus    bool
	showHelp      bool
	drag          *drag
	lastPos       scroll.PositionEvent
	lastLog       string
	lastErr       error

	ctx         context.Context
	cancel      context.CancelFunc
	positions   *pubsub.Broker[scroll.PositionEvent]
	posListener *pubsub.ContinuousListener[scroll.PositionEvent]
	logListener *log.LogListener
	watch       *watcher.Watcher
	changes     <-chan struct{}
}

// NewModel builds the viewer. Content is loaded by Init.
func NewModel(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())
	win := New(Options{
		Border:  cfg.Border,
		HScroll: cfg.HScroll,
		VScroll: cfg.VScroll,
		Pool:    surface.NewPool(0),
	})
	doc := &document{}
	positions := pubsub.NewBroker[scroll.PositionEvent]()

	view := scroll.New(win, func(buf scroll.Surface) {
		if doc.content != nil {
			doc.content.Draw(buf)
		}
	},
		scroll.WithStrict(cfg.Strict),
		scroll.WithTracer(cfg.Tracer),
		scroll.WithPublisher(positions),
		scroll.WithBackground(cfg.Background),
	)
	win.OnFrameChanged(func() {
		if err := view.Resized(); err != nil {
			log.ErrorErr(log.CatResize, "resize after bar change failed", err)
		}
	})

	m := Model{
		cfg:         cfg,
		win:         win,
		view:        view,
		doc:         doc,
		loader:      content.NewLoader(),
		keys:        keys.DefaultKeyMap(),
		help:        help.New(),
		showStatus:  true,
		ctx:         ctx,
		cancel:      cancel,
		positions:   positions,
		posListener: pubsub.NewContinuousListener(ctx, positions),
		logListener: log.NewListener(ctx),
	}
	if cfg.Watch && cfg.Source.Path != "" {
		m.watch, m.changes = startWatcher(cfg.Source.Path)
	}
	return m
}

func startWatcher(path string) (*watcher.Watcher, <-chan struct{}) {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.ErrorErr(log.CatConfig, "content watcher unavailable", err)
		return nil, nil
	}
	ch, err := w.Start()
	if err != nil {
		_ = w.Stop()
		log.ErrorErr(log.CatConfig, "content watcher unavailable", err, "path", path)
		return nil, nil
	}
	return w, ch
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	out := m.win.Render()
	if footer := m.footer(); footer != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, footer)
	}
	return zone.Scan(out)
}

// ScrollView exposes the engine, mainly for tests and the render command.
func (m Model) ScrollView() *scroll.View { return m.view }

// Init loads the content and starts the listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.load(), m.posListener.Listen()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.shutdown()
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case contentLoadedMsg:
		m.applyContent(msg)

	case contentChangedMsg:
		log.Info(log.CatConfig, "content changed on disk", "path", m.cfg.Source.Path)
		cmd = tea.Batch(m.load(), waitForChange(m.changes))

	case ConfigChangedMsg:
		cmd = m.applyConfig(msg.Config)

	case pubsub.Event[scroll.PositionEvent]:
		m.lastPos = msg.Payload
		cmd = m.posListener.Listen()

	case log.LogEvent:
		m.lastLog = msg.Payload
		if m.logListener != nil {
			cmd = m.logListener.Listen()
		}
	}

	m.paint()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	var ev scroll.Event
	switch {
	case key.Matches(msg, m.keys.Up):
		ev = scroll.LineUp()
	case key.Matches(msg, m.keys.Down):
		ev = scroll.LineDown()
	case key.Matches(msg, m.keys.Left):
		ev = scroll.LineLeft()
	case key.Matches(msg, m.keys.Right):
		ev = scroll.LineRight()
	case key.Matches(msg, m.keys.PageUp):
		ev = scroll.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		ev = scroll.PageDown()
	case key.Matches(msg, m.keys.PageLeft):
		ev = scroll.PageLeft()
	case key.Matches(msg, m.keys.PageRight):
		ev = scroll.PageRight()
	case key.Matches(msg, m.keys.Top):
		ev = scroll.ThumbTrack(scroll.AxisV, 0)
	case key.Matches(msg, m.keys.Bottom):
		ev = scroll.ThumbTrack(scroll.AxisV, m.view.TotalScrollSize().Y)
	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus
		m.relayout()
		return nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.relayout()
		return nil
	case key.Matches(msg, m.keys.Reload):
		return m.load()
	default:
		return nil
	}
	m.dispatch(ev)
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Action == tea.MouseActionRelease:
		m.drag = nil
	case msg.Button == tea.MouseButtonWheelUp && msg.Shift, msg.Button == tea.MouseButtonWheelLeft:
		m.dispatch(scroll.LineLeft())
	case msg.Button == tea.MouseButtonWheelDown && msg.Shift, msg.Button == tea.MouseButtonWheelRight:
		m.dispatch(scroll.LineRight())
	case msg.Button == tea.MouseButtonWheelUp:
		m.dispatch(scroll.Wheel(scroll.NotchUnit))
	case msg.Button == tea.MouseButtonWheelDown:
		m.dispatch(scroll.Wheel(-scroll.NotchUnit))
	case msg.Action == tea.MouseActionMotion && m.drag != nil:
		if i, ok := barIndex(m.drag.axis, msg, false); ok {
			m.dragTo(i)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		for _, axis := range []scroll.Axis{scroll.AxisV, scroll.AxisH} {
			if i, ok := barIndex(axis, msg, true); ok && m.win.BarVisible(axis) {
				m.pressBar(axis, i)
				return
			}
		}
	}
}

// barIndex returns the cell index along the axis bar under the pointer. Drags
// keep tracking outside the zone, so inBounds is only required for presses.
func barIndex(axis scroll.Axis, msg tea.MouseMsg, inBounds bool) (int, bool) {
	id := zoneHBar
	if axis == scroll.AxisV {
		id = zoneVBar
	}
	z := zone.Get(id)
	if z == nil || z.IsZero() || (inBounds && !z.InBounds(msg)) {
		return 0, false
	}
	if axis == scroll.AxisV {
		return msg.Y - z.StartY, true
	}
	return msg.X - z.StartX, true
}

func (m *Model) barLength(axis scroll.Axis) int {
	client := m.win.ClientRect().Size()
	if axis == scroll.AxisV {
		return client.Y
	}
	return client.X
}

// pressBar handles a click on cell i of the axis bar, like a native scrollbar:
// arrows step a line, the track steps a page, the thumb starts a drag.
func (m *Model) pressBar(axis scroll.Axis, i int) {
	l := measureBar(m.win.BarInfo(axis), m.barLength(axis))
	back, forward := scroll.CmdLineBack, scroll.CmdLineForward
	switch l.hit(i) {
	case partBackArrow:
		m.scroll(axis, back, 0)
	case partForwardArrow:
		m.scroll(axis, forward, 0)
	case partBackTrack:
		m.scroll(axis, scroll.CmdPageBack, 0)
	case partForwardTrack:
		m.scroll(axis, scroll.CmdPageForward, 0)
	case partThumb:
		m.drag = &drag{axis: axis, grab: l.trackIndex(i) - l.thumbStart}
	}
}

// dragTo moves the dragged thumb so that its grabbed cell sits under cell i.
func (m *Model) dragTo(i int) {
	if m.drag == nil {
		return
	}
	info := m.win.BarInfo(m.drag.axis)
	l := measureBar(info, m.barLength(m.drag.axis))
	m.dispatch(scroll.ThumbTrack(m.drag.axis, l.dragValue(info, l.trackIndex(i)-m.drag.grab)))
}

func (m *Model) scroll(axis scroll.Axis, cmd scroll.Command, value int) {
	if err := m.view.Scroll(axis, cmd, value); err != nil {
		m.fail("scroll", err)
	}
}

func (m *Model) dispatch(ev scroll.Event) {
	if _, err := m.view.Dispatch(ev); err != nil {
		m.fail(ev.Kind.String(), err)
	}
}

func (m *Model) fail(op string, err error) {
	m.lastErr = err
	log.ErrorErr(log.CatUI, op+" failed", err)
}

// relayout gives the window everything above the footer.
func (m *Model) relayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	outer := image.Pt(m.width, m.height)
	if f := m.footer(); f != "" {
		outer.Y = max(0, outer.Y-lipgloss.Height(f))
	}
	if err := m.win.Resize(m.view, outer); err != nil {
		m.fail("resize", err)
	}
}

// paint repaints the client area if anything invalidated it.
func (m *Model) paint() {
	if !m.win.Dirty() {
		return
	}
	if err := m.view.Paint(); err != nil {
		m.fail("paint", err)
	}
}

func (m Model) load() tea.Cmd {
	loader, src, ctx := m.loader, m.cfg.Source, m.ctx
	return func() tea.Msg {
		c, err := loader.Load(ctx, src)
		return contentLoadedMsg{content: c, err: err}
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return contentChangedMsg{}
	}
}

func (m *Model) applyContent(msg contentLoadedMsg) {
	if msg.err != nil {
		m.fail("load content", msg.err)
		return
	}
	m.doc.content = msg.content
	m.lastErr = nil
	if err := m.view.SetScrollSizes(msg.content.Size(), m.cfg.Page, m.cfg.Line); err != nil {
		m.fail("set scroll sizes", err)
	}
	// The listener delivers this event later; show the new size on this frame.
	if ev, ok := m.positions.Last(); ok {
		m.lastPos = ev.Payload
	}
}

func (m *Model) applyConfig(cfg Config) tea.Cmd {
	old := m.cfg
	m.cfg = cfg
	log.Info(log.CatConfig, "config reloaded", "source", cfg.Source.Path, "kind", cfg.Source.Kind)

	m.view.SetBackground(cfg.Background)
	m.win.Invalidate()
	if cfg.Border != old.Border {
		m.win.border = cfg.Border
		m.relayout()
	}
	if cfg.HScroll != old.HScroll || cfg.VScroll != old.VScroll {
		if err := m.win.AllowBars(cfg.HScroll, cfg.VScroll); err != nil {
			m.fail("allow scrollbars", err)
		}
		if err := m.view.Sync(); err != nil {
			m.fail("sync", err)
		}
	}
	if cfg.Source != old.Source {
		if m.watch != nil && cfg.Source.Path != old.Source.Path {
			_ = m.watch.Stop()
			m.watch, m.changes = nil, nil
		}
		var cmd tea.Cmd
		if cfg.Watch && cfg.Source.Path != "" && m.watch == nil {
			m.watch, m.changes = startWatcher(cfg.Source.Path)
			cmd = waitForChange(m.changes)
		}
		return tea.Batch(m.load(), cmd)
	}
	if cfg.Page != old.Page || cfg.Line != old.Line {
		if err := m.view.SetScrollSizes(m.view.TotalScrollSize(), cfg.Page, cfg.Line); err != nil {
			m.fail("set scroll sizes", err)
		}
	}
	return nil
}

func (m *Model) shutdown() {
	if m.watch != nil {
		_ = m.watch.Stop()
	}
	m.view.Close()
	m.win.pool.Drain()
	m.positions.Close()
	m.cancel()
}
