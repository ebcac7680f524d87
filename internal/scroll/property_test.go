package scroll_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/scrollview/internal/scroll"
	"github.com/zjrosen/scrollview/internal/scroll/scrolltest"
)

var commandKinds = []scroll.Kind{
	scroll.KindPageUp, scroll.KindPageDown, scroll.KindLineUp, scroll.KindLineDown,
	scroll.KindPageLeft, scroll.KindPageRight, scroll.KindLineLeft, scroll.KindLineRight,
	scroll.KindThumbTrackH, scroll.KindThumbTrackV, scroll.KindWheel,
}

func drawCommand(t *rapid.T, label string) scroll.Event {
	kind := rapid.SampledFrom(commandKinds).Draw(t, label+"-kind")
	ev := scroll.Event{Kind: kind}
	switch kind {
	case scroll.KindThumbTrackH, scroll.KindThumbTrackV:
		ev.Value = rapid.IntRange(-100, 5000).Draw(t, label+"-value")
	case scroll.KindWheel:
		ev.Value = rapid.IntRange(-4, 4).Draw(t, label+"-notches") * scroll.NotchUnit
	}
	return ev
}

func drawView(t *rapid.T, minTotal int, refuse [2]bool) (*scroll.View, *scrolltest.Host) {
	outer := image.Pt(rapid.IntRange(2, 200).Draw(t, "ow"), rapid.IntRange(2, 200).Draw(t, "oh"))
	host := scrolltest.New(outer)
	host.Refuse = refuse
	host.Visible = [2]bool{!refuse[scroll.AxisH], !refuse[scroll.AxisV]}
	v := scroll.New(host, nil)

	total := image.Pt(rapid.IntRange(minTotal, 2000).Draw(t, "tw"), rapid.IntRange(minTotal, 2000).Draw(t, "th"))
	page := image.Pt(rapid.IntRange(0, 300).Draw(t, "pw"), rapid.IntRange(0, 300).Draw(t, "ph"))
	line := image.Pt(rapid.IntRange(0, 50).Draw(t, "lw"), rapid.IntRange(0, 50).Draw(t, "lh"))
	require.NoError(t, v.SetScrollSizes(total, page, line))
	require.Equal(t, image.Point{}, v.ScrollPosition(), "sizing resets the position")
	return v, host
}

func TestProperty_CommandsStayInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v, host := drawView(t, 0, [2]bool{})
		checkCommandsInBounds(t, v, host)
	})
}

func TestProperty_CommandsStayInBoundsWhenBarsRefused(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		refuse := [2]bool{rapid.Bool().Draw(t, "refuse-h"), rapid.Bool().Draw(t, "refuse-v")}
		v, host := drawView(t, 0, refuse)
		checkCommandsInBounds(t, v, host)
		require.False(t, refuse[scroll.AxisH] && host.Visible[scroll.AxisH])
		require.False(t, refuse[scroll.AxisV] && host.Visible[scroll.AxisV])
	})
}

// checkCommandsInBounds dispatches random commands and checks the offset stays
// within [0, total - client] against the bars the host really shows.
func checkCommandsInBounds(t *rapid.T, v *scroll.View, host *scrolltest.Host) {
	inBounds := func() {
		pos, total := v.ScrollPosition(), v.TotalScrollSize()
		client := host.ClientRect().Size()
		require.GreaterOrEqual(t, pos.X, 0)
		require.GreaterOrEqual(t, pos.Y, 0)
		require.LessOrEqual(t, pos.X, max(0, total.X-client.X))
		require.LessOrEqual(t, pos.Y, max(0, total.Y-client.Y))
	}

	if rapid.Bool().Draw(t, "jump-to-end") {
		require.NoError(t, v.SetScrollPosition(v.TotalScrollSize()))
		inBounds()
	}
	n := rapid.IntRange(1, 30).Draw(t, "n")
	for i := 0; i < n; i++ {
		_, err := v.Dispatch(drawCommand(t, "cmd"))
		require.NoError(t, err)
		inBounds()
	}
}

func TestProperty_DisabledStaysAtOrigin(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		host := scrolltest.New(image.Pt(rapid.IntRange(1, 200).Draw(t, "ow"), rapid.IntRange(1, 200).Draw(t, "oh")))
		v := scroll.New(host, nil)
		require.NoError(t, v.SetScrollSizes(image.Point{}, image.Point{}, image.Point{}))

		n := rapid.IntRange(1, 20).Draw(t, "n")
		for i := 0; i < n; i++ {
			_, err := v.Dispatch(drawCommand(t, "cmd"))
			require.NoError(t, err)
			require.Equal(t, image.Point{}, v.ScrollPosition())
			require.False(t, v.IsHScrollVisible())
			require.False(t, v.IsVScrollVisible())
		}
		require.Empty(t, host.Shifts)
	})
}

func TestProperty_SyncIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v, host := drawView(t, 1, [2]bool{})
		_, err := v.Dispatch(scroll.ThumbTrack(scroll.AxisH, rapid.IntRange(0, 2000).Draw(t, "x")))
		require.NoError(t, err)
		_, err = v.Dispatch(scroll.ThumbTrack(scroll.AxisV, rapid.IntRange(0, 2000).Draw(t, "y")))
		require.NoError(t, err)

		require.NoError(t, v.Sync())
		pos, bars, info := v.ScrollPosition(), host.Visible, host.Info

		require.NoError(t, v.Sync())
		require.Equal(t, pos, v.ScrollPosition())
		require.Equal(t, bars, host.Visible)
		require.Equal(t, info, host.Info)
	})
}
