package window

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scrollview/internal/scroll"
)

func TestMeasureBar_ThumbPosition(t *testing.T) {
	tests := []struct {
		name      string
		info      scroll.BarInfo
		length    int
		wantStart int
		wantLen   int
	}{
		{"top", scroll.BarInfo{Max: 100, Page: 10, Pos: 0}, 10, 0, 1},
		{"bottom", scroll.BarInfo{Max: 100, Page: 10, Pos: 90}, 10, 7, 1},
		{"middle", scroll.BarInfo{Max: 100, Page: 10, Pos: 45}, 10, 3, 1},
		{"large page", scroll.BarInfo{Max: 100, Page: 50, Pos: 50}, 10, 4, 4},
		{"fits", scroll.BarInfo{Max: 10, Page: 20}, 10, 0, 8},
		{"no arrows", scroll.BarInfo{Max: 100, Page: 50, Pos: 50}, 2, 1, 1},
		{"empty range", scroll.BarInfo{}, 6, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := measureBar(tt.info, tt.length)
			require.Equal(t, tt.wantStart, l.thumbStart)
			require.Equal(t, tt.wantLen, l.thumbLen)
		})
	}
}

func TestBarLayout_Hit(t *testing.T) {
	l := measureBar(scroll.BarInfo{Max: 100, Page: 10, Pos: 45}, 10)

	require.Equal(t, partNone, l.hit(-1))
	require.Equal(t, partBackArrow, l.hit(0))
	require.Equal(t, partBackTrack, l.hit(1))
	require.Equal(t, partBackTrack, l.hit(3))
	require.Equal(t, partThumb, l.hit(4))
	require.Equal(t, partForwardTrack, l.hit(5))
	require.Equal(t, partForwardArrow, l.hit(9))
	require.Equal(t, partNone, l.hit(10))
}

func TestBarLayout_DragValueReachesBothEnds(t *testing.T) {
	info := scroll.BarInfo{Max: 100, Page: 10}
	l := measureBar(info, 10)

	require.Equal(t, 0, l.dragValue(info, 0))
	require.Equal(t, 90, l.dragValue(info, 7))
	require.Equal(t, 39, l.dragValue(info, 3))
	require.Equal(t, 90, l.dragValue(info, 100), "clamped past the end")
	require.Equal(t, 0, l.dragValue(info, -4))
}

func TestBarLayout_DragValueWithoutRoom(t *testing.T) {
	info := scroll.BarInfo{Min: 5, Max: 10, Page: 20}
	l := measureBar(info, 10)
	require.Equal(t, 5, l.dragValue(info, 3))
}

func TestRenderBar(t *testing.T) {
	require.Equal(t, "▲\n█\n░\n▼", renderBar(scroll.AxisV, scroll.BarInfo{Max: 100, Page: 10}, 4))
	require.Equal(t, "◀░░█▶", renderBar(scroll.AxisH, scroll.BarInfo{Max: 100, Page: 10, Pos: 90}, 5))
	require.Equal(t, "█░", renderBar(scroll.AxisH, scroll.BarInfo{Max: 100, Page: 50}, 2), "too short for arrows")
	require.Empty(t, renderBar(scroll.AxisV, scroll.BarInfo{Max: 100}, 0))
}
