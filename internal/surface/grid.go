// Package surface provides a terminal cell grid that serves as both the on-screen
// paint surface and the off-screen compositing buffer.
//
// One cell is one "pixel" of the scrolling engine.
package surface

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/scrollview/internal/scroll"
)

// Cell is a single character position. Width is 0 for the trailing half of a wide
// grapheme, which is never rendered on its own.
type Cell struct {
	Content string
	Width   int
	FG      color.Color
	BG      color.Color
	Bold    bool
}

// Blank returns an empty cell on bg.
func Blank(bg color.Color) Cell {
	return Cell{Content: " ", Width: 1, BG: bg}
}

// Grid is a rectangular block of cells.
type Grid struct {
	w, h  int
	cells []Cell
}

var _ scroll.Surface = (*Grid)(nil)

// NewGrid allocates a grid filled with default blank cells.
func NewGrid(size image.Point) *Grid {
	w, h := max(0, size.X), max(0, size.Y)
	g := &Grid{w: w, h: h, cells: make([]Cell, w*h)}
	g.Fill(g.Bounds(), nil)
	return g
}

// Size implements scroll.Surface.
func (g *Grid) Size() image.Point { return image.Pt(g.w, g.h) }

// Bounds is the grid rectangle anchored at the origin.
func (g *Grid) Bounds() image.Rectangle { return image.Rect(0, 0, g.w, g.h) }

// At returns the cell at (x, y), or a zero Cell outside the grid.
func (g *Grid) At(x, y int) Cell {
	if !image.Pt(x, y).In(g.Bounds()) {
		return Cell{}
	}
	return g.cells[y*g.w+x]
}

// Set stores c at (x, y); writes outside the grid are dropped.
func (g *Grid) Set(x, y int, c Cell) {
	if !image.Pt(x, y).In(g.Bounds()) {
		return
	}
	g.cells[y*g.w+x] = c
}

// Fill implements scroll.Surface.
func (g *Grid) Fill(r image.Rectangle, c color.Color) {
	r = r.Intersect(g.Bounds())
	blank := Blank(c)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := g.cells[y*g.w : (y+1)*g.w]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = blank
		}
	}
}

// Blit implements scroll.Surface. src must be a *Grid; anything else is ignored.
func (g *Grid) Blit(dst image.Point, src scroll.Surface, srcPos image.Point, size image.Point) {
	sg, ok := src.(*Grid)
	if !ok {
		return
	}
	if sg == g {
		sg = g.Clone()
	}

	from := image.Rectangle{Min: srcPos, Max: srcPos.Add(size)}.Intersect(sg.Bounds())
	to := from.Add(dst.Sub(srcPos)).Intersect(g.Bounds())
	from = to.Add(srcPos.Sub(dst))
	if to.Empty() {
		return
	}
	for y := 0; y < to.Dy(); y++ {
		srow := (from.Min.Y + y) * sg.w
		drow := (to.Min.Y + y) * g.w
		copy(g.cells[drow+to.Min.X:drow+to.Max.X], sg.cells[srow+from.Min.X:srow+from.Max.X])
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{w: g.w, h: g.h, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// DrawText writes s at (x, y) one grapheme cluster at a time and returns the number
// of columns used. Wide clusters take two cells. Background colors are taken from
// the cells being overwritten when bg is nil.
func (g *Grid) DrawText(x, y int, s string, fg, bg color.Color) int {
	col := x
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		cellBG := bg
		if cellBG == nil {
			cellBG = g.At(col, y).BG
		}
		g.Set(col, y, Cell{Content: cluster, Width: w, FG: fg, BG: cellBG})
		for i := 1; i < w; i++ {
			g.Set(col+i, y, Cell{Width: 0, FG: fg, BG: cellBG})
		}
		col += w
	}
	return col - x
}

// String renders the grid as plain text, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.w; x++ {
			c := g.cells[y*g.w+x]
			if c.Width == 0 {
				continue
			}
			sb.WriteString(c.Content)
		}
	}
	return sb.String()
}

// Render renders the grid with colors, merging runs of identically styled cells.
func (g *Grid) Render() string {
	lines := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		var sb strings.Builder
		var run strings.Builder
		var runStyle styleKey
		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(runStyle.style().Render(run.String()))
			run.Reset()
		}
		for x := 0; x < g.w; x++ {
			c := g.cells[y*g.w+x]
			if c.Width == 0 {
				continue
			}
			k := keyOf(c)
			if k != runStyle {
				flush()
				runStyle = k
			}
			run.WriteString(c.Content)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

type styleKey struct {
	fg, bg string
	bold   bool
}

func keyOf(c Cell) styleKey {
	return styleKey{fg: Hex(c.FG), bg: Hex(c.BG), bold: c.Bold}
}

func (k styleKey) style() lipgloss.Style {
	s := lipgloss.NewStyle().Bold(k.bold)
	if k.fg != "" {
		s = s.Foreground(lipgloss.Color(k.fg))
	}
	if k.bg != "" {
		s = s.Background(lipgloss.Color(k.bg))
	}
	return s
}

// Hex formats c as #rrggbb, or "" for nil (terminal default).
func Hex(c color.Color) string {
	if c == nil {
		return ""
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cf.Hex()
}

// ParseHex parses a #rrggbb color.
func ParseHex(s string) (color.Color, error) {
	return colorful.Hex(s)
}
