package content

import (
	"fmt"
	"image"
	"image/color"

	"github.com/zjrosen/scrollview/internal/scroll"
	"github.com/zjrosen/scrollview/internal/surface"
)

const (
	cellW = 10
	cellH = 5
)

var (
	patternInk   = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	patternShade = color.RGBA{R: 0xe8, G: 0xee, B: 0xf4, A: 0xff}
)

// Pattern is a ruled grid with a coordinate label in every block. It makes the
// scroll offset easy to read off the screen.
type Pattern struct {
	size image.Point
}

// NewPattern returns a pattern of the given extent; negative axes become 0.
func NewPattern(size image.Point) *Pattern {
	return &Pattern{size: image.Pt(max(0, size.X), max(0, size.Y))}
}

// Size implements Content.
func (p *Pattern) Size() image.Point { return p.size }

// Draw implements Content.
func (p *Pattern) Draw(buf scroll.Surface) {
	g, ok := buf.(*surface.Grid)
	if !ok {
		return
	}
	for by := 0; by < p.size.Y; by += cellH {
		for bx := 0; bx < p.size.X; bx += cellW {
			if (bx/cellW+by/cellH)%2 == 1 {
				g.Fill(image.Rect(bx, by, bx+cellW, by+cellH).Intersect(image.Rectangle{Max: p.size}), patternShade)
			}
		}
	}
	for y := 0; y < p.size.Y; y++ {
		for x := 0; x < p.size.X; x++ {
			if r := rule(x, y); r != "" {
				g.DrawText(x, y, r, patternInk, nil)
			}
		}
	}
	for by := 0; by < p.size.Y; by += cellH {
		for bx := 0; bx < p.size.X; bx += cellW {
			label := fmt.Sprintf("%d,%d", bx, by)
			if bx+1+len(label) <= min(bx+cellW, p.size.X) && by+1 < p.size.Y {
				g.DrawText(bx+1, by+1, label, patternInk, nil)
			}
		}
	}
}

func rule(x, y int) string {
	switch {
	case x%cellW == 0 && y%cellH == 0:
		return "+"
	case y%cellH == 0:
		return "-"
	case x%cellW == 0:
		return "|"
	default:
		return ""
	}
}
