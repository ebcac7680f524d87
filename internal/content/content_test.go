package content

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scrollview/internal/surface"
)

func TestParseKind(t *testing.T) {
	for _, s := range []string{"markdown", "text", "grid"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		require.Equal(t, Kind(s), k)
	}
	_, err := ParseKind("html")
	require.ErrorContains(t, err, "unknown content kind")
}

func TestText_MeasuresWidestLine(t *testing.T) {
	l := Text("short\na much longer line\n\n", 0)

	require.Equal(t, image.Pt(18, 2), l.Size())
	require.Equal(t, "a much longer line", l.Line(1))
}

func TestText_Wraps(t *testing.T) {
	l := Text("the quick brown fox jumps over the lazy dog", 10)

	require.LessOrEqual(t, l.Size().X, 10)
	require.Greater(t, l.Size().Y, 3)
}

func TestText_EmptyIsZeroSized(t *testing.T) {
	require.Equal(t, image.Point{}, Text("\n\n", 0).Size())
}

func TestNewLines_StripsEscapesAndTabs(t *testing.T) {
	l := NewLines([]string{"\x1b[1mbold\x1b[0m", "\tx", ""})

	require.Equal(t, "bold", l.Line(0))
	require.Equal(t, "    x", l.Line(1))
	require.Equal(t, image.Pt(5, 3), l.Size())
}

func TestNewLines_BlankRowsAreOneCellWide(t *testing.T) {
	require.Equal(t, image.Pt(1, 2), NewLines([]string{"", ""}).Size())
}

func TestLines_Draw(t *testing.T) {
	l := Text("ab\ncd世", 0)
	g := surface.NewGrid(l.Size())
	l.Draw(g)

	require.Equal(t, "ab  \ncd世", g.String())
}

func TestRenderer_RendersAndCaches(t *testing.T) {
	r := NewRenderer()
	ctx := context.Background()

	a, err := r.Render(ctx, "# Title\n\nSome body text.", 40)
	require.NoError(t, err)
	joined := strings.Join(a.lines, "\n")
	require.Contains(t, joined, "Title")
	require.Contains(t, joined, "Some body text.")
	require.NotContains(t, joined, "\x1b[")

	b, err := r.Render(ctx, "# Title\n\nSome body text.", 40)
	require.NoError(t, err)
	require.Equal(t, a.lines, b.lines)
	require.Equal(t, 1, r.Cached())
}

func TestRenderer_WidthIsPartOfTheKey(t *testing.T) {
	require.NotEqual(t, keyOf("x", 40), keyOf("x", 41))
	require.NotEqual(t, keyOf("x", 40), keyOf("y", 40))
}

func TestPattern_Draw(t *testing.T) {
	p := NewPattern(image.Pt(21, 6))
	g := surface.NewGrid(p.Size())
	p.Draw(g)

	rows := strings.Split(g.String(), "\n")
	require.Equal(t, "+---------+---------+", rows[0])
	require.Equal(t, "|0,0      |10,0     |", rows[1])
	require.Equal(t, "+---------+---------+", rows[5])
	require.Equal(t, surface.Hex(patternShade), surface.Hex(g.At(12, 2).BG))
}

func TestPattern_NegativeSize(t *testing.T) {
	require.Equal(t, image.Pt(0, 3), NewPattern(image.Pt(-4, 3)).Size())
}

func TestLoader_LoadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	c, err := NewLoader().Load(context.Background(), Source{Kind: KindText, Path: path})
	require.NoError(t, err)
	require.Equal(t, image.Pt(5, 3), c.Size())
}

func TestLoader_BuiltInGuide(t *testing.T) {
	c, err := NewLoader().Load(context.Background(), Source{Kind: KindMarkdown, Width: 60})
	require.NoError(t, err)
	require.Greater(t, c.Size().Y, 20)
	require.Positive(t, c.Size().X)
}

func TestLoader_ReloadDropsStaleLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# First\n"), 0o644))
	l := NewLoader()
	ctx := context.Background()

	_, err := l.Load(ctx, Source{Kind: KindMarkdown, Path: path, Width: 40})
	require.NoError(t, err)
	require.Equal(t, 1, l.markdown.Cached())

	require.NoError(t, os.WriteFile(path, []byte("# Second\n"), 0o644))
	c, err := l.Load(ctx, Source{Kind: KindMarkdown, Path: path, Width: 40})
	require.NoError(t, err)
	require.Equal(t, 1, l.markdown.Cached(), "the first version is no longer cached")
	require.Contains(t, strings.Join(c.(*Lines).lines, "\n"), "Second")

	_, err = l.Load(ctx, Source{Kind: KindMarkdown, Path: path, Width: 60})
	require.NoError(t, err)
	require.Equal(t, 2, l.markdown.Cached(), "a new width of the same text is kept alongside")
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), Source{Kind: KindText, Path: "/does/not/exist"})
	require.ErrorContains(t, err, "reading content")
}
