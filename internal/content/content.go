// Package content supplies what a scroll.View draws: rendered markdown, wrapped
// plain text, or a coordinate grid.
package content

import (
	"context"
	_ "embed"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/zjrosen/scrollview/internal/log"
	"github.com/zjrosen/scrollview/internal/scroll"
)

// Kind selects how a source is turned into cells.
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindText     Kind = "text"
	KindGrid     Kind = "grid"
)

// ParseKind validates s as a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindMarkdown, KindText, KindGrid:
		return k, nil
	default:
		return "", fmt.Errorf("unknown content kind %q (want markdown, text or grid)", s)
	}
}

// Content is something with a fixed extent that can paint itself into an
// off-screen buffer of exactly that extent.
type Content interface {
	Size() image.Point
	Draw(buf scroll.Surface)
}

// Source describes where content comes from and how to lay it out.
type Source struct {
	Kind     Kind
	Path     string      // empty selects the built-in guide
	Width    int         // wrap width for markdown and text; 0 disables wrapping text
	GridSize image.Point // extent of KindGrid
}

//go:embed guide.md
var guide string

// Loader builds Content from a Source, reusing rendered markdown across reloads.
// When a file's text changes, the layout of its previous text is dropped.
type Loader struct {
	markdown *Renderer

	mu   sync.Mutex
	last map[string]renderInput // latest markdown laid out per path
}

// NewLoader creates a loader with its own render cache.
func NewLoader() *Loader {
	return &Loader{markdown: NewRenderer(), last: make(map[string]renderInput)}
}

// Load reads and lays out src.
func (l *Loader) Load(ctx context.Context, src Source) (Content, error) {
	if src.Kind == KindGrid {
		return NewPattern(src.GridSize), nil
	}

	text := guide
	if src.Path != "" {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("reading content: %w", err)
		}
		text = string(data)
	}
	log.Debug(log.CatConfig, "loading content", "kind", src.Kind, "path", src.Path, "bytes", len(text))

	switch src.Kind {
	case KindText:
		return Text(text, src.Width), nil
	default:
		lines, err := l.markdown.Render(ctx, text, src.Width)
		if err != nil {
			return nil, err
		}
		l.remember(ctx, src.Path, renderInput{source: text, width: src.Width})
		return lines, nil
	}
}

func (l *Loader) remember(ctx context.Context, path string, in renderInput) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.last[path]; ok && prev.source != in.source {
		l.markdown.Forget(ctx, prev.source, prev.width)
	}
	l.last[path] = in
}
