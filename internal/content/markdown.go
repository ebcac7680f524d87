package content

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/scrollview/internal/cachemanager"
	"github.com/zjrosen/scrollview/internal/log"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

const (
	defaultMarkdownWidth = 80
	renderTTL            = 10 * time.Minute
)

type renderKey string

type renderInput struct {
	source string
	width  int
}

// Renderer lays out markdown with glamour. Results are cached by source and width,
// so a resize or a config reload that does not touch the document is free.
type Renderer struct {
	store *cachemanager.InMemoryCacheManager[renderKey, []string]
	cache *cachemanager.ReadThroughCache[renderKey, []string, renderInput]
}

// NewRenderer creates a renderer with an in-memory cache.
func NewRenderer() *Renderer {
	store := cachemanager.NewInMemoryCacheManager[renderKey, []string]("markdown", renderTTL, 2*renderTTL)
	return &Renderer{
		store: store,
		cache: cachemanager.NewReadThroughCache[renderKey, []string, renderInput](store, renderMarkdown, false),
	}
}

// Render lays out src at width columns (80 when width <= 0).
func (r *Renderer) Render(ctx context.Context, src string, width int) (*Lines, error) {
	width = markdownWidth(width)
	lines, err := r.cache.Get(ctx, keyOf(src, width), renderInput{source: src, width: width}, renderTTL)
	if err != nil {
		return nil, err
	}
	return NewLines(lines), nil
}

// Forget drops the cached layout of src at width.
func (r *Renderer) Forget(ctx context.Context, src string, width int) {
	_ = r.store.Delete(ctx, keyOf(src, markdownWidth(width)))
}

// Cached is the number of rendered documents held.
func (r *Renderer) Cached() int { return r.store.Len() }

func markdownWidth(width int) int {
	if width <= 0 {
		return defaultMarkdownWidth
	}
	return width
}

func keyOf(src string, width int) renderKey {
	h := fnv.New64a()
	_, _ = h.Write([]byte(src))
	return renderKey(fmt.Sprintf("%016x:%d", h.Sum64(), width))
}

func renderMarkdown(_ context.Context, in renderInput) ([]string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(in.width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := tr.Render(in.source)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	log.Debug(log.CatCache, "markdown rendered", "width", in.width, "bytes", len(out))

	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines, nil
}
