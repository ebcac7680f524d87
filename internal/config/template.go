package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/scrollview/internal/log"
)

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# scrollview configuration

content:
  # File to scroll. Leave empty for the built-in guide.
  # source: README.md

  # How the source is laid out: auto (default), markdown, text or grid.
  # auto picks markdown for .md files and text for anything else.
  kind: auto

  # Wrap width in columns. 0 renders markdown at 80 and leaves text unwrapped.
  # Content is painted off-screen in one piece of at most 4194304 cells
  # (2048x2048); a larger source reports an error instead of painting, so wrap
  # very wide text files.
  width: 0

  # Reload the source when it changes on disk.
  watch: false

  # Extent of the coordinate grid shown by kind: grid.
  grid:
    width: 200
    height: 100

# Page and line steps in cells. 0 derives the step from the content size:
# page = size / 10, line = page / 10.
scroll:
  page:
    x: 0
    y: 0
  line:
    x: 0
    y: 0

window:
  border: true
  hscroll: true        # allow a horizontal scrollbar
  vscroll: true        # allow a vertical scrollbar
  background: "#FFFFFF"

# Panic on engine contract violations instead of clamping (useful while developing).
strict: false

# Force a color profile: auto (default), ascii, ansi, ansi256 or truecolor.
color_profile: auto

# Span export for sync and paint passes.
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/scrollview/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
