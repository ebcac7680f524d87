// Package config provides configuration types, defaults and validation for scrollview.
package config

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/scrollview/internal/content"
	"github.com/zjrosen/scrollview/internal/log"
	"github.com/zjrosen/scrollview/internal/tracing"
	"github.com/zjrosen/scrollview/internal/window"
)

// KindAuto picks markdown or text from the source file extension.
const KindAuto = "auto"

// Config holds all configuration options for scrollview.
type Config struct {
	Content      ContentConfig  `mapstructure:"content"`
	Scroll       ScrollConfig   `mapstructure:"scroll"`
	Window       WindowConfig   `mapstructure:"window"`
	Strict       bool           `mapstructure:"strict"`        // panic on contract violations instead of clamping
	ColorProfile string         `mapstructure:"color_profile"` // auto, ascii, ansi, ansi256, truecolor
	Tracing      tracing.Config `mapstructure:"tracing"`
}

// ContentConfig selects what is scrolled.
type ContentConfig struct {
	Source string     `mapstructure:"source"` // file path; empty shows the built-in guide
	Kind   string     `mapstructure:"kind"`   // auto (default), markdown, text, grid
	Width  int        `mapstructure:"width"`  // wrap width; 0 renders markdown at 80 and leaves text unwrapped
	Watch  bool       `mapstructure:"watch"`  // reload when the source changes on disk
	Grid   GridConfig `mapstructure:"grid"`
}

// GridConfig is the extent of the coordinate grid.
type GridConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// ScrollConfig holds the page and line steps. Zero axes are derived from the
// content size.
type ScrollConfig struct {
	Page StepConfig `mapstructure:"page"`
	Line StepConfig `mapstructure:"line"`
}

// StepConfig is a step per axis.
type StepConfig struct {
	X int `mapstructure:"x"`
	Y int `mapstructure:"y"`
}

// Point returns the step as a point.
func (s StepConfig) Point() image.Point { return image.Pt(s.X, s.Y) }

// WindowConfig controls the frame around the content.
type WindowConfig struct {
	Border     bool   `mapstructure:"border"`
	HScroll    bool   `mapstructure:"hscroll"`    // allow a horizontal scrollbar
	VScroll    bool   `mapstructure:"vscroll"`    // allow a vertical scrollbar
	Background string `mapstructure:"background"` // hex color e.g. "#FFFFFF"
}

// DefaultTracesFilePath returns ~/.config/scrollview/traces/traces.jsonl, or an
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "scrollview", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()
	return Config{
		Content: ContentConfig{
			Kind: KindAuto,
			Grid: GridConfig{Width: 200, Height: 100},
		},
		Window: WindowConfig{
			Border:     true,
			HScroll:    true,
			VScroll:    true,
			Background: "#FFFFFF",
		},
		ColorProfile: "auto",
		Tracing:      tc,
	}
}

// SetDefaults registers every default with v so partially filled files and
// environment overrides unmarshal onto them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("content.source", d.Content.Source)
	v.SetDefault("content.kind", d.Content.Kind)
	v.SetDefault("content.width", d.Content.Width)
	v.SetDefault("content.watch", d.Content.Watch)
	v.SetDefault("content.grid.width", d.Content.Grid.Width)
	v.SetDefault("content.grid.height", d.Content.Grid.Height)
	v.SetDefault("scroll.page.x", d.Scroll.Page.X)
	v.SetDefault("scroll.page.y", d.Scroll.Page.Y)
	v.SetDefault("scroll.line.x", d.Scroll.Line.X)
	v.SetDefault("scroll.line.y", d.Scroll.Line.Y)
	v.SetDefault("window.border", d.Window.Border)
	v.SetDefault("window.hscroll", d.Window.HScroll)
	v.SetDefault("window.vscroll", d.Window.VScroll)
	v.SetDefault("window.background", d.Window.Background)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("color_profile", d.ColorProfile)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// Load unmarshals and validates whatever v has read.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	if err := ValidateContent(c.Content); err != nil {
		return err
	}
	if err := ValidateScroll(c.Scroll); err != nil {
		return err
	}
	if err := ValidateWindow(c.Window); err != nil {
		return err
	}
	if _, err := ParseColorProfile(c.ColorProfile); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateContent checks the content section.
func ValidateContent(c ContentConfig) error {
	if _, err := c.ResolveKind(); err != nil {
		return fmt.Errorf("content.kind: %w", err)
	}
	if c.Width < 0 {
		return fmt.Errorf("content.width must not be negative, got %d", c.Width)
	}
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		return fmt.Errorf("content.grid must not be negative, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	return nil
}

// ValidateScroll checks the page and line steps.
func ValidateScroll(s ScrollConfig) error {
	for name, step := range map[string]StepConfig{"page": s.Page, "line": s.Line} {
		if step.X < 0 || step.Y < 0 {
			return fmt.Errorf("scroll.%s must not be negative, got %d,%d", name, step.X, step.Y)
		}
	}
	return nil
}

// ValidateWindow checks the window section.
func ValidateWindow(w WindowConfig) error {
	if w.Background == "" {
		return nil
	}
	if _, err := colorful.Hex(w.Background); err != nil {
		return fmt.Errorf("window.background must be a hex color like \"#FFFFFF\", got %q", w.Background)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.Enabled && t.Exporter == "file" && t.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}
	return nil
}

// ResolveKind turns the configured kind into a content kind. Auto picks markdown
// for .md files and the built-in guide, and text for everything else.
func (c ContentConfig) ResolveKind() (content.Kind, error) {
	if c.Kind != "" && c.Kind != KindAuto {
		return content.ParseKind(c.Kind)
	}
	switch ext := strings.ToLower(filepath.Ext(c.Source)); {
	case c.Source == "", ext == ".md", ext == ".markdown":
		return content.KindMarkdown, nil
	}
	return content.KindText, nil
}

// BackgroundColor parses the configured background. Empty means the engine default.
func (w WindowConfig) BackgroundColor() color.Color {
	if w.Background == "" {
		return nil
	}
	c, err := colorful.Hex(w.Background)
	if err != nil {
		log.Warn(log.CatConfig, "ignoring invalid background", "value", w.Background)
		return nil
	}
	return c
}

// ProfileAuto keeps whatever profile the terminal reports.
const ProfileAuto termenv.Profile = -1

// ParseColorProfile maps a profile name to a termenv profile.
func ParseColorProfile(s string) (termenv.Profile, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ProfileAuto, nil
	case "ascii":
		return termenv.Ascii, nil
	case "ansi":
		return termenv.ANSI, nil
	case "ansi256":
		return termenv.ANSI256, nil
	case "truecolor":
		return termenv.TrueColor, nil
	default:
		return ProfileAuto, fmt.Errorf("color_profile must be auto, ascii, ansi, ansi256 or truecolor, got %q", s)
	}
}

// Viewer builds the window configuration. The config must have been validated.
func (c Config) Viewer(tracer trace.Tracer) window.Config {
	kind, _ := c.Content.ResolveKind()
	return window.Config{
		Source: content.Source{
			Kind:     kind,
			Path:     c.Content.Source,
			Width:    c.Content.Width,
			GridSize: image.Pt(c.Content.Grid.Width, c.Content.Grid.Height),
		},
		Page:       c.Scroll.Page.Point(),
		Line:       c.Scroll.Line.Point(),
		Border:     c.Window.Border,
		HScroll:    c.Window.HScroll,
		VScroll:    c.Window.VScroll,
		Background: c.Window.BackgroundColor(),
		Strict:     c.Strict,
		Watch:      c.Content.Watch,
		Tracer:     tracer,
	}
}
