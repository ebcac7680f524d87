package config

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scrollview/internal/content"
	"github.com/zjrosen/scrollview/internal/tracing"
)

func loadYAML(t *testing.T, src string) (Config, error) {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(src)))
	return Load(v)
}

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestTemplate_MatchesDefaults(t *testing.T) {
	cfg, err := loadYAML(t, DefaultConfigTemplate())
	require.NoError(t, err)

	d := Defaults()
	require.Equal(t, d.Content, cfg.Content)
	require.Equal(t, d.Scroll, cfg.Scroll)
	require.Equal(t, d.Window, cfg.Window)
	require.Equal(t, d.Strict, cfg.Strict)
	require.Equal(t, d.ColorProfile, cfg.ColorProfile)
	require.Equal(t, d.Tracing, cfg.Tracing)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := loadYAML(t, `
content:
  source: notes.txt
scroll:
  line:
    y: 3
window:
  border: false
`)
	require.NoError(t, err)

	require.Equal(t, "notes.txt", cfg.Content.Source)
	require.Equal(t, KindAuto, cfg.Content.Kind)
	require.Equal(t, GridConfig{Width: 200, Height: 100}, cfg.Content.Grid)
	require.Equal(t, image.Pt(0, 3), cfg.Scroll.Line.Point())
	require.False(t, cfg.Window.Border)
	require.True(t, cfg.Window.VScroll)
	require.Equal(t, "#FFFFFF", cfg.Window.Background)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"kind", "content:\n  kind: pdf\n", "content.kind"},
		{"width", "content:\n  width: -1\n", "content.width"},
		{"grid", "content:\n  grid:\n    height: -5\n", "content.grid"},
		{"page", "scroll:\n  page:\n    x: -2\n", "scroll.page"},
		{"background", "window:\n  background: white\n", "window.background"},
		{"profile", "color_profile: sixteen\n", "color_profile"},
		{"sample rate", "tracing:\n  sample_rate: 2\n", "tracing.sample_rate"},
		{"exporter", "tracing:\n  exporter: zipkin\n", "tracing.exporter"},
		{"file path", "tracing:\n  enabled: true\n  exporter: file\n  file_path: \"\"\n", "tracing.file_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadYAML(t, tt.yaml)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestResolveKind(t *testing.T) {
	tests := []struct {
		cfg  ContentConfig
		want content.Kind
	}{
		{ContentConfig{}, content.KindMarkdown},
		{ContentConfig{Kind: KindAuto, Source: "README.md"}, content.KindMarkdown},
		{ContentConfig{Kind: KindAuto, Source: "doc.MARKDOWN"}, content.KindMarkdown},
		{ContentConfig{Kind: KindAuto, Source: "main.go"}, content.KindText},
		{ContentConfig{Kind: KindAuto, Source: "Makefile"}, content.KindText},
		{ContentConfig{Kind: "text", Source: "README.md"}, content.KindText},
		{ContentConfig{Kind: "grid"}, content.KindGrid},
	}
	for _, tt := range tests {
		got, err := tt.cfg.ResolveKind()
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "%+v", tt.cfg)
	}
}

func TestBackgroundColor(t *testing.T) {
	require.Nil(t, WindowConfig{}.BackgroundColor())
	require.Nil(t, WindowConfig{Background: "nope"}.BackgroundColor())

	c := WindowConfig{Background: "#336699"}.BackgroundColor()
	require.Equal(t, "#336699", c.(colorful.Color).Hex())
}

func TestParseColorProfile(t *testing.T) {
	for name, want := range map[string]termenv.Profile{
		"":          ProfileAuto,
		"auto":      ProfileAuto,
		"ascii":     termenv.Ascii,
		"ANSI":      termenv.ANSI,
		"ansi256":   termenv.ANSI256,
		"truecolor": termenv.TrueColor,
	} {
		got, err := ParseColorProfile(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}
}

func TestViewer(t *testing.T) {
	cfg := Defaults()
	cfg.Content = ContentConfig{Kind: "grid", Grid: GridConfig{Width: 30, Height: 40}, Watch: true}
	cfg.Scroll.Page = StepConfig{X: 5, Y: 6}
	cfg.Strict = true

	v := cfg.Viewer(nil)
	require.Equal(t, content.Source{Kind: content.KindGrid, GridSize: image.Pt(30, 40)}, v.Source)
	require.Equal(t, image.Pt(5, 6), v.Page)
	require.Equal(t, image.Point{}, v.Line)
	require.True(t, v.Border)
	require.True(t, v.Strict)
	require.True(t, v.Watch)
	require.NotNil(t, v.Background)
}

func TestDefaultTracesFilePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	require.Equal(t, filepath.Join(home, ".config", "scrollview", "traces", "traces.jsonl"), DefaultTracesFilePath())
	require.Equal(t, tracing.DefaultServiceName, Defaults().Tracing.ServiceName)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
