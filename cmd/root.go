package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/scrollview/internal/config"
	"github.com/zjrosen/scrollview/internal/log"
	"github.com/zjrosen/scrollview/internal/tracing"
	"github.com/zjrosen/scrollview/internal/window"
)

func init() {
	// Query the terminal background before any program starts so the OSC 11
	// response does not race with Bubble Tea's input loop.
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scrollview [file]",
	Short: "Scroll through a document with real scrollbars",
	Long: `scrollview shows a document in a scrollable terminal window with
horizontal and vertical scrollbars, keyboard and mouse scrolling, and
flicker-free repainting.

Markdown files are rendered, anything else is shown as plain text. Without a
file the built-in guide is shown.`,
	Args:         cobra.MaximumNArgs(1),
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.scrollview.yaml or ~/.config/scrollview/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (path from SCROLLVIEW_LOG, default debug.log; level from SCROLLVIEW_LOG_LEVEL)")

	flags := rootCmd.PersistentFlags()
	flags.StringP("kind", "k", "", "content kind: auto, markdown, text or grid")
	flags.IntP("width", "w", 0, "wrap width in columns")
	flags.Bool("watch", false, "reload the file when it changes")
	flags.Bool("border", true, "draw a border around the window")
	flags.Bool("strict", false, "panic on engine contract violations")
	flags.String("background", "", "background color as hex, e.g. #FFFFFF")

	for key, name := range map[string]string{
		"content.kind":      "kind",
		"content.width":     "width",
		"content.watch":     "watch",
		"window.border":     "border",
		"strict":            "strict",
		"window.background": "background",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix("SCROLLVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .scrollview.yaml (current directory)
		// 2. ~/.config/scrollview/config.yaml (user config)
		if _, err := os.Stat(".scrollview.yaml"); err == nil {
			viper.SetConfigFile(".scrollview.yaml")
		} else {
			viper.AddConfigPath(userConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "scrollview: reading config: %v\n", err)
		}
	}
}

func userConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "scrollview")
}

// configPath is the file `config set` edits: the one in use, or the user config.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(userConfigDir(), "config.yaml")
}

// setup loads the config, starts debug logging and tracing, and applies the
// color profile. The returned cleanup flushes traces and closes the log.
func setup(args []string) (*tracing.Provider, func(), error) {
	if len(args) > 0 {
		viper.Set("content.source", args[0])
	}
	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	closeLog := func() {}
	if debugFlag || os.Getenv("SCROLLVIEW_DEBUG") != "" {
		logPath := os.Getenv("SCROLLVIEW_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.Init(logPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing logging: %w", err)
		}
		closeLog = func() {
			// Watcher and listener goroutines may still log after the file closes.
			log.SetEnabled(false)
			cleanup()
		}
		if name := os.Getenv("SCROLLVIEW_LOG_LEVEL"); name != "" {
			level, err := log.ParseLevel(name)
			if err != nil {
				closeLog()
				return nil, nil, fmt.Errorf("SCROLLVIEW_LOG_LEVEL: %w", err)
			}
			log.SetMinLevel(level)
		}
		log.Info(log.CatConfig, "scrollview starting", "version", version, "config", viper.ConfigFileUsed())
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}

	if profile, _ := config.ParseColorProfile(cfg.ColorProfile); profile != config.ProfileAuto {
		lipgloss.SetColorProfile(profile)
	}

	return provider, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatConfig, "flushing traces failed", err)
		}
		closeLog()
	}, nil
}

func runApp(_ *cobra.Command, args []string) error {
	provider, cleanup, err := setup(args)
	if err != nil {
		return err
	}
	defer cleanup()

	zone.NewGlobal()
	defer zone.Close()

	tracer := provider.Tracer()
	p := tea.NewProgram(
		window.NewModel(cfg.Viewer(tracer)),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if viper.ConfigFileUsed() != "" {
		// A file given on the command line is a viper override and survives reloads.
		viper.OnConfigChange(func(e fsnotify.Event) {
			next, err := config.Load(viper.GetViper())
			if err != nil {
				log.ErrorErr(log.CatConfig, "ignoring invalid config change", err, "path", e.Name)
				return
			}
			p.Send(window.ConfigChangedMsg{Config: next.Viewer(tracer)})
		})
		viper.WatchConfig()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
