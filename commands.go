package main

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/olivier-w/bandscope/internal/config"
	"github.com/olivier-w/bandscope/internal/logging"
	"github.com/olivier-w/bandscope/internal/render"
)

var version = "0.1.0"

var (
	configPath string
	logLevel   string
	logFile    string
	alignFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "bandscope",
	Short: "Three-band scrolling waveform viewer for the terminal",
	Long: `bandscope draws the low, mid and high envelopes of an analysed track
as one line per pixel column, the way a DJ deck does.

With no subcommand it opens the interactive viewer on a generated track.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runView,
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive deck viewer",
	Long: `Open the interactive deck viewer on a generated track.

Examples:
  bandscope view
  bandscope view --align bottom --log-file bandscope.log --log-level debug`,
	RunE: runView,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a single frame to the terminal or a PNG file",
	Long: `Render one frame of a generated track and exit.

Examples:
  bandscope render --first 0.25 --last 0.3
  bandscope render --png frame.png --width 1200 --height 240 --kill low
  bandscope render --align top --gain-high 2 --cols 100 --rows 10`,
	RunE: runRender,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/bandscope/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVarP(&alignFlag, "align", "a", "", "alignment: top, bottom or center")

	renderCmd.Flags().Float64Var(&renderOpts.first, "first", 0.25, "first displayed position (fraction of track)")
	renderCmd.Flags().Float64Var(&renderOpts.last, "last", 0.3, "last displayed position (fraction of track)")
	renderCmd.Flags().IntVar(&renderOpts.cols, "cols", 80, "terminal columns")
	renderCmd.Flags().IntVar(&renderOpts.rows, "rows", 12, "terminal rows")
	renderCmd.Flags().StringVar(&renderOpts.png, "png", "", "write a PNG image instead of terminal output")
	renderCmd.Flags().IntVar(&renderOpts.width, "width", 800, "PNG width in pixels")
	renderCmd.Flags().IntVar(&renderOpts.height, "height", 200, "PNG height in pixels")
	renderCmd.Flags().Float64Var(&renderOpts.gain, "gain", 1, "master gain")
	renderCmd.Flags().Float64Var(&renderOpts.eq[0], "gain-low", 1, "low band gain")
	renderCmd.Flags().Float64Var(&renderOpts.eq[1], "gain-mid", 1, "mid band gain")
	renderCmd.Flags().Float64Var(&renderOpts.eq[2], "gain-high", 1, "high band gain")
	renderCmd.Flags().StringSliceVar(&renderOpts.kill, "kill", nil, "bands to kill (low, mid, high)")
	renderCmd.Flags().Uint64Var(&renderOpts.seed, "seed", 0, "track seed (default from config)")

	rootCmd.AddCommand(viewCmd, renderCmd)
}

// loadConfig reads the config file and applies command-line overrides. It
// returns the path of the file used, if any.
func loadConfig() (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	path := configPath
	if path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, "", err
		}
	} else {
		var err error
		if path, err = cfg.TryLoadDefault(); err != nil {
			return nil, "", err
		}
	}
	if alignFlag != "" {
		if _, err := render.ParseAlignment(alignFlag); err != nil {
			return nil, "", err
		}
		cfg.Alignment = alignFlag
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, path, nil
}

// newLogger opens the log destination. The returned closer is never nil.
func newLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, func() error, error) {
	out, closer := fallback, func() error { return nil }
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "bandscope")
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f.Close
	}
	logger, err := logging.New(out, cfg.LogLevel)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return logger, closer, nil
}
