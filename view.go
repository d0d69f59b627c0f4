package main

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/olivier-w/bandscope/internal/ui"
	"github.com/olivier-w/bandscope/internal/waveform"
)

func runView(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	// The viewer owns the terminal, so logs only go somewhere with --log-file.
	logger, closeLog, err := newLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()
	if path != "" {
		logger.Debug("config loaded", slog.String("path", path))
	}

	track := trackOptions(cfg.Deck.BPM, cfg.Deck.Seed)
	deck := new(waveform.Deck)
	deck.Load(waveform.Synth(track))

	model, err := ui.New(deck, cfg, track, logger)
	if err != nil {
		return err
	}
	logger.Info("viewer starting",
		slog.String("alignment", cfg.Alignment),
		slog.Int("fps", cfg.FPS),
		slog.Duration("zoom", cfg.Deck.Zoom))

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func trackOptions(bpm float64, seed uint64) waveform.SynthOptions {
	opts := waveform.DefaultSynthOptions()
	opts.BPM = bpm
	opts.Seed = seed
	return opts
}
