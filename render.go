package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/olivier-w/bandscope/internal/bands"
	"github.com/olivier-w/bandscope/internal/config"
	"github.com/olivier-w/bandscope/internal/render"
	"github.com/olivier-w/bandscope/internal/surface"
	"github.com/olivier-w/bandscope/internal/waveform"
)

type renderOptions struct {
	first, last   float64
	cols, rows    int
	png           string
	width, height int
	gain          float64
	eq            [bands.Count]float64
	kill          []string
	seed          uint64
}

var renderOpts renderOptions

func runRender(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()
	if path != "" {
		logger.Debug("config loaded", slog.String("path", path))
	}

	seed := cfg.Deck.Seed
	if renderOpts.seed != 0 {
		seed = renderOpts.seed
	}
	w := waveform.Synth(trackOptions(cfg.Deck.BPM, seed))
	logger.Debug("track generated", slog.Uint64("seed", seed), slog.Int("samples", w.Size()))

	return renderFrame(cmd.OutOrStdout(), w, cfg, renderOpts, logger)
}

// renderFrame runs one frame of the pipeline over w and writes it either as
// braille text to out or as a PNG file.
func renderFrame(out io.Writer, w waveform.Store, cfg *config.Config, opts renderOptions, logger *slog.Logger) error {
	align, err := cfg.ParsedAlignment()
	if err != nil {
		return err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}
	controls, err := opts.controls()
	if err != nil {
		return err
	}
	st := bands.Resolve(controls, cfg.VisualGains())

	var (
		surf          surface.Surface
		width, height int
		braille       *surface.Braille
		raster        *surface.Raster
	)
	if opts.png != "" {
		if opts.width <= 0 || opts.height <= 0 {
			return fmt.Errorf("png size must be positive, got %dx%d", opts.width, opts.height)
		}
		raster = surface.NewRaster(opts.width, opts.height, palette)
		surf, width, height = raster, opts.width, opts.height
	} else {
		if opts.cols <= 0 || opts.rows <= 0 {
			return fmt.Errorf("terminal size must be positive, got %dx%d", opts.cols, opts.rows)
		}
		braille = surface.NewBraille(opts.cols, opts.rows, palette)
		width, height = braille.PixelSize()
		surf = braille
	}

	vp := render.Viewport{
		Width:     width,
		Height:    height,
		First:     opts.first,
		Last:      opts.last,
		Alignment: align,
	}
	frame := render.NewRenderer(width).Render(w, vp, st)
	surf.Draw(frame)

	logger.Info("frame rendered",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("low", len(frame.Bands[bands.Low])),
		slog.Int("mid", len(frame.Bands[bands.Mid])),
		slog.Int("high", len(frame.Bands[bands.High])))

	if raster != nil {
		return raster.SavePNG(opts.png)
	}
	_, err = fmt.Fprintln(out, braille.View())
	return err
}

func (o renderOptions) controls() (bands.Controls, error) {
	var c bands.Controls
	c.Master = bands.Value(o.gain)
	for _, b := range bands.All {
		c.EQ[b] = bands.Value(o.eq[b])
		c.Kill[b] = bands.Value(0)
	}
	for _, name := range o.kill {
		b, err := bands.Parse(name)
		if err != nil {
			return bands.Controls{}, err
		}
		c.Kill[b] = bands.Value(1)
	}
	return c, nil
}
