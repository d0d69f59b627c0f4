package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/bandscope/internal/bands"
	"github.com/olivier-w/bandscope/internal/config"
	"github.com/olivier-w/bandscope/internal/render"
	"github.com/olivier-w/bandscope/internal/surface"
	"github.com/olivier-w/bandscope/internal/waveform"
)

const (
	minZoom   = 0.25
	gainStep  = 0.1
	maxGain   = 4.0
	chromeRow = 7 // header, blank, legend, progress, blank, help, margin
)

// Model is the Bubbletea model for one deck.
type Model struct {
	deck     *waveform.Deck
	renderer *render.Renderer
	canvas   *surface.Braille
	logger   *slog.Logger
	keys     keyMap
	help     help.Model
	progress progress.Model

	interval time.Duration
	visual   bands.VisualGains
	hex      [bands.Count]string
	track    waveform.SynthOptions

	width     int
	height    int
	alignment render.Alignment
	playing   bool
	position  float64
	lastFrame time.Time

	zoom    float64
	zoomS   smoother
	seekOff smoother

	eq     [bands.Count]float64
	master float64
	killed [bands.Count]bool

	frame    *render.Frame
	quitting bool
}

// New creates a Model showing deck. cfg must already be validated.
func New(deck *waveform.Deck, cfg *config.Config, track waveform.SynthOptions, logger *slog.Logger) (Model, error) {
	align, err := cfg.ParsedAlignment()
	if err != nil {
		return Model{}, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return Model{}, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)

	m := Model{
		deck:      deck,
		renderer:  render.NewRenderer(0),
		canvas:    surface.NewBraille(0, 0, palette),
		logger:    logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
		progress:  p,
		interval:  cfg.FrameInterval(),
		visual:    cfg.VisualGains(),
		hex:       [bands.Count]string{cfg.Colors.Low, cfg.Colors.Mid, cfg.Colors.High},
		track:     track,
		alignment: align,
		playing:   true,
		zoom:      cfg.Deck.Zoom.Seconds(),
		zoomS:     newSmoother(cfg.FPS, 6.0, 1.0),
		seekOff:   newSmoother(cfg.FPS, 8.0, 1.0),
		master:    cfg.Deck.Gain,
		eq:        [bands.Count]float64{1, 1, 1},
	}
	m.zoomS.snap(m.zoom)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.interval), tea.SetWindowTitle("bandscope"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(m.keys, msg) {
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		return m.handleKey(msg), nil

	case frameMsg:
		m = m.advance(time.Time(msg))
		m.renderFrame()
		return m, frameCmd(m.interval)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas.Resize(max(msg.Width-4, 1), max(msg.Height-chromeRow, 1))
		m.progress.Width = max(msg.Width-16, 10)
		m.help.Width = msg.Width
		m.renderFrame()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	length := m.length()

	switch {
	case key.Matches(msg, m.keys.Play):
		m.playing = !m.playing
	case key.Matches(msg, m.keys.SeekBack):
		m = m.seek(-m.zoom / 4)
	case key.Matches(msg, m.keys.SeekFwd):
		m = m.seek(m.zoom / 4)
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom = max(m.zoom*0.8, minZoom)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom *= 1.25
		if length > 0 {
			m.zoom = min(m.zoom, length)
		}
	case key.Matches(msg, m.keys.Align):
		m.alignment = m.alignment.Next()
		m.logger.Debug("alignment changed", slog.String("alignment", m.alignment.String()))
	case key.Matches(msg, m.keys.MasterUp):
		m.master = min(m.master+gainStep, maxGain)
	case key.Matches(msg, m.keys.MasterDn):
		m.master = max(m.master-gainStep, 0)
	case key.Matches(msg, m.keys.Reset):
		m.eq = [bands.Count]float64{1, 1, 1}
		m.killed = [bands.Count]bool{}
	case key.Matches(msg, m.keys.NextTrack):
		m = m.loadNext()
	case key.Matches(msg, m.keys.Unload):
		m.deck.Reset()
		m.position = 0
		m.logger.Info("deck unloaded")
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		for _, b := range bands.All {
			switch {
			case key.Matches(msg, m.keys.Kill[b]):
				m.killed[b] = !m.killed[b]
				m.logger.Debug("band kill toggled", slog.String("band", b.String()), slog.Bool("killed", m.killed[b]))
			case key.Matches(msg, m.keys.GainUp[b]):
				m.eq[b] = min(m.eq[b]+gainStep, maxGain)
			case key.Matches(msg, m.keys.GainDown[b]):
				m.eq[b] = max(m.eq[b]-gainStep, 0)
			}
		}
	}
	m.renderFrame()
	return m
}

func (m Model) seek(delta float64) Model {
	next := clampFloat(m.position+delta, 0, m.length())
	// Keep the display where it was and let the offset spring glide to zero.
	m.seekOff.snap(m.seekOff.pos + m.position - next)
	m.position = next
	return m
}

// loadNext swaps a freshly generated track into the deck. Updates are never
// concurrent with rendering, so this always lands between frames.
func (m Model) loadNext() Model {
	m.track.Seed++
	w := waveform.Synth(m.track)
	m.deck.Load(w)
	m.position = 0
	m.seekOff.snap(0)
	m.logger.Info("track loaded",
		slog.Uint64("seed", m.track.Seed),
		slog.Int("samples", w.Size()),
		slog.Float64("visual_rate", w.SampleRate()))
	return m
}

func (m Model) advance(now time.Time) Model {
	if !m.lastFrame.IsZero() && m.playing {
		m.position += now.Sub(m.lastFrame).Seconds()
		if length := m.length(); m.position >= length {
			m.position = length
			m.playing = false
		}
	}
	m.lastFrame = now
	m.zoomS.step(m.zoom)
	m.seekOff.step(0)
	return m
}

// length returns the loaded track length in seconds.
func (m Model) length() float64 {
	w := m.deck.Current()
	if w.SampleRate() <= 0 {
		return 0
	}
	return float64(w.Frames()) / w.SampleRate()
}

func (m Model) controls() bands.Controls {
	var c bands.Controls
	for _, b := range bands.All {
		c.EQ[b] = bands.Value(m.eq[b])
		kill := 0.0
		if m.killed[b] {
			kill = 1
		}
		c.Kill[b] = bands.Value(kill)
	}
	c.Master = bands.Value(m.master)
	return c
}

func (m Model) viewport() render.Viewport {
	w, h := m.canvas.PixelSize()
	span := max(m.zoomS.pos, minZoom)
	first, last := visibleWindow(m.position+m.seekOff.pos, span, m.length())
	return render.Viewport{
		Width:     w,
		Height:    h,
		First:     first,
		Last:      last,
		Alignment: m.alignment,
	}
}

// renderFrame runs the pipeline once. The renderer and canvas are shared by
// every copy of the Model; Bubbletea only ever holds one of them at a time.
func (m *Model) renderFrame() {
	st := bands.Resolve(m.controls(), m.visual)
	m.frame = m.renderer.Render(m.deck.Current(), m.viewport(), st)
	m.canvas.Draw(m.frame)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(headerStyle.Render("bandscope"))
	if m.deck.Loaded() {
		b.WriteString("  ")
		b.WriteString(titleStyle.Render(fmt.Sprintf("synth #%d", m.track.Seed)))
		b.WriteString(statusStyle.Render(fmt.Sprintf("  %.0f BPM", m.track.BPM)))
	}
	b.WriteString("\n")

	if m.deck.Loaded() {
		for _, line := range strings.Split(m.canvas.View(), "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  ")
		b.WriteString(emptyStyle.Render("no track loaded (n to generate one)"))
		b.WriteString("\n")
	}

	b.WriteString("  ")
	b.WriteString(m.renderLegend())
	b.WriteString("\n")

	length := m.length()
	ratio := 0.0
	if length > 0 {
		ratio = m.position / length
	}
	status := "▶"
	if !m.playing {
		status = "❚❚"
	}
	b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
		statusStyle.Render(status),
		timeStyle.Render(formatPosition(m.position)),
		m.progress.ViewAs(ratio),
		timeStyle.Render(formatPosition(length))))

	b.WriteString("\n  ")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
