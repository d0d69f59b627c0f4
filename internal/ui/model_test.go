package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/bandscope/internal/bands"
	"github.com/olivier-w/bandscope/internal/config"
	"github.com/olivier-w/bandscope/internal/render"
	"github.com/olivier-w/bandscope/internal/waveform"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	track := waveform.SynthOptions{Duration: 30 * time.Second, BPM: 120, Seed: 5}
	deck := new(waveform.Deck)
	deck.Load(waveform.Synth(track))

	m, err := New(deck, config.DefaultConfig(), track, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m.position = 10
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	return next.(Model)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSizeRendersFrame(t *testing.T) {
	m := newTestModel(t)
	w, h := m.canvas.PixelSize()
	if w != 72 || h != 52 {
		t.Fatalf("PixelSize() = %d,%d, want 72,52", w, h)
	}
	if m.frame == nil || len(m.frame.Bands[bands.Mid]) == 0 {
		t.Fatal("expected mid segments after resize")
	}
	if !m.frame.HasReference {
		t.Fatal("expected reference line in default center alignment")
	}
	if !strings.Contains(m.View(), "bandscope") {
		t.Fatal("expected header in view")
	}
}

func TestKillKeyTogglesBand(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(runeKey("2"))
	m = next.(Model)
	if !m.killed[bands.Mid] {
		t.Fatal("expected mid to be killed")
	}
	if len(m.frame.Bands[bands.Mid]) != 0 {
		t.Fatalf("got %d mid segments while killed", len(m.frame.Bands[bands.Mid]))
	}

	next, _ = m.Update(runeKey("2"))
	m = next.(Model)
	if len(m.frame.Bands[bands.Mid]) == 0 {
		t.Fatal("expected mid segments after unkill")
	}
}

func TestAlignmentKeyCycles(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(runeKey("a"))
	m = next.(Model)
	if m.alignment != render.AlignTop {
		t.Fatalf("alignment = %v, want top", m.alignment)
	}
	if m.frame.HasReference {
		t.Fatal("unexpected reference line in top alignment")
	}
}

func TestGainKeysClamp(t *testing.T) {
	m := newTestModel(t)
	for range 50 {
		next, _ := m.Update(runeKey("r"))
		m = next.(Model)
	}
	if m.eq[bands.Low] != maxGain {
		t.Fatalf("low gain = %v, want %v", m.eq[bands.Low], maxGain)
	}
	for range 50 {
		next, _ := m.Update(runeKey("["))
		m = next.(Model)
	}
	if m.master != 0 {
		t.Fatalf("master = %v, want 0", m.master)
	}
	for _, b := range bands.All {
		for _, s := range m.frame.Bands[b] {
			if s.Y0 != s.Y1 {
				t.Fatalf("%v segment %+v has height at zero master gain", b, s)
			}
		}
	}
}

func TestFrameAdvancesWhilePlaying(t *testing.T) {
	m := newTestModel(t)
	start := time.Unix(100, 0)
	next, cmd := m.Update(frameMsg(start))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected next frame to be scheduled")
	}
	next, _ = m.Update(frameMsg(start.Add(500 * time.Millisecond)))
	m = next.(Model)
	if m.position != 10.5 {
		t.Fatalf("position = %v, want 10.5", m.position)
	}

	next, _ = m.Update(runeKey(" "))
	m = next.(Model)
	next, _ = m.Update(frameMsg(start.Add(time.Second)))
	m = next.(Model)
	if m.position != 10.5 {
		t.Fatalf("position = %v while paused, want 10.5", m.position)
	}
}

func TestPlaybackStopsAtEnd(t *testing.T) {
	m := newTestModel(t)
	m.position = 29.9
	start := time.Unix(0, 0)
	next, _ := m.Update(frameMsg(start))
	next, _ = next.(Model).Update(frameMsg(start.Add(time.Second)))
	m = next.(Model)
	if m.playing || m.position != 30 {
		t.Fatalf("playing=%v position=%v, want stopped at 30", m.playing, m.position)
	}
}

func TestSeekKeepsDisplayContinuous(t *testing.T) {
	m := newTestModel(t)
	before := m.position + m.seekOff.pos
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	if m.position != 12 {
		t.Fatalf("position = %v, want 12", m.position)
	}
	if got := m.position + m.seekOff.pos; got != before {
		t.Fatalf("display centre = %v, want %v", got, before)
	}
}

func TestUnloadAndLoadTrack(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(runeKey("u"))
	m = next.(Model)
	if m.deck.Loaded() {
		t.Fatal("expected deck to be unloaded")
	}
	if !m.frame.Empty() {
		t.Fatal("expected empty frame for unloaded deck")
	}
	if !strings.Contains(m.View(), "no track loaded") {
		t.Fatal("expected empty deck message")
	}

	next, _ = m.Update(runeKey("n"))
	m = next.(Model)
	if !m.deck.Loaded() || m.track.Seed != 6 {
		t.Fatalf("loaded=%v seed=%d, want loaded seed 6", m.deck.Loaded(), m.track.Seed)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if next.(Model).View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestVisibleWindow(t *testing.T) {
	first, last := visibleWindow(30, 20, 100)
	if first != 0.2 || last != 0.4 {
		t.Fatalf("visibleWindow() = %v,%v, want 0.2,0.4", first, last)
	}
	if first, last := visibleWindow(1, 4, 0); first != 0 || last != 0 {
		t.Fatal("expected empty window for zero length")
	}
}

func TestFormatPosition(t *testing.T) {
	if got := formatPosition(125.7); got != "2:05" {
		t.Fatalf("formatPosition() = %q, want 2:05", got)
	}
	if got := formatPosition(-3); got != "0:00" {
		t.Fatalf("formatPosition() = %q, want 0:00", got)
	}
}
