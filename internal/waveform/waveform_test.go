package waveform

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNilWaveformIsEmpty(t *testing.T) {
	var w *Waveform
	if w.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", w.Size())
	}
	if w.SampleRate() != 0 {
		t.Fatalf("SampleRate() = %v, want 0", w.SampleRate())
	}
	if _, ok := w.FrameAt(0); ok {
		t.Fatal("expected FrameAt on nil waveform to report empty")
	}
	if w.Samples() != nil {
		t.Fatal("expected nil samples")
	}
}

func TestNewCopiesInput(t *testing.T) {
	src := []Sample{{Low: 1}, {Low: 2}}
	w := New(src, 441, 100)
	src[0].Low = 99
	if got := w.Samples()[0].Low; got != 1 {
		t.Fatalf("Samples()[0].Low = %d, want 1", got)
	}
}

func TestFrameAtPairsConsecutiveSamples(t *testing.T) {
	w := New([]Sample{{Low: 1}, {Low: 2}, {Low: 3}, {Low: 4}, {Low: 5}}, 441, 100)
	if w.Frames() != 2 {
		t.Fatalf("Frames() = %d, want 2", w.Frames())
	}
	f, ok := w.FrameAt(1)
	if !ok {
		t.Fatal("expected frame 1 to exist")
	}
	if f.Even.Low != 3 || f.Odd.Low != 4 {
		t.Fatalf("FrameAt(1) = %+v, want even=3 odd=4", f)
	}
	if _, ok := w.FrameAt(2); ok {
		t.Fatal("expected trailing unpaired sample to be outside any frame")
	}
	if _, ok := w.FrameAt(-1); ok {
		t.Fatal("expected negative frame index to be rejected")
	}
}

func TestFromBandsRejectsMismatchedLengths(t *testing.T) {
	_, err := FromBands([]uint8{1, 2}, []uint8{1}, []uint8{1, 2}, 441, 100)
	if !errors.Is(err, ErrBandMismatch) {
		t.Fatalf("FromBands() error = %v, want ErrBandMismatch", err)
	}
}

func TestFromBandsInterleaves(t *testing.T) {
	w, err := FromBands([]uint8{1, 2}, []uint8{3, 4}, []uint8{5, 6}, 441, 100)
	if err != nil {
		t.Fatalf("FromBands() error = %v", err)
	}
	want := Sample{Low: 2, Mid: 4, High: 6}
	if got := w.Samples()[1]; got != want {
		t.Fatalf("Samples()[1] = %+v, want %+v", got, want)
	}
	if w.AudioSamplesPerVisualSample() != 50 {
		t.Fatalf("AudioSamplesPerVisualSample() = %v, want 50", w.AudioSamplesPerVisualSample())
	}
}

func TestDeckLoadAndReset(t *testing.T) {
	var d Deck
	if d.Loaded() {
		t.Fatal("expected empty deck")
	}
	w := New([]Sample{{Low: 1}, {Low: 2}}, 441, 100)
	d.Load(w)
	if d.Current() != w || !d.Loaded() {
		t.Fatal("expected loaded waveform to be current")
	}
	d.Reset()
	if d.Current() != nil || d.Loaded() {
		t.Fatal("expected reset deck to be empty")
	}
}

func TestWaveformConcurrentReads(t *testing.T) {
	w := Synth(SynthOptions{Duration: 2 * time.Second, Seed: 7})
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range w.Frames() {
				if _, ok := w.FrameAt(i); !ok {
					t.Errorf("FrameAt(%d) missing", i)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestSynthIsDeterministic(t *testing.T) {
	opts := SynthOptions{Duration: 10 * time.Second, Seed: 42}
	a := Synth(opts)
	b := Synth(opts)
	if a.Size() != b.Size() {
		t.Fatalf("sizes differ: %d vs %d", a.Size(), b.Size())
	}
	if want := int(10*DefaultVisualSampleRate) * 2; a.Size() != want {
		t.Fatalf("Size() = %d, want %d", a.Size(), want)
	}
	for i, s := range a.Samples() {
		if b.Samples()[i] != s {
			t.Fatalf("sample %d differs: %+v vs %+v", i, s, b.Samples()[i])
		}
	}
	if a.AudioVisualRatio() != DefaultAudioSampleRate/DefaultVisualSampleRate {
		t.Fatalf("AudioVisualRatio() = %v", a.AudioVisualRatio())
	}
}
