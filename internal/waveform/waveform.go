package waveform

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrBandMismatch is returned when per-band envelopes differ in length.
var ErrBandMismatch = errors.New("band envelopes differ in length")

// Sample is one visual sample: the filtered low/mid/high envelope magnitudes.
type Sample struct {
	Low  uint8
	Mid  uint8
	High uint8
}

// Frame is a pair of consecutive samples. Even is the first of the pair.
type Frame struct {
	Even Sample
	Odd  Sample
}

// Store is read-only access to an analysed track. A nil or unloaded store
// reports Size() == 0 and is treated as nothing to draw.
type Store interface {
	Size() int
	SampleRate() float64
	FrameAt(i int) (Frame, bool)
	Samples() []Sample
}

// Waveform owns the visual samples of one track. It is never mutated after
// construction, so any number of renderers may read it concurrently.
type Waveform struct {
	data             []Sample
	visualSampleRate float64
	audioVisualRatio float64
}

// New copies data into a new Waveform. audioVisualRatio is the number of
// audio samples folded into each visual sample.
func New(data []Sample, visualSampleRate, audioVisualRatio float64) *Waveform {
	owned := make([]Sample, len(data))
	copy(owned, data)
	return &Waveform{
		data:             owned,
		visualSampleRate: visualSampleRate,
		audioVisualRatio: audioVisualRatio,
	}
}

// FromBands interleaves three per-band envelopes into a Waveform.
func FromBands(low, mid, high []uint8, visualSampleRate, audioVisualRatio float64) (*Waveform, error) {
	if len(low) != len(mid) || len(low) != len(high) {
		return nil, fmt.Errorf("%w: low=%d mid=%d high=%d", ErrBandMismatch, len(low), len(mid), len(high))
	}
	data := make([]Sample, len(low))
	for i := range data {
		data[i] = Sample{Low: low[i], Mid: mid[i], High: high[i]}
	}
	return &Waveform{
		data:             data,
		visualSampleRate: visualSampleRate,
		audioVisualRatio: audioVisualRatio,
	}, nil
}

// Size returns the number of visual samples (dataSize).
func (w *Waveform) Size() int {
	if w == nil {
		return 0
	}
	return len(w.data)
}

// SampleRate returns the visual sample rate in Hz.
func (w *Waveform) SampleRate() float64 {
	if w == nil {
		return 0
	}
	return w.visualSampleRate
}

// AudioVisualRatio returns how many audio samples map to one visual sample.
func (w *Waveform) AudioVisualRatio() float64 {
	if w == nil {
		return 0
	}
	return w.audioVisualRatio
}

// AudioSamplesPerVisualSample is the audio/visual ratio per frame pair, i.e.
// per stereo-like frame of two visual samples.
func (w *Waveform) AudioSamplesPerVisualSample() float64 {
	return w.AudioVisualRatio() / 2
}

// Frames returns the number of complete frames.
func (w *Waveform) Frames() int {
	return w.Size() / 2
}

// FrameAt returns frame i. ok is false when i is out of range or the
// waveform is unset.
func (w *Waveform) FrameAt(i int) (Frame, bool) {
	if i < 0 || i >= w.Frames() {
		return Frame{}, false
	}
	return Frame{Even: w.data[2*i], Odd: w.data[2*i+1]}, true
}

// Samples returns the backing samples. Callers must not modify them.
func (w *Waveform) Samples() []Sample {
	if w == nil {
		return nil
	}
	return w.data
}

// Deck holds the track currently loaded for display. Loading swaps in a
// whole new store instead of mutating the old one, so a frame that captured
// Current() keeps reading a consistent store.
type Deck struct {
	current atomic.Pointer[Waveform]
}

// Load replaces the deck's waveform. Call it between frames.
func (d *Deck) Load(w *Waveform) {
	d.current.Store(w)
}

// Reset unloads the deck.
func (d *Deck) Reset() {
	d.current.Store(nil)
}

// Current returns the loaded waveform, or nil when nothing is loaded.
func (d *Deck) Current() *Waveform {
	return d.current.Load()
}

// Loaded reports whether the deck has drawable data.
func (d *Deck) Loaded() bool {
	return d.Current().Size() > 1
}
