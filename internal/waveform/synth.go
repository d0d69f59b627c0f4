package waveform

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	DefaultVisualSampleRate = 441.0
	DefaultAudioSampleRate  = 44100.0
)

// SynthOptions describes a generated four-on-the-floor test track.
type SynthOptions struct {
	Duration         time.Duration
	BPM              float64
	Seed             uint64
	VisualSampleRate float64
	AudioSampleRate  float64
}

// DefaultSynthOptions returns a three minute track at 124 BPM.
func DefaultSynthOptions() SynthOptions {
	return SynthOptions{
		Duration:         3 * time.Minute,
		BPM:              124,
		Seed:             1,
		VisualSampleRate: DefaultVisualSampleRate,
		AudioSampleRate:  DefaultAudioSampleRate,
	}
}

// Synth builds a deterministic band envelope that looks like dance music:
// kicks in the lows, a swelling pad in the mids, off-beat hats in the highs,
// plus a breakdown with no kick in the middle third.
func Synth(opts SynthOptions) *Waveform {
	def := DefaultSynthOptions()
	if opts.VisualSampleRate <= 0 {
		opts.VisualSampleRate = def.VisualSampleRate
	}
	if opts.AudioSampleRate <= 0 {
		opts.AudioSampleRate = def.AudioSampleRate
	}
	if opts.BPM <= 0 {
		opts.BPM = def.BPM
	}
	if opts.Duration < 0 {
		opts.Duration = 0
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	frames := int(opts.Duration.Seconds() * opts.VisualSampleRate)
	total := opts.Duration.Seconds()
	beatsPerSecond := opts.BPM / 60
	jitter := func(scale float64) float64 { return (rng.Float64() - 0.5) * scale }

	data := make([]Sample, frames*2)
	for f := range frames {
		t := float64(f) / opts.VisualSampleRate
		env := fadeEnvelope(t, total)
		breakdown := t > total/3 && t < total/2

		beat := t * beatsPerSecond
		kickPhase := beat - math.Floor(beat)
		hatPhase := beat + 0.5 - math.Floor(beat+0.5)

		kick := 235 * math.Exp(-kickPhase*7)
		if breakdown {
			kick = 0
		}
		pad := 90 + 70*math.Sin(2*math.Pi*t/16)
		hat := 40 + 170*math.Exp(-hatPhase*14)

		for ch := range 2 {
			data[2*f+ch] = Sample{
				Low:  toMagnitude(env * (kick + jitter(12))),
				Mid:  toMagnitude(env * (pad + jitter(30))),
				High: toMagnitude(env * (hat + jitter(40))),
			}
		}
	}

	return &Waveform{
		data:             data,
		visualSampleRate: opts.VisualSampleRate,
		audioVisualRatio: opts.AudioSampleRate / opts.VisualSampleRate,
	}
}

func fadeEnvelope(t, total float64) float64 {
	const fade = 4.0
	switch {
	case t < fade:
		return t / fade
	case total-t < fade:
		return math.Max(0, (total-t)/fade)
	default:
		return 1
	}
}

func toMagnitude(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
