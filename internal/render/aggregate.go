package render

import (
	"math"

	"github.com/olivier-w/bandscope/internal/bands"
	"github.com/olivier-w/bandscope/internal/waveform"
)

// Viewport is the per-frame geometry supplied by the host. First and Last
// are the visible window as fractions of the track length.
type Viewport struct {
	Width     int
	Height    int
	First     float64
	Last      float64
	Alignment Alignment
}

// Column is the reduction of one pixel column. Max holds, per band, the
// running maximum over even samples and over odd samples of the frames in
// [FrameStart, FrameStop].
type Column struct {
	X          int
	FrameStart int
	FrameStop  int
	Max        [bands.Count][2]uint8
}

// Present reports whether band b has signal in this column: both extremes
// must be nonzero.
func (c *Column) Present(b bands.Band) bool {
	return c.Max[b][0] != 0 && c.Max[b][1] != 0
}

// Aggregate appends one Column per pixel column whose sample window
// overlaps the data to dst. Columns entirely outside the data are skipped.
// An empty store or a store with fewer than two samples yields nothing.
func Aggregate(dst []Column, store waveform.Store, vp Viewport) []Column {
	if store == nil || vp.Width <= 0 {
		return dst
	}
	dataSize := store.Size()
	if dataSize <= 1 {
		return dst
	}
	data := store.Samples()
	if len(data) < dataSize {
		return dst
	}

	firstVisualIndex := vp.First * float64(dataSize)
	lastVisualIndex := vp.Last * float64(dataSize)

	// Visual samples per horizontal pixel.
	gain := (lastVisualIndex - firstVisualIndex) / float64(vp.Width)
	if math.IsNaN(gain) || math.IsInf(gain, 0) || math.IsNaN(firstVisualIndex) {
		return dst
	}
	halfRange := gain / 2
	lastVisualFrame := dataSize/2 - 1

	for x := range vp.Width {
		center := gain*float64(x) + firstVisualIndex

		// Frames are pairs of visual samples; round to the nearest frame.
		frameStart := int(center/2 - halfRange + 0.5)
		frameStop := int(center/2 + halfRange + 0.5)

		if frameStop < 0 || frameStart > lastVisualFrame {
			continue
		}
		frameStart = clampInt(frameStart, 0, lastVisualFrame)
		frameStop = clampInt(frameStop, 0, lastVisualFrame)

		col := Column{X: x, FrameStart: frameStart, FrameStop: frameStop}
		indexStop := frameStop * 2
		for i := frameStart * 2; i+1 < dataSize && i+1 <= indexStop; i += 2 {
			even, odd := data[i], data[i+1]
			col.Max[bands.Low][0] = max(col.Max[bands.Low][0], even.Low)
			col.Max[bands.Low][1] = max(col.Max[bands.Low][1], odd.Low)
			col.Max[bands.Mid][0] = max(col.Max[bands.Mid][0], even.Mid)
			col.Max[bands.Mid][1] = max(col.Max[bands.Mid][1], odd.Mid)
			col.Max[bands.High][0] = max(col.Max[bands.High][0], even.High)
			col.Max[bands.High][1] = max(col.Max[bands.High][1], odd.High)
		}
		dst = append(dst, col)
	}
	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
