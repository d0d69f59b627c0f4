package render

import (
	"github.com/olivier-w/bandscope/internal/bands"
	"github.com/olivier-w/bandscope/internal/waveform"
)

// Frame is everything the drawing backend strokes for one tick: an optional
// reference line, then one ordered segment sequence per band. Killed bands
// have empty sequences.
type Frame struct {
	Viewport     Viewport
	HasReference bool
	Reference    Segment
	Bands        [bands.Count][]Segment
}

// Empty reports whether the frame has nothing to draw.
func (f *Frame) Empty() bool {
	if f.HasReference {
		return false
	}
	for _, lines := range f.Bands {
		if len(lines) > 0 {
			return false
		}
	}
	return true
}

// Renderer runs the aggregate/build pipeline for one viewport. It keeps its
// buffers between frames, so it must not be shared by concurrent callers;
// give each deck its own Renderer.
type Renderer struct {
	width int
	cols  []Column
	lines [bands.Count][]Segment
	frame Frame
}

// NewRenderer creates a renderer with buffers sized for width columns.
func NewRenderer(width int) *Renderer {
	r := &Renderer{}
	r.Resize(width)
	return r
}

// Resize reallocates the per-band buffers when the width changes.
func (r *Renderer) Resize(width int) {
	if width < 0 {
		width = 0
	}
	if width == r.width && r.cols != nil {
		return
	}
	r.width = width
	r.cols = make([]Column, 0, width)
	for b := range r.lines {
		r.lines[b] = make([]Segment, 0, width)
	}
}

// Render aggregates store over vp and builds the frame's segments. The store
// is read once at the start of the frame; the returned Frame and its slices
// stay valid until the next call to Render.
func (r *Renderer) Render(store waveform.Store, vp Viewport, st bands.State) *Frame {
	r.Resize(vp.Width)
	r.frame = Frame{Viewport: vp}
	r.cols = r.cols[:0]

	if store == nil || store.Size() <= 1 || store.Samples() == nil || vp.Width <= 0 {
		return &r.frame
	}

	if vp.Alignment == AlignCenter {
		r.frame.HasReference = true
		r.frame.Reference = Reference(vp)
	}

	r.cols = Aggregate(r.cols[:0], store, vp)
	for _, b := range bands.All {
		r.lines[b] = Build(r.lines[b][:0], r.cols, b, vp, st)
		if st.Killed[b] {
			continue
		}
		r.frame.Bands[b] = r.lines[b]
	}
	return &r.frame
}

// Columns returns the columns aggregated by the last Render.
func (r *Renderer) Columns() []Column {
	return r.cols
}
