package surface

import (
	"strings"

	"github.com/olivier-w/bandscope/internal/bands"
	"github.com/olivier-w/bandscope/internal/render"
)

// Surface strokes a rendered frame.
type Surface interface {
	Draw(f *render.Frame)
}

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

const (
	inkNone uint8 = iota
	inkAxes
	inkLow
	inkMid
	inkHigh
)

// Braille is a terminal surface. Each cell is a 2x4 dot grid, so a canvas of
// cols x rows cells exposes 2*cols x 4*rows pixels. A cell takes the colour
// of the last thing stroked through it.
type Braille struct {
	cols    int
	rows    int
	dots    []uint8
	ink     []uint8
	palette Palette
	profile colorProfile
	output  string
}

// NewBraille creates a braille surface using the terminal's colour profile.
func NewBraille(cols, rows int, p Palette) *Braille {
	b := &Braille{palette: p, profile: currentColorProfile()}
	b.Resize(cols, rows)
	return b
}

// Resize changes the canvas size in cells.
func (b *Braille) Resize(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)
	if cols == b.cols && rows == b.rows && b.dots != nil {
		return
	}
	b.cols, b.rows = cols, rows
	b.dots = make([]uint8, cols*rows)
	b.ink = make([]uint8, cols*rows)
}

// PixelSize returns the canvas size in dots.
func (b *Braille) PixelSize() (width, height int) {
	return b.cols * 2, b.rows * 4
}

// SetPalette replaces the stroke colours.
func (b *Braille) SetPalette(p Palette) {
	b.palette = p
}

// Draw clears the canvas and strokes f: the reference line first, then the
// low, mid and high sequences in that order.
func (b *Braille) Draw(f *render.Frame) {
	clear(b.dots)
	clear(b.ink)

	if f != nil {
		if f.HasReference {
			b.stroke(f.Reference, inkAxes)
		}
		for _, band := range bands.All {
			ink := inkLow + uint8(band)
			for _, s := range f.Bands[band] {
				b.stroke(s, ink)
			}
		}
	}
	b.output = b.compose()
}

// View returns the last drawn canvas.
func (b *Braille) View() string {
	return b.output
}

func (b *Braille) stroke(s render.Segment, ink uint8) {
	w, h := b.PixelSize()
	s = clipAxisAligned(s, w, h)
	drawLine(s.X0, s.Y0, s.X1, s.Y1, func(x, y int) {
		b.plot(x, y, ink)
	})
}

func (b *Braille) plot(x, y int, ink uint8) {
	w, h := b.PixelSize()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	cell := (y/4)*b.cols + x/2
	b.dots[cell] |= 1 << brailleBits[x%2][y%4]
	b.ink[cell] = ink
}

func (b *Braille) compose() string {
	var out strings.Builder
	out.Grow(b.cols * b.rows * 4)
	state := newANSIState(b.profile)

	for row := range b.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := range b.cols {
			i := row*b.cols + col
			switch ink := b.ink[i]; ink {
			case inkNone:
			case inkAxes:
				state.set(&out, b.palette.Axes)
			default:
				state.set(&out, b.palette.Bands[ink-inkLow])
			}
			out.WriteRune(rune(0x2800 + int(b.dots[i])))
		}
		state.reset(&out)
	}
	return out.String()
}

// drawLine walks the pixels of a line with Bresenham's algorithm, endpoints
// included.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipAxisAligned bounds the long axis of vertical and horizontal segments
// so huge gains cannot make a stroke walk far outside the canvas.
func clipAxisAligned(s render.Segment, w, h int) render.Segment {
	switch {
	case s.X0 == s.X1:
		s.Y0 = clampInt(s.Y0, -1, h)
		s.Y1 = clampInt(s.Y1, -1, h)
	case s.Y0 == s.Y1:
		s.X0 = clampInt(s.X0, -1, w)
		s.X1 = clampInt(s.X1, -1, w)
	}
	return s
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

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
