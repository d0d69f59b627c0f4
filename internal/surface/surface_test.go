package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/olivier-w/bandscope/internal/bands"
	"github.com/olivier-w/bandscope/internal/render"
)

func plainBraille(cols, rows int) *Braille {
	b := NewBraille(cols, rows, DefaultPalette())
	b.profile = colorNone
	return b
}

func TestBrailleFullColumn(t *testing.T) {
	b := plainBraille(2, 1)
	f := &render.Frame{}
	f.Bands[bands.Low] = []render.Segment{{X0: 0, Y0: 0, X1: 0, Y1: 3}}
	b.Draw(f)

	want := "⡇⠀"
	if got := b.View(); got != want {
		t.Fatalf("View() = %q, want %q", got, want)
	}
}

func TestBrailleClipsOutsideCanvas(t *testing.T) {
	b := plainBraille(1, 1)
	f := &render.Frame{}
	f.Bands[bands.High] = []render.Segment{{X0: 1, Y0: 4, X1: 1, Y1: -1_000_000}}
	b.Draw(f)

	want := string(rune(0x2800 | 1<<3 | 1<<4 | 1<<5 | 1<<7))
	if got := b.View(); got != want {
		t.Fatalf("View() = %q, want %q", got, want)
	}
}

func TestBrailleReferenceLine(t *testing.T) {
	b := plainBraille(3, 2)
	w, h := b.PixelSize()
	if w != 6 || h != 8 {
		t.Fatalf("PixelSize() = %d,%d, want 6,8", w, h)
	}
	f := &render.Frame{HasReference: true, Reference: render.Reference(render.Viewport{Width: w, Height: h})}
	b.Draw(f)

	rows := strings.Split(b.View(), "\n")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0] != "⠀⠀⠀" {
		t.Fatalf("row 0 = %q, want blank", rows[0])
	}
	// y=4 is the top dot row of the second cell row.
	if rows[1] != "⠉⠉⠉" {
		t.Fatalf("row 1 = %q, want top dots", rows[1])
	}
}

func TestBrailleColorsLastBand(t *testing.T) {
	b := plainBraille(1, 1)
	b.profile = colorTrueColor
	f := &render.Frame{}
	f.Bands[bands.Low] = []render.Segment{{X0: 0, Y0: 0, X1: 0, Y1: 1}}
	f.Bands[bands.High] = []render.Segment{{X0: 1, Y0: 0, X1: 1, Y1: 1}}
	b.Draw(f)

	r, g, bl := b.palette.Bands[bands.High].RGB255()
	want := colorSequence(colorTrueColor, r, g, bl)
	if !strings.HasPrefix(b.View(), want) {
		t.Fatalf("View() = %q, want prefix %q", b.View(), want)
	}
	if !strings.HasSuffix(b.View(), "\x1b[0m") {
		t.Fatalf("View() = %q, want reset suffix", b.View())
	}
}

func TestPaletteHexRejectsInvalid(t *testing.T) {
	h := DefaultPaletteHex()
	h.Mid = "yellow"
	if _, err := h.Parse(); err == nil {
		t.Fatal("expected error for non-hex colour")
	}
}

func TestRasterStrokesSegments(t *testing.T) {
	p := DefaultPalette()
	r := NewRaster(8, 10, p)
	f := &render.Frame{HasReference: true, Reference: render.Segment{X0: 0, Y0: 5, X1: 8, Y1: 5}}
	f.Bands[bands.Mid] = []render.Segment{{X0: 2, Y0: 1, X1: 2, Y1: 3}}
	r.Draw(f)

	img := r.Image()
	if got, want := img.RGBAAt(2, 2), rgbaOf(p.Bands[bands.Mid]); got != want {
		t.Fatalf("pixel (2,2) = %v, want mid colour %v", got, want)
	}
	if got, want := img.RGBAAt(6, 5), rgbaOf(p.Axes); got != want {
		t.Fatalf("pixel (6,5) = %v, want axes colour %v", got, want)
	}
	if got, want := img.RGBAAt(3, 2), rgbaOf(p.Background); got != want {
		t.Fatalf("pixel (3,2) = %v, want background %v", got, want)
	}
	if got, want := img.RGBAAt(2, 4), rgbaOf(p.Background); got != want {
		t.Fatalf("pixel (2,4) = %v, want background %v", got, want)
	}

	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 10 {
		t.Fatalf("decoded bounds = %v", decoded.Bounds())
	}
}

func rgbaOf(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
