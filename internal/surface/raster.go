package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/olivier-w/bandscope/internal/bands"
	"github.com/olivier-w/bandscope/internal/render"
)

// Raster is an image surface. Segments are stroked with a 1px pen covering
// the pixel at each integer coordinate, endpoints included.
type Raster struct {
	img     *image.RGBA
	z       *vector.Rasterizer
	palette Palette
}

// NewRaster creates a width x height image surface.
func NewRaster(width, height int, p Palette) *Raster {
	width = max(width, 1)
	height = max(height, 1)
	return &Raster{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		z:       vector.NewRasterizer(width, height),
		palette: p,
	}
}

// Image returns the drawn image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Draw fills the background and strokes f one colour at a time.
func (r *Raster) Draw(f *render.Frame) {
	bounds := r.img.Bounds()
	draw.Draw(r.img, bounds, image.NewUniform(r.palette.Background), image.Point{}, draw.Src)
	if f == nil {
		return
	}

	if f.HasReference {
		r.fill([]render.Segment{f.Reference}, r.palette.Axes)
	}
	for _, b := range bands.All {
		if len(f.Bands[b]) > 0 {
			r.fill(f.Bands[b], r.palette.Bands[b])
		}
	}
}

func (r *Raster) fill(segments []render.Segment, c color.Color) {
	w, h := r.img.Bounds().Dx(), r.img.Bounds().Dy()
	r.z.Reset(w, h)
	r.z.DrawOp = draw.Over
	for _, s := range segments {
		x0, x1 := minMax(s.X0, s.X1)
		y0, y1 := minMax(s.Y0, s.Y1)
		x0, x1 = clampInt(x0, 0, w), clampInt(x1+1, 0, w)
		y0, y1 = clampInt(y0, 0, h), clampInt(y1+1, 0, h)
		if x0 >= x1 || y0 >= y1 {
			continue
		}
		r.z.MoveTo(float32(x0), float32(y0))
		r.z.LineTo(float32(x1), float32(y0))
		r.z.LineTo(float32(x1), float32(y1))
		r.z.LineTo(float32(x0), float32(y1))
		r.z.ClosePath()
	}
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

// WritePNG encodes the image as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the image to path.
func (r *Raster) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return r.WritePNG(f)
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
