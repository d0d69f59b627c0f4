package render

import "github.com/olivier-w/bandscope/internal/bands"

// maxMagnitude is the largest value a band sample can hold.
const maxMagnitude = 255.0

// Segment is a line from (X0, Y0) to (X1, Y1) in pixel coordinates, with
// y growing downwards.
type Segment struct {
	X0, Y0 int
	X1, Y1 int
}

// Reference returns the horizontal centre line drawn in center alignment.
func Reference(vp Viewport) Segment {
	y := int(float64(vp.Height) / 2)
	return Segment{X0: 0, Y0: y, X1: vp.Width, Y1: y}
}

// heightFactor converts a magnitude into pixels before band gain.
func heightFactor(vp Viewport, master float64) float64 {
	if vp.Alignment == AlignCenter {
		return master * (float64(vp.Height) / 2) / maxMagnitude
	}
	return master * float64(vp.Height) / maxMagnitude
}

// Build appends the segment of band b for every column where the band has
// signal. Segments come out in column order.
func Build(dst []Segment, cols []Column, b bands.Band, vp Viewport, st bands.State) []Segment {
	factor := heightFactor(vp, st.Master)
	gain := st.Gain[b]
	halfHeight := float64(vp.Height) / 2
	height := vp.Height

	for i := range cols {
		c := &cols[i]
		if !c.Present(b) {
			continue
		}
		even, odd := float64(c.Max[b][0]), float64(c.Max[b][1])

		var s Segment
		switch vp.Alignment {
		case AlignBottom:
			s = Segment{
				X0: c.X, Y0: height,
				X1: c.X, Y1: height - int(factor*gain*max(even, odd)),
			}
		case AlignTop:
			s = Segment{
				X0: c.X, Y0: 0,
				X1: c.X, Y1: int(factor * gain * max(even, odd)),
			}
		default:
			s = Segment{
				X0: c.X, Y0: int(halfHeight - factor*gain*even),
				X1: c.X, Y1: int(halfHeight + factor*gain*odd),
			}
		}
		dst = append(dst, s)
	}
	return dst
}
