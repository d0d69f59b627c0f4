package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/olivier-w/bandscope/internal/bands"
)

// formatPosition formats seconds as m:ss.
func formatPosition(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// visibleWindow returns the displayed fractions of a track of the given
// length when span seconds are shown centred on center. The result may
// reach outside [0,1] near the ends of the track.
func visibleWindow(center, span, length float64) (first, last float64) {
	if length <= 0 {
		return 0, 0
	}
	return (center - span/2) / length, (center + span/2) / length
}

func (m Model) renderLegend() string {
	var b strings.Builder
	for _, band := range bands.All {
		if band > 0 {
			b.WriteString("  ")
		}
		b.WriteString(swatch(m.hex[band]))
		b.WriteByte(' ')
		label := fmt.Sprintf("%s %.2f", band, m.eq[band])
		if m.killed[band] {
			b.WriteString(killedStyle.Render(label))
		} else {
			b.WriteString(statusStyle.Render(label))
		}
	}
	b.WriteString(statusStyle.Render(fmt.Sprintf("    gain %.2f  %s  zoom %.1fs",
		m.master, m.alignment, m.zoom)))
	return b.String()
}
