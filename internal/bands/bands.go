package bands

import (
	"fmt"
	"strings"

	"github.com/olivier-w/bandscope/internal/waveform"
)

// Band is one of the fixed filtered envelope channels.
type Band uint8

const (
	Low Band = iota
	Mid
	High
)

// Count is the number of bands in the analysis format.
const Count = 3

// All lists the bands in draw order.
var All = [Count]Band{Low, Mid, High}

func (b Band) String() string {
	switch b {
	case Low:
		return "low"
	case Mid:
		return "mid"
	case High:
		return "high"
	default:
		return fmt.Sprintf("band(%d)", uint8(b))
	}
}

// Parse returns the band with the given name.
func Parse(s string) (Band, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "lo", "bass":
		return Low, nil
	case "mid", "mids":
		return Mid, nil
	case "high", "hi", "treble":
		return High, nil
	}
	return 0, fmt.Errorf("unknown band %q (want low, mid or high)", s)
}

// Magnitude picks this band's value out of a sample.
func (b Band) Magnitude(s waveform.Sample) uint8 {
	switch b {
	case Low:
		return s.Low
	case Mid:
		return s.Mid
	default:
		return s.High
	}
}
