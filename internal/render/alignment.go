package render

import (
	"fmt"
	"strings"
)

// Alignment is the vertical anchor of the rendered bars.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignTop
	AlignBottom
)

// ParseAlignment accepts top, bottom or center.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre", "":
		return AlignCenter, nil
	case "top":
		return AlignTop, nil
	case "bottom":
		return AlignBottom, nil
	}
	return 0, fmt.Errorf("unknown alignment %q (want top, bottom or center)", s)
}

// Next cycles center → top → bottom → center.
func (a Alignment) Next() Alignment {
	switch a {
	case AlignCenter:
		return AlignTop
	case AlignTop:
		return AlignBottom
	default:
		return AlignCenter
	}
}

func (a Alignment) String() string {
	switch a {
	case AlignTop:
		return "top"
	case AlignBottom:
		return "bottom"
	default:
		return "center"
	}
}
