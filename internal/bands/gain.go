package bands

// Readable is a control value polled once per frame.
type Readable interface {
	Get() float64
}

// Value is a constant Readable.
type Value float64

func (v Value) Get() float64 { return float64(v) }

// Func adapts a function to Readable.
type Func func() float64

func (f Func) Get() float64 { return f() }

// Controls are the control-layer inputs of one deck. Any readable may be
// nil when the control is not bound.
type Controls struct {
	EQ     [Count]Readable
	Master Readable
	Kill   [Count]Readable
}

// VisualGains are the global display multipliers applied on top of the
// deck's own gains.
type VisualGains struct {
	All  float64
	Band [Count]float64
}

// DefaultVisualGains leaves every gain untouched.
func DefaultVisualGains() VisualGains {
	return VisualGains{All: 1, Band: [Count]float64{1, 1, 1}}
}

// State is the effective gain and kill state for one frame.
type State struct {
	Master float64
	Gain   [Count]float64
	Killed [Count]bool
}

// NeutralState has unit gains and no kills.
func NeutralState() State {
	return State{Master: 1, Gain: [Count]float64{1, 1, 1}}
}

// Resolve samples the controls and combines them with the visual gains.
// Band EQ values are only used when all three are bound; otherwise every
// band starts from 1.0. Visual gains multiply, they never replace.
func Resolve(c Controls, v VisualGains) State {
	st := NeutralState()

	if c.EQ[Low] != nil && c.EQ[Mid] != nil && c.EQ[High] != nil {
		for _, b := range All {
			st.Gain[b] = c.EQ[b].Get()
		}
	}
	if c.Master != nil {
		st.Master = c.Master.Get()
	}

	st.Master *= v.All
	for _, b := range All {
		st.Gain[b] *= v.Band[b]
		if c.Kill[b] != nil {
			st.Killed[b] = c.Kill[b].Get() != 0
		}
	}
	return st
}
