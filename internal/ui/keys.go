package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Play      key.Binding
	SeekBack  key.Binding
	SeekFwd   key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Align     key.Binding
	Kill      [3]key.Binding
	GainUp    [3]key.Binding
	GainDown  [3]key.Binding
	MasterUp  key.Binding
	MasterDn  key.Binding
	Reset     key.Binding
	NextTrack key.Binding
	Unload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		SeekBack: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "seek back")),
		SeekFwd:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seek fwd")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Align:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "alignment")),
		Kill: [3]key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "kill low")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "kill mid")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "kill high")),
		},
		GainUp: [3]key.Binding{
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "low +")),
			key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "mid +")),
			key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "high +")),
		},
		GainDown: [3]key.Binding{
			key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "low -")),
			key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "mid -")),
			key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "high -")),
		},
		MasterUp:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "gain +")),
		MasterDn:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "gain -")),
		Reset:     key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset eq")),
		NextTrack: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new track")),
		Unload:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unload")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.ZoomIn, k.ZoomOut, k.Align, k.Kill[0], k.Kill[1], k.Kill[2], k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.SeekBack, k.SeekFwd, k.ZoomIn, k.ZoomOut},
		{k.Align, k.Kill[0], k.Kill[1], k.Kill[2], k.Reset},
		{k.GainUp[0], k.GainDown[0], k.GainUp[1], k.GainDown[1], k.GainUp[2], k.GainDown[2]},
		{k.MasterUp, k.MasterDn, k.NextTrack, k.Unload, k.Help, k.Quit},
	}
}

func isQuit(k keyMap, msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Quit)
}
