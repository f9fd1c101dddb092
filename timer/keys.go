package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay    key.Binding
	onTask        key.Binding
	offTask       key.Binding
	transitioning key.Binding
	endEpisode    key.Binding
	cancelEpisode key.Binding
	notes         key.Binding
	prompt        key.Binding
	end           key.Binding
	quit          key.Binding

	confirm         key.Binding
	dismiss         key.Binding
	rateEffective   key.Binding
	ratePartial     key.Binding
	rateIneffective key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "pause/resume"),
	),
	onTask: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "on task"),
	),
	offTask: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "off task"),
	),
	transitioning: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "transitioning"),
	),
	endEpisode: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "end episode"),
	),
	cancelEpisode: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "discard episode"),
	),
	notes: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "notes"),
	),
	prompt: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "log prompt"),
	),
	end: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "abandon"),
	),
	confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	rateEffective: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "effective"),
	),
	ratePartial: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "partially"),
	),
	rateIneffective: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "ineffective"),
	),
}
