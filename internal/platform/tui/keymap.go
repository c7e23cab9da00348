package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Layout selects how keys are split between local players.
type Layout int

const (
	// LayoutSingle gives the whole keyboard to player 1.
	LayoutSingle Layout = iota
	// LayoutDuo splits the keyboard: player 1 on the left hand, player 2 on
	// the right.
	LayoutDuo
)

// binding is one key routed to one player's action.
type binding struct {
	player core.PlayerID
	action core.Action
}

var singleKeys = map[string]binding{
	"left":  {core.Player1, core.ActionLeft},
	"a":     {core.Player1, core.ActionLeft},
	"right": {core.Player1, core.ActionRight},
	"d":     {core.Player1, core.ActionRight},
	"up":    {core.Player1, core.ActionRotateCW},
	"w":     {core.Player1, core.ActionRotateCW},
	"x":     {core.Player1, core.ActionRotateCW},
	"z":     {core.Player1, core.ActionRotateCCW},
	"down":  {core.Player1, core.ActionSoftDrop},
	"s":     {core.Player1, core.ActionSoftDrop},
	" ":     {core.Player1, core.ActionHardDrop},
	"p":     {core.Player1, core.ActionPause},
	"esc":   {core.Player1, core.ActionPause},
	"r":     {core.Player1, core.ActionRestart},
	"b":     {core.Player1, core.ActionBack},
}

// duoKeys keeps the classic two-player layout. Shared keys act for player 1.
var duoKeys = map[string]binding{
	"a": {core.Player1, core.ActionLeft},
	"d": {core.Player1, core.ActionRight},
	"q": {core.Player1, core.ActionRotateCCW},
	"e": {core.Player1, core.ActionRotateCW},
	"s": {core.Player1, core.ActionSoftDrop},
	"w": {core.Player1, core.ActionHardDrop},

	"h": {core.Player2, core.ActionLeft},
	"k": {core.Player2, core.ActionRight},
	"y": {core.Player2, core.ActionRotateCCW},
	"i": {core.Player2, core.ActionRotateCW},
	"j": {core.Player2, core.ActionSoftDrop},
	"u": {core.Player2, core.ActionHardDrop},

	"p":   {core.Player1, core.ActionPause},
	"esc": {core.Player1, core.ActionPause},
	"r":   {core.Player1, core.ActionRestart},
	"b":   {core.Player1, core.ActionBack},
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	layout Layout
	keys   map[string]binding
}

// NewKeyMapper creates a key mapper with the single player layout.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperFor(LayoutSingle)
}

// NewKeyMapperFor creates a key mapper with the given layout.
func NewKeyMapperFor(layout Layout) *KeyMapper {
	km := &KeyMapper{layout: layout, keys: singleKeys}
	if layout == LayoutDuo {
		km.keys = duoKeys
	}
	return km
}

// LayoutFor picks the layout for a mode with the given number of humans.
func LayoutFor(humans int) Layout {
	if humans > 1 {
		return LayoutDuo
	}
	return LayoutSingle
}

// Layout returns the mapper's layout.
func (km *KeyMapper) Layout() Layout {
	return km.layout
}

// MapKey translates a key message to a player and action.
// Returns ActionNone for unbound keys and isQuit for quit requests.
// In the duo layout q belongs to player 1, so only ctrl+c quits.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	k := msg.String()

	switch {
	case k == "ctrl+c":
		return core.Player1, core.ActionQuit, true
	case k == "q" && km.layout == LayoutSingle:
		return core.Player1, core.ActionQuit, true
	}

	if b, ok := km.keys[k]; ok {
		return b.player, b.action, false
	}
	return core.Player1, core.ActionNone, false
}

// MapKeyToFrame updates player 1's input frame based on a key message.
// Keys bound to other players are ignored. Returns true on a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit && player == core.Player1 {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMultiFrame records a key message in the owning player's frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(player, action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MenuKeyMap defines the key bindings for the mode picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Scores, k.Back, k.Quit},
	}
}

// DefaultMenuKeyMap returns default menu key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	keys := DefaultMenuKeyMap()

	switch {
	case key.Matches(msg, keys.Quit):
		return MenuActionQuit
	case key.Matches(msg, keys.Up):
		return MenuActionUp
	case key.Matches(msg, keys.Down):
		return MenuActionDown
	case key.Matches(msg, keys.Select):
		return MenuActionSelect
	case key.Matches(msg, keys.Scores):
		return MenuActionScoreboard
	case key.Matches(msg, keys.Back):
		return MenuActionBack
	}

	return MenuActionNone
}
