// Package tui runs the tetris modes in a terminal through Bubble Tea.
// It maps keys to input frames, drives the tick loop, saves scores and
// serves the same UI over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// ID names the tick loop that scheduled it; a model ignores ticks from
// loops it did not start, such as the one left over from a previous game.
type TickMsg struct {
	ID   int64
	Time time.Time
}

var tickLoops atomic.Int64

// newTickLoop returns a fresh tick loop ID.
func newTickLoop() int64 {
	return tickLoops.Add(1)
}

// tickCmd returns a command that sends a TickMsg after one tick interval.
func tickCmd(id int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
