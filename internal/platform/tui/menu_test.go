package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func init() {
	registry.Register("stub", func() registry.Game {
		return &stubGame{humans: 2, scored: true}
	})
	registry.Register("stub_demo", func() registry.Game {
		return &stubGame{}
	})
}

func TestMenuListsModes(t *testing.T) {
	store := openTestStore(t)
	_, err := store.SaveScore("stub", 77)
	require.NoError(t, err)

	m := NewMenuModel(store, core.DefaultConfig())
	require.NotEmpty(t, m.items)

	var found bool
	for _, item := range m.items {
		if item.GameID == "stub" {
			found = true
			assert.Equal(t, 77, item.HighScore)
			assert.Equal(t, 2, item.Humans)
		}
	}
	assert.True(t, found)
	assert.Contains(t, m.View(), "Stub")
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	require.NotNil(t, m.Selected())
	assert.NotNil(t, cmd)
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, next.(MenuModel).WantsScoreboard())

	m = NewMenuModel(nil, core.DefaultConfig())
	next, _ = m.Update(runeKey("q"))
	assert.True(t, next.(MenuModel).IsQuitting())
}

func TestSessionModelFlow(t *testing.T) {
	s := NewSessionModel(nil, core.DefaultConfig(), nil)
	for i, item := range s.menu.items {
		if item.GameID == "stub" {
			s.menu.cursor = i
		}
	}

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	require.NotNil(t, s.gameModel)
	assert.NotNil(t, cmd)
	assert.Equal(t, LayoutDuo, s.gameModel.keyMapper.Layout())
	assert.Contains(t, s.View(), "stub")

	stub := s.gameModel.game.(*stubGame)
	stub.state.Paused = true
	next, _ = s.Update(TickMsg{ID: s.gameModel.tickID})
	s = next.(SessionModel)

	next, _ = s.Update(runeKey("b"))
	s = next.(SessionModel)
	assert.Nil(t, s.gameModel)
	assert.False(t, s.quitting)

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	require.NotNil(t, s.scoreboard)

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	assert.Nil(t, s.scoreboard)
}

func TestScoreboardShowsScoredModes(t *testing.T) {
	store := openTestStore(t)
	_, err := store.SaveScoreWithLines("stub", 300, 12)
	require.NoError(t, err)

	sb := NewScoreboardModel(store, 100, 30)

	var found bool
	for _, tab := range sb.tabs {
		assert.NotEqual(t, "stub_demo", tab.info.ID)
		if tab.info.ID == "stub" {
			found = true
			assert.Equal(t, "Stub 2P", tab.label())
		}
	}
	require.True(t, found)
	sb.selectTab(indexOfTab(sb, "stub"))

	require.Len(t, sb.scores, 1)
	assert.Equal(t, 12, sb.scores[0].Lines)
	stats := sb.tabs[sb.active].stats
	require.NotNil(t, stats)
	assert.Equal(t, 300, stats.HighScore)
	assert.Contains(t, sb.View(), "Best lines: 12")
	assert.Contains(t, sb.View(), "Stub 2P")
}

func TestScoreboardRecentSessions(t *testing.T) {
	store := openTestStore(t)
	_, err := store.SaveSession(storage.SessionRecord{GameID: "stub", Player: 2, Score: 450, Lines: 9, TopOuts: 1})
	require.NoError(t, err)

	sb := NewScoreboardModel(store, 100, 30)
	sb.selectTab(indexOfTab(sb, "stub"))

	require.Len(t, sb.recent, 1)
	view := sb.View()
	assert.Contains(t, view, "Recent sessions")
	assert.Contains(t, view, "P2")
	assert.Contains(t, view, "450 pts")
	assert.Contains(t, view, "No scores recorded yet.")
}

func TestScoreboardModeKeysWrap(t *testing.T) {
	sb := NewScoreboardModel(nil, 100, 30)
	require.NotEmpty(t, sb.tabs)

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(sb.tabs)-1, next.(ScoreboardModel).active)

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, next.(ScoreboardModel).active)

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(ScoreboardModel).IsGoingBack())
	assert.Empty(t, next.View())
}

// indexOfTab returns the tab position of a mode, or -1.
func indexOfTab(sb ScoreboardModel, id string) int {
	for i, tab := range sb.tabs {
		if tab.info.ID == id {
			return i
		}
	}
	return -1
}
