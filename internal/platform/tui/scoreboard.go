package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const (
	topScoresLimit = 100
	recentLimit    = 5
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll key.Binding
	Mode   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Mode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Mode: key.NewBinding(
			key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"),
			key.WithHelp("←/→ tab", "mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreTab is one scored mode on the scoreboard.
type scoreTab struct {
	info  registry.GameInfo
	stats *storage.GameStats
}

// label names the tab, marking shared-keyboard modes with their seat count.
func (t scoreTab) label() string {
	if t.info.Humans > 1 {
		return fmt.Sprintf("%s %dP", t.info.Title, t.info.Humans)
	}
	return t.info.Title
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	emptyStyle      = menuDimStyle.Italic(true).Padding(1, 2)
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardModel is the Bubble Tea model for the high score screen. It
// shows one scored mode at a time: its best rounds, its running totals and
// the last few sessions.
type ScoreboardModel struct {
	store  *storage.Store
	tabs   []scoreTab
	active int

	scores []storage.ScoreEntry
	recent []storage.SessionRecord
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard over every scored mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var tabs []scoreTab
	for _, info := range registry.List() {
		if !info.Scored {
			continue
		}
		tab := scoreTab{info: info}
		if store != nil {
			if stats, err := store.GetGameStats(info.ID); err == nil {
				tab.stats = stats
			}
		}
		tabs = append(tabs, tab)
	}

	m := ScoreboardModel{
		store:  store,
		tabs:   tabs,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newScoreTable(width, height)
	m.selectTab(0)
	return m
}

// newScoreTable sizes the top score table for the window.
func newScoreTable(width, height int) table.Model {
	dateWidth := 12
	if width >= 70 {
		dateWidth = 18
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 10},
			{Title: "Lines", Width: 7},
			{Title: "When", Width: dateWidth},
		}),
		table.WithFocused(true),
		// title, tabs, stats, recent sessions and help take the rest
		table.WithHeight(max(height-16, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// selectTab switches to tab i, wrapping at both ends, and reloads its rows.
func (m *ScoreboardModel) selectTab(i int) {
	m.scores, m.recent = nil, nil
	if len(m.tabs) == 0 {
		m.table.SetRows(nil)
		return
	}
	m.active = (i%len(m.tabs) + len(m.tabs)) % len(m.tabs)

	if m.store != nil {
		id := m.tabs[m.active].info.ID
		if scores, err := m.store.TopScores(id, topScoresLimit); err == nil {
			m.scores = scores
		}
		if recent, err := m.store.RecentSessions(id, recentLimit); err == nil {
			m.recent = recent
		}
	}

	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(s.Score),
			fmt.Sprint(s.Lines),
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Mode):
			step := 1
			switch msg.String() {
			case "left", "h", "shift+tab":
				step = -1
			}
			m.selectTab(m.active + step)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(msg.Width, msg.Height)
		m.selectTab(m.active)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerStyled(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	if len(m.tabs) == 0 {
		b.WriteString(centerText("No scored modes.", m.width))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(centerStyled(m.tabLine(), m.width))
	b.WriteString("\n")
	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	body := emptyStyle.Render("No scores recorded yet.\nTop out once to set a high score!")
	if len(m.scores) > 0 {
		body = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panelStyle.Render(body)))
	b.WriteString("\n")

	for _, line := range m.recentLines() {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(menuDimStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// tabLine renders every mode tab, or only the active one between arrows
// when the row does not fit.
func (m ScoreboardModel) tabLine() string {
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			tabs[i] = activeTabStyle.Render(t.label())
		} else {
			tabs[i] = tabStyle.Render(t.label())
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = "< " + activeTabStyle.Render(m.tabs[m.active].label()) + " >"
	}
	return line
}

// statsLine summarizes the active mode's history.
func (m ScoreboardModel) statsLine() string {
	st := m.tabs[m.active].stats
	if st == nil || st.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Games: %d  Best: %d  Avg: %.0f  Best lines: %d  Last: %s",
		st.GamesCount, st.HighScore, st.AvgScore, st.BestLines,
		st.LastPlayed.Format("Jan 02 15:04"))
}

// recentLines lists the last sessions of the active mode, one seat per line.
func (m ScoreboardModel) recentLines() []string {
	if len(m.recent) == 0 {
		return nil
	}
	lines := []string{"", "Recent sessions"}
	for _, r := range m.recent {
		who := fmt.Sprintf("P%d", r.Player)
		if r.CPU {
			who = "CPU"
		}
		lines = append(lines, fmt.Sprintf("%-4s %7d pts %4d lines %3d top outs  %s",
			who, r.Score, r.Lines, r.TopOuts, r.CreatedAt.Format("Jan 02 15:04")))
	}
	return lines
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
