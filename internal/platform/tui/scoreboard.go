package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arkanoid/internal/registry"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

const scoreLimit = 100

var (
	boardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
)

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up, Down key.Binding
	Mode     key.Binding
	OnlyMine key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Mode, k.OnlyMine, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Mode:     key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l"), key.WithHelp("tab", "mode")),
		OnlyMine: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mine/all")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best runs of each mode.
type ScoreboardModel struct {
	store    *storage.Store
	profile  string
	modes    []registry.GameInfo
	current  int
	onlyMine bool
	scores   []storage.ScoreEntry
	stats    map[string]*storage.GameStats

	table  table.Model
	keys   ScoreboardKeyMap
	help   help.Model
	width  int
	height int

	back     bool
	quitting bool
}

// NewScoreboardModel loads the scores of the first mode. A nil store shows
// an empty board.
func NewScoreboardModel(store *storage.Store, profile string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:   store,
		profile: profile,
		modes:   registry.List(),
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	if store != nil {
		m.stats, _ = store.GameStats()
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) modeID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.current].ID
}

func (m *ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Lvl", Width: 4},
		{Title: "Date", Width: 12},
	}
	// Player takes what is left of the terminal, up to a point.
	if spare := m.width - 60; spare > 0 {
		cols[1].Width += min(spare, 16)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	return table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
		table.WithStyles(styles),
	)
}

// reload fetches the current mode, limited to the profile when filtering.
func (m *ScoreboardModel) reload() {
	m.scores = nil
	if m.store != nil && m.modeID() != "" {
		var (
			scores []storage.ScoreEntry
			err    error
		)
		if m.onlyMine {
			scores, err = m.store.ProfileScores(m.modeID(), m.profile, scoreLimit)
		} else {
			scores, err = m.store.TopScores(m.modeID(), scoreLimit)
		}
		if err == nil {
			m.scores = scores
		}
	}

	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			s.Profile,
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Level),
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil
		case key.Matches(msg, m.keys.Mode):
			if n := len(m.modes); n > 0 {
				m.current = (m.current + 1) % n
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.OnlyMine):
			m.onlyMine = !m.onlyMine
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")

	var body string
	if len(m.scores) == 0 {
		body = dimStyle.Italic(true).Padding(1, 4).Render(m.emptyText())
	} else {
		body = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardBorder.Render(body)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) emptyText() string {
	if m.onlyMine {
		return fmt.Sprintf("No runs by %s yet.", m.profile)
	}
	return "No scores recorded yet.\nFinish a run to set one!"
}

// statsLine summarizes every run of the selected mode.
func (m ScoreboardModel) statsLine() string {
	gs := m.stats[m.modeID()]
	if gs == nil {
		return "no runs yet"
	}
	line := fmt.Sprintf("%d runs  best %d  avg %.0f  furthest level %d", gs.GamesCount, gs.HighScore, gs.AvgScore, gs.BestLevel)
	if m.onlyMine {
		line += "  (showing " + m.profile + ")"
	}
	return line
}

// IsGoingBack reports whether the player left the board.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the player quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
