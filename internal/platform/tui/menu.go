package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/registry"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff1493"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var modeBlurbs = map[string]string{
	"classic": "growing grids, walls, a new twist every level",
	"modern":  "dense 80x40 fields, balls pierce bricks, ball showers",
}

// MenuItem is one playable mode with the profile's standing in it.
type MenuItem struct {
	GameID   string
	Title    string
	Unlocked int // Highest unlocked level, 0 when nothing is stored
	Best     int // Best score on this machine, 0 when none
}

// MenuModel picks the mode to play. The owner reads Selected,
// WantsScoreboard and IsQuitting after each update.
type MenuModel struct {
	items   []MenuItem
	cursor  int
	profile string
	width   int
	keys    MenuKeyMap
	help    help.Model

	selected   *MenuItem
	scoreboard bool
	quitting   bool
}

// NewMenuModel lists the registered modes with unlock marks and best scores
// read from store, which may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, profile string) MenuModel {
	var (
		unlocked map[string]int
		stats    map[string]*storage.GameStats
	)
	if store != nil {
		unlocked, _ = store.Progress(profile)
		stats, _ = store.GameStats()
	}

	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title, Unlocked: unlocked[g.ID]}
		if gs := stats[g.ID]; gs != nil {
			item.Best = gs.HighScore
		}
		items = append(items, item)
	}

	return MenuModel{
		items:   items,
		profile: profile,
		width:   cfg.ScreenW,
		keys:    DefaultMenuKeyMap(),
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(m.cursor+1, len(m.items)-1)
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				m.selected = &item
			}
		case key.Matches(msg, m.keys.Scores):
			m.scoreboard = true
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("A R K A N O I D"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("profile: "+m.profile), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("%-18s", item.Title)
		if item.Unlocked > 0 {
			line += fmt.Sprintf(" unlocked %3d", item.Unlocked)
		} else {
			line += strings.Repeat(" ", 13)
		}
		if item.Best > 0 {
			line += fmt.Sprintf("  best %6d", item.Best)
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(modeBlurbs[m.items[m.cursor].GameID]), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen mode, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the player quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the scoreboard was requested.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}
