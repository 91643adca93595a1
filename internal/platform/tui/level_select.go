package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

const (
	levelColumns  = 10
	refreshPeriod = 500 * time.Millisecond
)

var lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

type refreshMsg struct{}

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshPeriod, func(time.Time) tea.Msg { return refreshMsg{} })
}

// LevelSelectModel lets the player pick any unlocked level of one mode.
type LevelSelectModel struct {
	mode     levelgen.Mode
	title    string
	progress core.LevelProgress
	cursor   int // 0-based level index
	width    int
	height   int
	keys     MenuKeyMap
	help     help.Model
	chosen   int
	back     bool
	quitting bool
}

// NewLevelSelectModel creates a level picker. The cursor starts on the
// highest unlocked level.
func NewLevelSelectModel(mode levelgen.Mode, title string, progress core.LevelProgress, width, height int) LevelSelectModel {
	m := LevelSelectModel{
		mode:     mode,
		title:    title,
		progress: progress,
		width:    width,
		height:   height,
		keys:     DefaultMenuKeyMap(),
		help:     help.New(),
	}
	m.cursor = m.unlocked() - 1
	return m
}

func (m LevelSelectModel) unlocked() int {
	if m.progress == nil {
		return levelgen.MaxLevels
	}
	return core.Clamp(m.progress.Unlocked(), 1, levelgen.MaxLevels)
}

// Init starts polling for asynchronous progress updates.
func (m LevelSelectModel) Init() tea.Cmd {
	return refreshCmd()
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case refreshMsg:
		if m.progress != nil {
			m.progress.Poll()
		}
		if m.chosen != 0 || m.back || m.quitting {
			return m, nil
		}
		return m, refreshCmd()
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := levelgen.MaxLevels - 1
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.back = true
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursor = min(m.cursor+1, last)
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-levelColumns, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+levelColumns, last)
	case key.Matches(msg, m.keys.Select):
		if m.cursor+1 <= m.unlocked() {
			m.chosen = m.cursor + 1
		}
	}
	return m, nil
}

// View renders the level grid around the cursor.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("unlocked %d / %d", m.unlocked(), levelgen.MaxLevels)), m.width))
	b.WriteString("\n\n")

	totalRows := (levelgen.MaxLevels + levelColumns - 1) / levelColumns
	visible := core.Clamp(m.height-10, 3, totalRows)
	cursorRow := m.cursor / levelColumns
	first := core.Clamp(cursorRow-visible/2, 0, totalRows-visible)

	unlocked := m.unlocked()
	for row := first; row < first+visible; row++ {
		var line strings.Builder
		for col := range levelColumns {
			idx := row*levelColumns + col
			if idx >= levelgen.MaxLevels {
				break
			}
			cell := fmt.Sprintf(" %3d ", idx+1)
			switch {
			case idx == m.cursor:
				cell = selectedStyle.Render(fmt.Sprintf("[%3d]", idx+1))
			case idx+1 > unlocked:
				cell = lockedStyle.Render(cell)
			}
			line.WriteString(cell)
		}
		b.WriteString(centerText(line.String(), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.levelInfo(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// levelInfo describes the level under the cursor.
func (m LevelSelectModel) levelInfo() string {
	level := m.cursor + 1
	if level > m.unlocked() {
		return lockedStyle.Render(fmt.Sprintf("Level %d is locked", level))
	}
	spec, err := levelgen.Generate(m.mode, level)
	if err != nil {
		return ""
	}
	info := fmt.Sprintf("Level %d  %s  %dx%d", level, spec.Pattern, spec.Cols, spec.Rows)
	if spec.Modifier != levelgen.ModNone {
		info += "  twist: " + strings.ReplaceAll(spec.Modifier.String(), "_", " ")
	}
	return info
}

// Chosen returns the selected level, 0 while still choosing.
func (m LevelSelectModel) Chosen() int {
	return m.chosen
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// levelPicker runs a LevelSelectModel as its own program.
type levelPicker struct{ LevelSelectModel }

func (p levelPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.LevelSelectModel.Update(msg)
	if lm, ok := next.(LevelSelectModel); ok {
		p.LevelSelectModel = lm
	}
	if p.Chosen() > 0 || p.WantsBack() {
		return p, tea.Quit
	}
	return p, cmd
}

// RunLevelSelect shows the level grid and returns the chosen level,
// or 0 when the player backed out.
func RunLevelSelect(mode levelgen.Mode, title string, progress core.LevelProgress, cfg core.RuntimeConfig) (int, error) {
	p := tea.NewProgram(
		levelPicker{NewLevelSelectModel(mode, title, progress, cfg.ScreenW, cfg.ScreenH)},
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	if lp, ok := final.(levelPicker); ok {
		return lp.Chosen(), nil
	}
	return 0, nil
}
