package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
	"github.com/vovakirdan/arkanoid/internal/progress"
	"github.com/vovakirdan/arkanoid/internal/registry"
)

type screen int

const (
	screenMenu screen = iota
	screenLevels
	screenGame
	screenScores
)

// NewTracker builds the progress tracker for one mode from the session stores.
func NewTracker(opts Options, mode string) *progress.Tracker {
	var local progress.Local
	if opts.Store != nil {
		local = opts.Store
	}
	var remote progress.Remote
	if opts.Sync != nil {
		remote = opts.Sync
	}
	return progress.New(progress.Options{
		Profile:  opts.Profile,
		Mode:     mode,
		MaxLevel: levelgen.MaxLevels,
		Local:    local,
		Remote:   remote,
		Logger:   opts.logger(),
	})
}

// SessionModel manages the full flow: menu -> level select -> game -> menu.
// It is the top-level model for the menu command and for SSH sessions.
type SessionModel struct {
	opts       Options
	config     core.RuntimeConfig
	screen     screen
	menu       MenuModel
	levels     LevelSelectModel
	scoreboard ScoreboardModel
	game       *GameModel
	gameID     string
	tracker    *progress.Tracker
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts Options) SessionModel {
	if opts.Profile == "" {
		opts.Profile = cfg.Profile
	}
	cfg.Profile = opts.Profile
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, cfg, opts.Profile),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), watchConfig(m.opts.Watcher))
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case configChangedMsg:
		if m.screen == screenGame && m.game != nil {
			g := m.game.reloadConfig()
			m.game = &g
		}
		return m, watchConfig(m.opts.Watcher)
	case configErrorMsg:
		m.opts.logger().Warn("config watcher error", "err", msg.err)
		return m, watchConfig(m.opts.Watcher)
	case trackerSettledMsg:
		// A remote load may have raised the stored marks.
		if m.screen == screenMenu {
			cursor := m.menu.cursor
			m.menu = NewMenuModel(m.opts.Store, m.config, m.opts.Profile)
			m.menu.cursor = min(cursor, max(len(m.menu.items)-1, 0))
		}
		return m, nil
	}

	switch m.screen {
	case screenLevels:
		return m.updateLevels(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// trackerSettledMsg reports that a dropped tracker finished its remote calls.
type trackerSettledMsg struct{}

// settleTracker hands t to a background command that waits for its pending
// remote calls. The session no longer touches t afterwards.
func settleTracker(t *progress.Tracker) tea.Cmd {
	return func() tea.Msg {
		t.Wait()
		return trackerSettledMsg{}
	}
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.menu = NewMenuModel(m.opts.Store, m.config, m.opts.Profile)
	cmd := m.menu.Init()
	if m.tracker != nil {
		cmd = tea.Batch(cmd, settleTracker(m.tracker))
		m.tracker = nil
	}
	return m, cmd
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.opts.Profile, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		item := m.menu.Selected()
		mode, err := levelgen.ParseMode(item.GameID)
		if err != nil {
			return m.toMenu()
		}
		m.gameID = item.GameID
		m.tracker = NewTracker(m.opts, item.GameID)
		m.levels = NewLevelSelectModel(mode, item.Title, m.tracker, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLevels
		return m, m.levels.Init()
	}
	return m, cmd
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	if lm, ok := next.(LevelSelectModel); ok {
		m.levels = lm
	}

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.levels.WantsBack():
		return m.toMenu()

	case m.levels.Chosen() > 0:
		game, err := registry.Create(m.gameID)
		if err != nil {
			return m.toMenu()
		}
		cfg := m.config
		cfg.StartLevel = m.levels.Chosen()
		cfg.Progress = m.tracker
		cfg.Seed = time.Now().UnixNano()

		// The session owns the watcher so a single wait is pending at a time.
		opts := m.opts
		opts.Watcher = nil
		g := NewGameModel(game, cfg, opts)
		m.game = &g
		m.screen = screenGame
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenLevels:
		return m.levels.View()
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the interactive menu flow until the player quits.
func RunSession(cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
