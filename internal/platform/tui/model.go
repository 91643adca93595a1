package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arkanoid/internal/audio"
	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/registry"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

// noticeTicks is how long a status notice stays on the help line.
const noticeTicks = 120

// Options holds the collaborators shared by every screen of a session.
type Options struct {
	Store   *storage.Store        // Local scores and progress, may be nil
	Sync    *storage.SyncProgress // Remote progress copy, may be nil
	Audio   audio.Sink            // Nil means silent
	Watcher *config.Watcher       // Reloads the game config on change, may be nil
	Profile string
	Logger  *log.Logger
}

func (o Options) audio() audio.Sink {
	if o.Audio == nil {
		return audio.Nop{}
	}
	return o.Audio
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// GameModel is the Bubble Tea model running one game mode.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	opts     Options
	config   core.RuntimeConfig
	keys     GameKeyMap
	help     help.Model
	showHelp bool

	input      core.InputFrame
	hold       holdState
	pointer    float64
	hasPointer bool

	loop       uint64
	lastTick   time.Time
	gameState  core.GameState
	scoreSaved bool
	notice     string
	noticeLeft int
	quitting   bool
	backToMenu bool
	standalone bool // Back quits instead of returning to a menu
}

// NewGameModel creates a model for the given game. The game is reset in Init.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Profile == "" {
		cfg.Profile = opts.Profile
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		opts:   opts,
		config: cfg,
		keys:   DefaultGameKeyMap(),
		help:   h,
		input:  core.NewInputFrame(),
		loop:   nextLoop(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.loop)}
	if m.opts.Watcher != nil {
		cmds = append(cmds, watchConfig(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			m.pointer = pointerFraction(msg.X, m.screen.Width())
			m.hasPointer = true
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case configChangedMsg:
		m = m.reloadConfig()
		return m, watchConfig(m.opts.Watcher)

	case configErrorMsg:
		m.opts.logger().Warn("config watcher error", "err", msg.err)
		return m, watchConfig(m.opts.Watcher)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	}

	switch a := m.keys.gameAction(msg); a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		m.hold.release()
		return m, nil
	case core.ActionLeft, core.ActionRight:
		m.hold.press(a)
		m.hasPointer = false
	case core.ActionNone:
	default:
		m.input.Set(a)
	}
	return m, nil
}

// layout sizes the game screen to leave room for the status lines.
func (m *GameModel) layout() {
	rows := 1
	if m.showHelp {
		rows = lipgloss.Height(m.help.FullHelpView(m.keys.FullHelp()))
	}
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-rows, 0))
}

// handleTick runs one simulation step with the input gathered since the last
// tick, scaled by the time that actually passed. Ticks are not fixed-rate:
// a slow terminal or SSH link delivers them late.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}
	m.hold.apply(&m.input)
	if m.hasPointer {
		m.input.SetPointer(m.pointer)
	}
	if !m.lastTick.IsZero() && now.After(m.lastTick) {
		m.input.Elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	result := m.game.Step(m.input)
	m.gameState = result.State
	sink := m.opts.audio()
	for _, cue := range result.Cues {
		sink.Play(cue)
	}
	m.saveScore()

	if m.noticeLeft > 0 {
		m.noticeLeft--
	}
	m.input.Clear()
	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveScore records a finished run once. A new run re-arms it.
func (m *GameModel) saveScore() {
	if !m.gameState.GameOver {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.opts.Store.SaveScore(m.game.ID(), m.config.Profile, m.gameState.Score, m.gameState.Level); err != nil {
		m.opts.logger().Warn("cannot save score", "game", m.game.ID(), "err", err)
	}
}

func (m GameModel) reloadConfig() GameModel {
	r, ok := m.game.(registry.Reloader)
	if !ok {
		return m
	}
	if err := r.ReloadConfig(); err != nil {
		m.opts.logger().Warn("config reload failed", "err", err)
		m.setNotice("config error, keeping previous settings")
		return m
	}
	m.setNotice("config reloaded, applies from next level")
	return m
}

func (m *GameModel) setNotice(s string) {
	m.notice = s
	m.noticeLeft = noticeTicks
}

// saveScreenshot writes the current frame as plain text under ~/.arkanoid/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arkanoid", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.logger().Warn("cannot create screenshot dir", "err", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.opts.logger().Warn("cannot save screenshot", "err", err)
		return
	}
	m.setNotice("saved " + name)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the game frame and a status line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)

	status := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.showHelp {
		status = m.help.FullHelpView(m.keys.FullHelp())
	}
	if m.noticeLeft > 0 {
		status = m.notice
	}
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(status)
}

// State returns the latest game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone game program.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
