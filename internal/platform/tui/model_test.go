package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arkanoid/internal/audio"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

type fakeGame struct {
	frames    []core.InputFrame
	state     core.GameState
	cues      []core.Cue
	resets    int
	reloads   int
	reloadErr error
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen) { dst.Clear(); dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) ReloadConfig() error { g.reloads++; return g.reloadErr }
func (g *fakeGame) last() core.InputFrame { return g.frames[len(g.frames)-1] }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state, Cues: g.cues}
}

type recordingSink struct{ played []core.Cue }

func (s *recordingSink) Play(c core.Cue) { s.played = append(s.played, c) }

var _ audio.Sink = (*recordingSink)(nil)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestGameModel(g *fakeGame, opts Options) GameModel {
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m := NewGameModel(g, cfg, opts)
	m.Init()
	return m
}

// send feeds one message and returns the updated game model.
func send(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	return send(t, m, TickMsg{Loop: m.loop})
}

func TestTickCarriesElapsedTime(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, Options{})
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	m = send(t, m, TickMsg{Time: start, Loop: m.loop})
	if g.last().Elapsed != 0 {
		t.Errorf("first tick Elapsed = %v, expected 0", g.last().Elapsed)
	}

	m = send(t, m, TickMsg{Time: start.Add(16 * time.Millisecond), Loop: m.loop})
	if g.last().Elapsed != 16*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 16ms", g.last().Elapsed)
	}

	m = send(t, m, TickMsg{Time: start.Add(116 * time.Millisecond), Loop: m.loop})
	if g.last().Elapsed != 100*time.Millisecond {
		t.Errorf("Elapsed after a stall = %v, expected 100ms", g.last().Elapsed)
	}

	// A clock step backwards falls back to one nominal tick.
	send(t, m, TickMsg{Time: start, Loop: m.loop})
	if g.last().Elapsed != 0 {
		t.Errorf("Elapsed after clock step back = %v, expected 0", g.last().Elapsed)
	}
}

func TestHoldStateDecay(t *testing.T) {
	var h holdState
	h.press(core.ActionLeft)

	for i := range holdTicks {
		f := core.NewInputFrame()
		h.apply(&f)
		if !f.Has(core.ActionLeft) {
			t.Fatalf("tick %d: Left not held", i)
		}
	}
	f := core.NewInputFrame()
	h.apply(&f)
	if f.Has(core.ActionLeft) {
		t.Error("Left still held after the hold window")
	}

	h.press(core.ActionLeft)
	h.press(core.ActionRight)
	f = core.NewInputFrame()
	h.apply(&f)
	if f.Has(core.ActionLeft) || !f.Has(core.ActionRight) {
		t.Errorf("after Right press: Left=%v Right=%v, expected only Right", f.Has(core.ActionLeft), f.Has(core.ActionRight))
	}
}

func TestPointerFraction(t *testing.T) {
	tests := []struct {
		x, width int
		expected float64
	}{
		{0, 80, 0.5 / 80},
		{39, 80, 0.49375},
		{79, 80, 79.5 / 80},
		{200, 80, 1},
		{-5, 80, 0},
		{3, 0, 0.5},
	}
	for _, tt := range tests {
		if got := pointerFraction(tt.x, tt.width); got != tt.expected {
			t.Errorf("pointerFraction(%d, %d) = %v, expected %v", tt.x, tt.width, got, tt.expected)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "xy", core.ColorRed)

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "xy"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, missing %q", out, want)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", strings.Count(out, "\n"))
	}
}

func TestGameModelForwardsActions(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, Options{})

	m = send(t, m, runeKey('p'))
	m = tick(t, m)
	if !g.last().Has(core.ActionPause) {
		t.Error("pause key did not reach the game")
	}

	m = tick(t, m)
	if g.last().Has(core.ActionPause) {
		t.Error("pause fired twice")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(t, m)
	m = tick(t, m)
	if !g.last().Has(core.ActionLeft) {
		t.Error("left key not held across ticks")
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
}

func TestGameModelIgnoresStaleTick(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, Options{})
	m = send(t, m, TickMsg{Loop: m.loop + 1})
	if len(g.frames) != 0 {
		t.Errorf("steps = %d, expected 0 for a foreign tick", len(g.frames))
	}
}

func TestGameModelMousePointer(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, Options{})

	m = send(t, m, tea.MouseMsg{X: 40, Action: tea.MouseActionMotion})
	m = tick(t, m)
	in := g.last()
	if !in.HasPointer || in.PointerX != pointerFraction(40, 80) {
		t.Errorf("pointer = %v/%v, expected %v", in.HasPointer, in.PointerX, pointerFraction(40, 80))
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = tick(t, m)
	if g.last().HasPointer {
		t.Error("key press should drop the pointer")
	}
}

func TestGameModelPlaysCues(t *testing.T) {
	g := &fakeGame{cues: []core.Cue{core.CueBrick, core.CueWall}}
	sink := &recordingSink{}
	m := newTestGameModel(g, Options{Audio: sink})
	tick(t, m)

	if len(sink.played) != 2 || sink.played[0] != core.CueBrick {
		t.Errorf("played = %v, expected [brick wall]", sink.played)
	}
}

func TestGameModelSavesScoreOncePerRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{state: core.GameState{Score: 120, Level: 4, GameOver: true}}
	m := newTestGameModel(g, Options{Store: store, Profile: "alice"})
	m = tick(t, m)
	m = tick(t, m)

	scores, _ := store.TopScores("fake", 10)
	if len(scores) != 1 {
		t.Fatalf("scores = %d, expected 1", len(scores))
	}
	if scores[0].Profile != "alice" || scores[0].Level != 4 || scores[0].Score != 120 {
		t.Errorf("entry = %+v, expected alice/120/level 4", scores[0])
	}

	g.state = core.GameState{Score: 0, Level: 4}
	m = tick(t, m)
	g.state = core.GameState{Score: 300, Level: 4, GameOver: true}
	tick(t, m)

	scores, _ = store.TopScores("fake", 10)
	if len(scores) != 2 {
		t.Errorf("scores = %d, expected 2 after a second run", len(scores))
	}
}

func TestGameModelReloadConfig(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, Options{})

	m = send(t, m, configChangedMsg{path: "breakout.yaml"})
	if g.reloads != 1 {
		t.Errorf("reloads = %d, expected 1", g.reloads)
	}
	if !strings.Contains(m.View(), "config reloaded") {
		t.Error("View() missing reload notice")
	}

	g.reloadErr = errors.New("bad yaml")
	m = send(t, m, configChangedMsg{path: "breakout.yaml"})
	if !strings.Contains(m.View(), "config error") {
		t.Error("View() missing reload error notice")
	}
}

func TestGameModelBack(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, Options{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("BackToMenu() = %v, IsQuitting() = %v, expected true, false", m.BackToMenu(), m.IsQuitting())
	}

	standalone := newTestGameModel(&fakeGame{}, Options{})
	standalone.standalone = true
	standalone = send(t, standalone, tea.KeyMsg{Type: tea.KeyEsc})
	if !standalone.IsQuitting() {
		t.Error("standalone back should quit")
	}
}

func TestGameModelHelpToggleResizes(t *testing.T) {
	m := newTestGameModel(&fakeGame{}, Options{})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Height() != 29 {
		t.Errorf("screen height = %d, expected 29", m.screen.Height())
	}
	m = send(t, m, runeKey('?'))
	if m.screen.Height() >= 29 {
		t.Errorf("screen height = %d, expected less than 29 with full help", m.screen.Height())
	}
}
