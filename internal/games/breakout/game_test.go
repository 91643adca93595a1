package breakout

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
	"github.com/vovakirdan/arkanoid/internal/registry"
)

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{"classic", "modern"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("registry.Create(%q) = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
		if _, ok := g.(registry.Reloader); !ok {
			t.Errorf("%s does not implement registry.Reloader", id)
		}
	}
}

func TestGameResetFallsBackToUnlocked(t *testing.T) {
	g := New(levelgen.Classic)
	rc := core.DefaultConfig()
	rc.StartLevel = 9
	rc.Progress = &fakeProgress{unlocked: 4}
	rc.ConfigPath = writeConfig(t, "session:\n  lives: 4\n")

	g.Reset(rc)

	if g.ConfigError() != nil {
		t.Fatalf("ConfigError() = %v", g.ConfigError())
	}
	st := g.State()
	if st.Level != 4 || st.Lives != 4 {
		t.Errorf("State() = %+v, expected level 4 with 4 lives", st)
	}
}

func TestGameBadConfigFallsBack(t *testing.T) {
	g := New(levelgen.Modern)
	rc := core.DefaultConfig()
	rc.ConfigPath = writeConfig(t, "physics: [not, a, map\n")

	g.Reset(rc)

	if g.ConfigError() == nil {
		t.Error("ConfigError() = nil, expected a parse error")
	}
	if g.State().Lives != 10 {
		t.Errorf("lives = %d, expected default 10", g.State().Lives)
	}
}

func TestGameDifficultyPreset(t *testing.T) {
	g := New(levelgen.Classic)
	rc := core.DefaultConfig()
	rc.ConfigPath = writeConfig(t, "ball:\n  launch_speed: 7\n")
	rc.Difficulty = "hard"

	g.Reset(rc)

	if g.State().Lives != 5 {
		t.Errorf("lives = %d, expected 5 on hard", g.State().Lives)
	}
	if g.Session().World().Paddle.Width != 100 {
		t.Errorf("paddle width = %v, expected 100 on hard", g.Session().World().Paddle.Width)
	}
}

func TestGamePauseAndRestart(t *testing.T) {
	g := New(levelgen.Classic)
	g.Reset(core.DefaultConfig())

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	if res := g.Step(in); !res.State.Paused {
		t.Fatal("Step(pause) did not pause")
	}

	in.Clear()
	in.Set(core.ActionRestart)
	if res := g.Step(in); res.State.Paused {
		t.Error("Step(restart) left the game paused")
	}
	if g.Session().State() != StateRunning {
		t.Errorf("state = %v, expected running", g.Session().State())
	}
}

func TestGameNextLevel(t *testing.T) {
	g := New(levelgen.Classic)
	g.Reset(core.DefaultConfig())
	clearBreakables(g.Session().World())

	res := g.Step(core.NewInputFrame())
	if !res.State.Cleared {
		t.Fatalf("State() = %+v, expected cleared", res.State)
	}
	if !containsCue(res.Cues, core.CueLevelWon) {
		t.Errorf("cues = %v, expected level_won", res.Cues)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionNext)
	res = g.Step(in)
	if res.State.Level != 2 || res.State.Cleared {
		t.Errorf("State() = %+v, expected level 2 running", res.State)
	}
}

func TestGameStepUsesElapsedTime(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected float64
	}{
		{"fixed rate", 0, 7},
		{"nominal", NominalFrame, 7},
		{"late tick", 2 * NominalFrame, 14},
		{"stall is capped", 100 * time.Millisecond, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(levelgen.Classic)
			rc := core.DefaultConfig()
			rc.TickRate = 60
			g.Reset(rc)
			w := g.Session().World()
			w.Balls = w.Balls[:1]
			b := &w.Balls[0]
			b.X, b.Y, b.VX, b.VY = 400, 450, 0, -7

			in := core.NewInputFrame()
			in.Elapsed = tt.elapsed
			g.Step(in)

			moved := 450 - w.Balls[0].Y
			if math.Abs(moved-tt.expected) > 0.05 {
				t.Errorf("Step(elapsed %v) moved the ball %v, expected %v", tt.elapsed, moved, tt.expected)
			}
		})
	}
}

func TestInputFromPointer(t *testing.T) {
	in := core.NewInputFrame()
	in.SetPointer(0.25)
	in.Set(core.ActionRight)

	got := InputFrom(in, DefaultViewport)

	if !got.HasPointer || got.PointerX != 200 || !got.Right || got.Left {
		t.Errorf("InputFrom() = %+v, expected pointer 200 moving right", got)
	}
}

func TestRenderShowsHUD(t *testing.T) {
	tests := []struct {
		mode     levelgen.Mode
		expected string
	}{
		{levelgen.Classic, "Score: 0"},
		{levelgen.Modern, "SCORE: 0"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			g := New(tt.mode)
			g.Reset(core.DefaultConfig())
			scr := core.NewScreen(80, 24)
			g.Render(scr)

			if !strings.Contains(scr.Row(0), tt.expected) {
				t.Errorf("HUD row = %q, expected %q", scr.Row(0), tt.expected)
			}
			if !strings.ContainsRune(scr.String(), BallGlyph) {
				t.Error("ball not drawn")
			}
		})
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(levelgen.Classic)
	g.Reset(core.DefaultConfig())
	scr := core.NewScreen(20, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "too small") {
		t.Errorf("screen = %q, expected a size warning", scr.String())
	}
}

func TestRenderOverlay(t *testing.T) {
	g := New(levelgen.Classic)
	g.Reset(core.DefaultConfig())
	g.Session().TogglePause()
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "breakout.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func containsCue(cues []core.Cue, c core.Cue) bool {
	for _, x := range cues {
		if x == c {
			return true
		}
	}
	return false
}
