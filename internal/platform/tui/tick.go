// Package tui provides the Bubble Tea frontend: menus, level select,
// scoreboard, the game loop and the SSH server that serves them.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arkanoid/internal/config"
)

// TickMsg is sent to trigger a game simulation tick.
// Loop identifies the game model that scheduled it, so a stale tick from a
// previous game cannot start a second loop.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

var loopSeq atomic.Uint64

func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}

type configChangedMsg struct{ path string }

type configErrorMsg struct{ err error }

// watchConfig waits for the next change reported by w.
func watchConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return configChangedMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrorMsg{err: err}
		}
	}
}
