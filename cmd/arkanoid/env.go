package main

import (
	"context"
	"os"
	"os/user"
	"time"

	"golang.org/x/term"

	"github.com/vovakirdan/arkanoid/internal/audio"
	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/platform/tui"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

// env holds the collaborators shared by the interactive commands.
type env struct {
	opts   tui.Options
	player audio.Sink
}

// openEnv opens the stores, the config watcher and audio. Every failure
// degrades the feature instead of aborting: the game is playable without them.
func openEnv(configPath string, mute bool) *env {
	e := &env{}
	e.opts.Profile = profile()
	e.opts.Logger = logger

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores and progress are not saved", "path", flagDBPath, "err", err)
	} else {
		e.opts.Store = store
	}

	if flagSyncDBPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		sync, err := storage.OpenSync(ctx, flagSyncDBPath)
		cancel()
		if err != nil {
			logger.Warn("could not open sync database", "path", flagSyncDBPath, "err", err)
		} else {
			e.opts.Sync = sync
		}
	}

	if path := config.ResolveBreakoutPath(configPath); path != "" {
		w, err := config.NewWatcher(path)
		if err != nil {
			logger.Warn("config changes will not be picked up", "err", err)
		} else {
			e.opts.Watcher = w
		}
	}

	if mute {
		e.player = audio.Nop{}
	} else {
		e.player = audio.NewPlayer(1, logger)
	}
	e.opts.Audio = e.player
	return e
}

func (e *env) Close() {
	if e.opts.Watcher != nil {
		_ = e.opts.Watcher.Close()
	}
	if p, ok := e.player.(*audio.Player); ok {
		p.Close()
	}
	if e.opts.Store != nil {
		_ = e.opts.Store.Close()
	}
	if e.opts.Sync != nil {
		_ = e.opts.Sync.Close()
	}
}

// runtimeConfig builds the engine config from the global flags.
func runtimeConfig(configPath, difficulty string) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = configPath
	cfg.Difficulty = difficulty
	cfg.Profile = profile()
	return cfg
}

// profile returns --profile, falling back to the login name.
func profile() string {
	if flagProfile != "" {
		return flagProfile
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "default"
}
