// Package progress tracks the highest unlocked level of a game mode.
//
// The local store is authoritative and synchronous. A remote store, when
// configured, is loaded and written in the background by a single worker
// that runs calls in the order they were issued; results are only applied
// by Poll so the simulation observes them between steps. Loads are
// max-merged: no store can lower the high-water mark.
package progress

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds each remote call.
const DefaultTimeout = 5 * time.Second

// Local is the always-available progress store.
type Local interface {
	LoadUnlocked(profile, mode string) (int, error)
	SaveUnlocked(profile, mode string, level int) error
	ResetUnlocked(profile, mode string) error
}

// Remote is an optional best-effort progress store.
type Remote interface {
	LoadUnlocked(ctx context.Context, profile, mode string) (int, error)
	SaveUnlocked(ctx context.Context, profile, mode string, level int) error
	ResetUnlocked(ctx context.Context, profile, mode string) error
}

// Options configures a Tracker.
type Options struct {
	Profile  string
	Mode     string
	MaxLevel int
	Local    Local  // May be nil for an in-memory tracker
	Remote   Remote // May be nil
	Logger   *log.Logger
	Timeout  time.Duration
}

type opKind int

const (
	opLoad opKind = iota
	opSave
	opReset
)

func (o opKind) String() string {
	switch o {
	case opLoad:
		return "load"
	case opSave:
		return "save"
	default:
		return "reset"
	}
}

type job struct {
	op  opKind
	gen int
	fn  func(ctx context.Context) (int, error)
}

type result struct {
	op    opKind
	gen   int
	level int
	err   error
}

// Tracker holds the unlocked-level high-water mark of one profile and mode.
// Unlocked, Complete, Poll and Reset must be called from one goroutine.
type Tracker struct {
	opts     Options
	logger   *log.Logger
	unlocked int
	gen      int // Bumped by Reset; older loads are stale

	mu      sync.Mutex
	queue   []job
	running bool
	pending []result
	wg      sync.WaitGroup
}

// New creates a tracker, loading the local value synchronously and starting
// a background load from the remote store.
func New(opts Options) *Tracker {
	if opts.MaxLevel < 1 {
		opts.MaxLevel = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	t := &Tracker{
		opts:     opts,
		logger:   logger.WithPrefix("progress"),
		unlocked: 1,
	}

	if opts.Local != nil {
		level, err := opts.Local.LoadUnlocked(opts.Profile, opts.Mode)
		if err != nil {
			t.logger.Warn("local load failed", "mode", opts.Mode, "error", err)
		} else {
			t.unlocked = t.clamp(level)
		}
	}

	if opts.Remote != nil {
		t.async(opLoad, func(ctx context.Context) (int, error) {
			return opts.Remote.LoadUnlocked(ctx, opts.Profile, opts.Mode)
		})
	}
	return t
}

// Mode returns the tracked game mode.
func (t *Tracker) Mode() string {
	return t.opts.Mode
}

// Unlocked returns the highest level that may be started.
func (t *Tracker) Unlocked() int {
	return t.unlocked
}

// Complete records that level was cleared. The first clear of the highest
// unlocked level (or beyond) unlocks the next one. Returns the new mark.
func (t *Tracker) Complete(level int) int {
	next := t.clamp(level + 1)
	if level < t.unlocked || next <= t.unlocked {
		return t.unlocked
	}
	t.raise(next)
	t.pushRemote(next)
	return t.unlocked
}

// Poll applies finished remote results. It never blocks.
func (t *Tracker) Poll() {
	t.mu.Lock()
	results := t.pending
	t.pending = nil
	t.mu.Unlock()

	for _, r := range results {
		t.apply(r)
	}
}

// Wait blocks until every background call has finished, then polls.
func (t *Tracker) Wait() {
	t.wg.Wait()
	t.Poll()
}

// Reset drops the mark back to level 1 in every store. The remote delete is
// queued behind earlier remote calls, and loads issued before it are ignored.
func (t *Tracker) Reset() error {
	t.unlocked = 1
	t.gen++
	if t.opts.Remote != nil {
		t.async(opReset, func(ctx context.Context) (int, error) {
			return 1, t.opts.Remote.ResetUnlocked(ctx, t.opts.Profile, t.opts.Mode)
		})
	}
	if t.opts.Local == nil {
		return nil
	}
	return t.opts.Local.ResetUnlocked(t.opts.Profile, t.opts.Mode)
}

func (t *Tracker) clamp(level int) int {
	return max(1, min(level, t.opts.MaxLevel))
}

// raise sets a higher mark and writes it to the local store.
func (t *Tracker) raise(level int) {
	t.unlocked = level
	if t.opts.Local == nil {
		return
	}
	if err := t.opts.Local.SaveUnlocked(t.opts.Profile, t.opts.Mode, level); err != nil {
		t.logger.Warn("local save failed", "mode", t.opts.Mode, "level", level, "error", err)
	}
}

func (t *Tracker) pushRemote(level int) {
	if t.opts.Remote == nil {
		return
	}
	t.async(opSave, func(ctx context.Context) (int, error) {
		return level, t.opts.Remote.SaveUnlocked(ctx, t.opts.Profile, t.opts.Mode, level)
	})
}

// async queues a remote call. One worker drains the queue at a time.
func (t *Tracker) async(op opKind, fn func(ctx context.Context) (int, error)) {
	t.wg.Add(1)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue = append(t.queue, job{op: op, gen: t.gen, fn: fn})
	if !t.running {
		t.running = true
		go t.work()
	}
}

func (t *Tracker) work() {
	for {
		t.mu.Lock()
		if len(t.queue) == 0 {
			t.running = false
			t.mu.Unlock()
			return
		}
		j := t.queue[0]
		t.queue = t.queue[1:]
		t.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), t.opts.Timeout)
		level, err := j.fn(ctx)
		cancel()

		t.mu.Lock()
		t.pending = append(t.pending, result{op: j.op, gen: j.gen, level: level, err: err})
		t.mu.Unlock()
		t.wg.Done()
	}
}

func (t *Tracker) apply(r result) {
	if r.err != nil {
		t.logger.Warn("remote "+r.op.String()+" failed", "mode", t.opts.Mode, "error", r.err)
		return
	}
	if r.op != opLoad || r.gen != t.gen {
		return
	}

	remote := t.clamp(r.level)
	switch {
	case remote > t.unlocked:
		t.logger.Debug("remote progress ahead", "mode", t.opts.Mode, "local", t.unlocked, "remote", remote)
		t.raise(remote)
	case remote < t.unlocked:
		t.pushRemote(t.unlocked)
	}
}
