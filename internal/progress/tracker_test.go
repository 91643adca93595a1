package progress

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

type memLocal struct {
	levels map[string]int
	saves  int
	err    error
}

func newMemLocal() *memLocal {
	return &memLocal{levels: make(map[string]int)}
}

func (m *memLocal) LoadUnlocked(profile, mode string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if v, ok := m.levels[profile+"/"+mode]; ok {
		return v, nil
	}
	return 1, nil
}

func (m *memLocal) SaveUnlocked(profile, mode string, level int) error {
	m.saves++
	m.levels[profile+"/"+mode] = max(m.levels[profile+"/"+mode], level)
	return m.err
}

func (m *memLocal) ResetUnlocked(profile, mode string) error {
	delete(m.levels, profile+"/"+mode)
	return nil
}

type memRemote struct {
	mu     sync.Mutex
	level  int
	saved  []int
	resets int
	err    error
	gate   chan struct{} // Holds loads until closed
	slow   chan struct{} // Holds saves until closed
}

func waitGate(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *memRemote) LoadUnlocked(ctx context.Context, _, _ string) (int, error) {
	if err := waitGate(ctx, m.gate); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level, m.err
}

func (m *memRemote) SaveUnlocked(ctx context.Context, _, _ string, level int) error {
	if err := waitGate(ctx, m.slow); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, level)
	if m.err == nil {
		m.level = max(m.level, level)
	}
	return m.err
}

func (m *memRemote) ResetUnlocked(_ context.Context, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
	if m.err == nil {
		m.level = 1
	}
	return m.err
}

func (m *memRemote) stored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *memRemote) lastSaved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return 0
	}
	return m.saved[len(m.saved)-1]
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestTracker(local Local, remote Remote) *Tracker {
	return New(Options{Profile: "p", Mode: "classic", MaxLevel: 200, Local: local, Remote: remote, Logger: quietLogger()})
}

func TestFirstClearUnlocksNext(t *testing.T) {
	local := newMemLocal()
	remote := &memRemote{level: 3}
	tr := newTestTracker(local, remote)

	if tr.Unlocked() != 1 {
		t.Fatalf("Unlocked() = %d, expected 1", tr.Unlocked())
	}
	if got := tr.Complete(5); got != 6 {
		t.Errorf("Complete(5) = %d, expected 6", got)
	}

	tr.Wait()

	if tr.Unlocked() != 6 {
		t.Errorf("Unlocked() after remote load = %d, expected 6", tr.Unlocked())
	}
	if local.levels["p/classic"] != 6 {
		t.Errorf("local level = %d, expected 6", local.levels["p/classic"])
	}
	if remote.lastSaved() != 6 {
		t.Errorf("remote saved = %d, expected 6", remote.lastSaved())
	}
}

func TestCompleteIgnoresOlderLevels(t *testing.T) {
	local := newMemLocal()
	local.levels["p/classic"] = 6
	tr := newTestTracker(local, nil)

	if got := tr.Complete(3); got != 6 {
		t.Errorf("Complete(3) = %d, expected 6", got)
	}
	if local.saves != 0 {
		t.Errorf("local saves = %d, expected 0", local.saves)
	}
	if got := tr.Complete(6); got != 7 {
		t.Errorf("Complete(6) = %d, expected 7", got)
	}
}

func TestCompleteCapsAtMaxLevel(t *testing.T) {
	local := newMemLocal()
	local.levels["p/classic"] = 200
	tr := newTestTracker(local, nil)

	if got := tr.Complete(200); got != 200 {
		t.Errorf("Complete(200) = %d, expected 200", got)
	}
}

func TestLocalValueClamped(t *testing.T) {
	tests := []struct {
		name     string
		stored   int
		expected int
	}{
		{"zero", 0, 1},
		{"negative", -4, 1},
		{"in range", 42, 42},
		{"too high", 999, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := newMemLocal()
			local.levels["p/classic"] = tt.stored
			tr := newTestTracker(local, nil)
			if tr.Unlocked() != tt.expected {
				t.Errorf("Unlocked() = %d, expected %d", tr.Unlocked(), tt.expected)
			}
		})
	}
}

func TestRemoteAheadRaisesLocal(t *testing.T) {
	local := newMemLocal()
	local.levels["p/classic"] = 2
	remote := &memRemote{level: 12}
	tr := newTestTracker(local, remote)

	tr.wg.Wait()
	if tr.Unlocked() != 2 {
		t.Errorf("Unlocked() before Poll = %d, expected 2", tr.Unlocked())
	}

	tr.Poll()
	if tr.Unlocked() != 12 {
		t.Errorf("Unlocked() after Poll = %d, expected 12", tr.Unlocked())
	}
	if local.levels["p/classic"] != 12 {
		t.Errorf("local level = %d, expected 12", local.levels["p/classic"])
	}
}

func TestRemoteBehindIsPushed(t *testing.T) {
	local := newMemLocal()
	local.levels["p/classic"] = 9
	remote := &memRemote{level: 4}
	tr := newTestTracker(local, remote)

	tr.Wait()
	tr.Wait()

	if tr.Unlocked() != 9 {
		t.Errorf("Unlocked() = %d, expected 9", tr.Unlocked())
	}
	if remote.lastSaved() != 9 {
		t.Errorf("remote saved = %d, expected 9", remote.lastSaved())
	}
}

func TestRemoteFailureKeepsLocal(t *testing.T) {
	local := newMemLocal()
	local.levels["p/classic"] = 5
	remote := &memRemote{err: errors.New("offline")}
	tr := newTestTracker(local, remote)

	tr.Wait()
	if tr.Unlocked() != 5 {
		t.Errorf("Unlocked() = %d, expected 5", tr.Unlocked())
	}

	if got := tr.Complete(5); got != 6 {
		t.Errorf("Complete(5) = %d, expected 6", got)
	}
	tr.Wait()
	if local.levels["p/classic"] != 6 {
		t.Errorf("local level = %d, expected 6", local.levels["p/classic"])
	}
}

func TestLocalFailureStartsAtOne(t *testing.T) {
	local := newMemLocal()
	local.err = errors.New("disk full")
	tr := newTestTracker(local, nil)

	if tr.Unlocked() != 1 {
		t.Errorf("Unlocked() = %d, expected 1", tr.Unlocked())
	}
	if got := tr.Complete(1); got != 2 {
		t.Errorf("Complete(1) = %d, expected 2 despite the save error", got)
	}
}

func TestSlowRemoteDoesNotBlock(t *testing.T) {
	remote := &memRemote{level: 50, gate: make(chan struct{})}
	tr := newTestTracker(newMemLocal(), remote)

	tr.Poll()
	if tr.Unlocked() != 1 {
		t.Errorf("Unlocked() = %d, expected 1 while remote is pending", tr.Unlocked())
	}
	tr.Complete(1)

	close(remote.gate)
	tr.Wait()
	if tr.Unlocked() != 50 {
		t.Errorf("Unlocked() = %d, expected 50", tr.Unlocked())
	}
}

func TestRemoteTimeout(t *testing.T) {
	remote := &memRemote{level: 50, gate: make(chan struct{})}
	tr := New(Options{
		Profile:  "p",
		Mode:     "modern",
		MaxLevel: 200,
		Local:    newMemLocal(),
		Remote:   remote,
		Logger:   quietLogger(),
		Timeout:  1,
	})

	tr.Wait()
	if tr.Unlocked() != 1 {
		t.Errorf("Unlocked() = %d, expected 1 after timeout", tr.Unlocked())
	}
}

func TestReset(t *testing.T) {
	local := newMemLocal()
	local.levels["p/classic"] = 30
	remote := &memRemote{level: 30}
	tr := newTestTracker(local, remote)
	tr.Wait()

	if err := tr.Reset(); err != nil {
		t.Fatalf("Reset() = %v", err)
	}
	tr.Wait()

	if tr.Unlocked() != 1 {
		t.Errorf("Unlocked() = %d, expected 1", tr.Unlocked())
	}
	if _, ok := local.levels["p/classic"]; ok {
		t.Error("local row still present after Reset()")
	}
	if remote.resets != 1 {
		t.Errorf("remote resets = %d, expected 1", remote.resets)
	}
}

func TestResetWaitsForSlowRemoteSave(t *testing.T) {
	local := newMemLocal()
	local.levels["p/classic"] = 30
	remote := &memRemote{level: 10, slow: make(chan struct{})}

	// The remote is behind, so settling the load queues a save of 30.
	tr := newTestTracker(local, remote)
	tr.Wait()
	if err := tr.Reset(); err != nil {
		t.Fatalf("Reset() = %v", err)
	}
	close(remote.slow)
	tr.Wait()

	if tr.Unlocked() != 1 {
		t.Errorf("Unlocked() = %d, expected 1", tr.Unlocked())
	}
	if remote.stored() != 1 {
		t.Errorf("remote level = %d, expected 1 after reset", remote.stored())
	}

	next := newTestTracker(local, remote)
	next.Wait()
	if next.Unlocked() != 1 {
		t.Errorf("next session Unlocked() = %d, expected 1", next.Unlocked())
	}
}

func TestResetDiscardsPendingLoad(t *testing.T) {
	local := newMemLocal()
	local.levels["p/classic"] = 5
	remote := &memRemote{level: 40, gate: make(chan struct{})}
	tr := newTestTracker(local, remote)

	if err := tr.Reset(); err != nil {
		t.Fatalf("Reset() = %v", err)
	}
	close(remote.gate)
	tr.Wait()

	if tr.Unlocked() != 1 {
		t.Errorf("Unlocked() = %d, expected 1, a load issued before Reset must not apply", tr.Unlocked())
	}
	if _, ok := local.levels["p/classic"]; ok {
		t.Error("local row restored by a stale load")
	}
}

func TestInMemoryTracker(t *testing.T) {
	tr := New(Options{Mode: "classic", MaxLevel: 200, Logger: quietLogger()})
	tr.Complete(1)
	tr.Complete(2)
	if tr.Unlocked() != 3 {
		t.Errorf("Unlocked() = %d, expected 3", tr.Unlocked())
	}
	if tr.Mode() != "classic" {
		t.Errorf("Mode() = %q, expected classic", tr.Mode())
	}
}
