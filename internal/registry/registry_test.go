package registry

import (
	"testing"

	"github.com/vovakirdan/arkanoid/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register("zz-test", func() Game { return stubGame{"zz-test"} })
	Register("aa-test", func() Game { return stubGame{"aa-test"} })

	if !Exists("zz-test") || Exists("missing") {
		t.Error("Exists() does not match the registered set")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
	found := false
	for _, info := range list {
		if info.ID == "aa-test" {
			found = info.Title == "Stub aa-test"
		}
	}
	if !found {
		t.Errorf("List() = %v, expected aa-test with its title", list)
	}

	g, err := Create("zz-test")
	if err != nil || g.ID() != "zz-test" {
		t.Errorf("Create() = %v, %v, expected zz-test", g, err)
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create(missing) expected an error")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-test", func() Game { return stubGame{"dup-test"} })
	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate ID should panic")
		}
	}()
	Register("dup-test", func() Game { return stubGame{"dup-test"} })
}
