package main

import (
	"testing"

	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

func TestCheckMode(t *testing.T) {
	tests := []struct {
		id      string
		want    levelgen.Mode
		wantErr bool
	}{
		{"classic", levelgen.Classic, false},
		{"modern", levelgen.Modern, false},
		{"pong", levelgen.Classic, true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := checkMode(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkMode(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("checkMode(%q) = %v, expected %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestStartLevel(t *testing.T) {
	defer func(v int) { flagLevel = v }(flagLevel)

	flagLevel = 0
	if got := startLevel(7); got != 7 {
		t.Errorf("startLevel(7) = %d, expected the unlock mark", got)
	}
	if got := startLevel(0); got != 1 {
		t.Errorf("startLevel(0) = %d, expected 1", got)
	}
	flagLevel = 3
	if got := startLevel(7); got != 3 {
		t.Errorf("startLevel(7) with --level 3 = %d, expected 3", got)
	}
}

func TestProfileFlag(t *testing.T) {
	defer func(v string) { flagProfile = v }(flagProfile)
	flagProfile = "carol"
	if got := profile(); got != "carol" {
		t.Errorf("profile() = %q, expected carol", got)
	}
	flagProfile = ""
	if got := profile(); got == "" {
		t.Error("profile() should never be empty")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"list", "play", "window", "menu", "serve", "scores", "levels", "progress"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
