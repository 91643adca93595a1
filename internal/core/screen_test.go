package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("GetCell(%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)
	pink := Hex("#ff1493")

	s.SetColored(3, 2, '█', pink)
	if c := s.GetCell(3, 2); c.Rune != '█' || c.Color != pink {
		t.Errorf("GetCell(3, 2) = %+v, expected pink block", c)
	}

	s.SetColored(-1, 0, 'A', pink)
	s.SetColored(10, 0, 'A', pink)
	s.SetColored(0, 5, 'A', pink)
	if c := s.GetCell(-1, 0); c != blankCell {
		t.Errorf("GetCell out of bounds = %+v, expected blank", c)
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawRectColored(NewRect(0, 0, 4, 4), '#', ColorRed)
	s.Clear()

	if !strings.Contains(s.String(), "    ") || strings.Contains(s.String(), "#") {
		t.Errorf("Clear() left content:\n%s", s.String())
	}
	if c := s.GetCell(1, 1); !c.Color.IsDefault() {
		t.Errorf("Clear() left color %v", c.Color)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 3)
	s.DrawTextColored(1, 0, "LIVES", ColorYellow)
	s.DrawTextCentered(2, "GO")

	if got := s.Row(0); got != " LIVES      " {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Row(2); got != "     GO     " {
		t.Errorf("Row(2) = %q", got)
	}
	if c := s.GetCell(1, 0); c.Color != ColorYellow {
		t.Errorf("text color = %v, expected yellow", c.Color)
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(0, 0, "♥♥♥")
	if got := s.Row(0); got != "♥♥♥  " {
		t.Errorf("Row(0) = %q, expected hearts in the first three cells", got)
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(1, 1, 'o', ColorCyan)

	s.Resize(3, 3)
	if s.GetCell(1, 1).Rune != 'o' {
		t.Error("Resize() lost content inside the new bounds")
	}

	s.Resize(8, 2)
	if s.Width() != 8 || s.Height() != 2 {
		t.Errorf("Resize() = %dx%d, expected 8x2", s.Width(), s.Height())
	}
	if s.GetCell(1, 1).Color != ColorCyan {
		t.Error("Resize() lost cell color")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorGray)

	expected := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != expected {
		t.Errorf("DrawBox() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"#ff00ff", "#ff00ff"},
		{"00ff41", "#00ff41"},
		{"#000000", "#000000"},
		{"bogus", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in).Hex(); got != tt.expected {
				t.Errorf("Hex(%q).Hex() = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestColorBlackIsNotDefault(t *testing.T) {
	if RGB(0, 0, 0).IsDefault() {
		t.Error("RGB(0, 0, 0) should be distinct from the default color")
	}
	if got := Hex("#204060").Dim(0.5).Hex(); got != "#102030" {
		t.Errorf("Dim(0.5) = %s, expected #102030", got)
	}
}
