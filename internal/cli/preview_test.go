package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/bindery/pkg/imposition"
	"github.com/matzehuels/bindery/pkg/source"
)

func newTestSheetList(t *testing.T) SheetListModel {
	t.Helper()
	// 2 + 3 sheets
	layout, err := imposition.NewLayout([]int{8, 12}, imposition.Padding{StartBlanks: 4, EndBlanks: 3}, 10)
	if err != nil {
		t.Fatal(err)
	}
	return NewSheetListModel(source.Virtual(10, a4), layout)
}

func press(m SheetListModel, keys ...string) SheetListModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(SheetListModel)
	}
	return m
}

func TestSheetListNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"start", nil, 0},
		{"down", []string{"down"}, 1},
		{"up clamps", []string{"up", "up"}, 0},
		{"down clamps", []string{"j", "j", "j", "j", "j", "j"}, 4},
		{"next signature", []string{"right"}, 2},
		{"last signature stays", []string{"right", "right"}, 2},
		{"previous signature start", []string{"G", "left"}, 2},
		{"back to first signature", []string{"G", "left", "h"}, 0},
		{"end and home", []string{"G", "g"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newTestSheetList(t), tt.keys...)
			if m.Cursor != tt.want {
				t.Errorf("Cursor = %d, want %d", m.Cursor, tt.want)
			}
		})
	}
}

func TestSheetListQuit(t *testing.T) {
	m := newTestSheetList(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestSheetListScroll(t *testing.T) {
	m := newTestSheetList(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = next.(SheetListModel)
	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}

	m.Height = 2
	m = press(m, "down", "down", "down")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	m = press(m, "g")
	if m.Offset != 0 {
		t.Errorf("Offset = %d after home, want 0", m.Offset)
	}
}

func TestSheetListView(t *testing.T) {
	m := newTestSheetList(t)
	view := m.View()
	for _, want := range []string{"Sheets", "8 + 12", "▸", "[1/5]", "start blank"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	m = press(m, "G")
	view = m.View()
	for _, want := range []string{"[5/5]", "end blank"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() at last sheet missing %q:\n%s", want, view)
		}
	}
}
