package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/wifiqr/pkg/wifi"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m AuthPickerModel, keys ...string) (AuthPickerModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(AuthPickerModel)
	}
	return m, cmd
}

func TestNewAuthPickerModel(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"wpa2", wifi.AuthWPA2},
		{"WPA", wifi.AuthWPA},
		{"nopass", wifi.AuthNoPass},
		{"", wifi.KnownAuthModes()[0]},
		{"bogus", wifi.KnownAuthModes()[0]},
	}

	for _, tt := range tests {
		m := NewAuthPickerModel(tt.current)
		if got := m.Modes[m.Cursor]; got != tt.want {
			t.Errorf("NewAuthPickerModel(%q) cursor on %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestAuthPickerNavigation(t *testing.T) {
	m := NewAuthPickerModel("")
	last := len(m.Modes) - 1

	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"down", []string{"down"}, 1},
		{"vim down", []string{"j", "j"}, 2},
		{"up at top stays", []string{"up", "k"}, 0},
		{"down then up", []string{"down", "down", "up"}, 1},
		{"down past end stays", []string{"down", "down", "down", "down", "down", "down", "down"}, last},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cmd := press(m, tt.keys...)
			if got.Cursor != tt.want {
				t.Errorf("cursor = %d, want %d", got.Cursor, tt.want)
			}
			if cmd != nil {
				t.Error("navigation should not quit")
			}
		})
	}
}

func TestAuthPickerSelect(t *testing.T) {
	m, cmd := press(NewAuthPickerModel("wpa2"), "down", "enter")
	if cmd == nil {
		t.Fatal("enter should quit the program")
	}
	if m.Selected != m.Modes[1] {
		t.Errorf("Selected = %q, want %q", m.Selected, m.Modes[1])
	}
	if m.Cancelled {
		t.Error("selection should not be cancelled")
	}
}

func TestAuthPickerCancel(t *testing.T) {
	for _, k := range []string{"esc", "q"} {
		m, cmd := press(NewAuthPickerModel("wpa2"), k)
		if cmd == nil {
			t.Errorf("%s should quit the program", k)
		}
		if !m.Cancelled || m.Selected != "" {
			t.Errorf("%s: Cancelled = %v, Selected = %q", k, m.Cancelled, m.Selected)
		}
	}
}

func TestAuthPickerView(t *testing.T) {
	view := NewAuthPickerModel("wpa3").View()
	for _, mode := range wifi.KnownAuthModes() {
		if !strings.Contains(view, mode) {
			t.Errorf("view should list %q", mode)
		}
	}
	if !strings.Contains(view, "› wpa3") {
		t.Error("view should mark the current mode")
	}
}
