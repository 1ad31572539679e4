package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wifiqr/pkg/wifi"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

var authDescriptions = map[string]string{
	wifi.AuthNoPass: "open network, no password",
	wifi.AuthWEP:    "legacy WEP, avoid if possible",
	wifi.AuthWPA:    "WPA-Personal",
	wifi.AuthWPA2:   "WPA2-Personal, the common choice",
	wifi.AuthWPA3:   "WPA3-Personal (SAE)",
}

// =============================================================================
// AuthPickerModel - Interactive authentication mode selection
// =============================================================================

// AuthPickerModel is the bubbletea model for choosing an authentication mode.
type AuthPickerModel struct {
	Modes     []string
	Cursor    int
	Selected  string
	Cancelled bool
}

// NewAuthPickerModel creates a picker with the cursor on current, when it is
// one of the known modes.
func NewAuthPickerModel(current string) AuthPickerModel {
	m := AuthPickerModel{Modes: wifi.KnownAuthModes()}
	for i, mode := range m.Modes {
		if strings.EqualFold(mode, current) {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m AuthPickerModel) Init() tea.Cmd {
	return nil
}

func (m AuthPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Modes)-1 {
			m.Cursor++
		}
	case "enter", " ":
		m.Selected = m.Modes[m.Cursor]
		return m, tea.Quit
	}
	return m, nil
}

func (m AuthPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Authentication mode"))
	b.WriteString("\n\n")

	for i, mode := range m.Modes {
		desc := listDimStyle.Render(authDescriptions[mode])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("› " + fmt.Sprintf("%-7s", mode)))
		} else {
			b.WriteString(listNormalStyle.Render("  " + fmt.Sprintf("%-7s", mode)))
		}
		b.WriteString(" " + desc + "\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate • enter select • q quit"))
	b.WriteString("\n")

	return b.String()
}

// runAuthPicker shows the picker and returns the chosen mode. Cancelling
// the picker yields context.Canceled so main exits like on Ctrl+C.
func runAuthPicker(ctx context.Context, in io.Reader, out io.Writer, current string) (string, error) {
	p := tea.NewProgram(NewAuthPickerModel(current),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("auth picker: %w", err)
	}
	m := final.(AuthPickerModel)
	if m.Cancelled || m.Selected == "" {
		return "", fmt.Errorf("auth selection: %w", context.Canceled)
	}
	return m.Selected, nil
}
