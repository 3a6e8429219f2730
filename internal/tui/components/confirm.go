package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/money-tracker/internal/tui/themes"
)

// ConfirmModel is a yes/no dialog. It answers with a ConfirmedMsg and
// never blocks the event loop.
type ConfirmModel struct {
	theme  themes.Theme
	prompt string
}

// NewConfirm creates a dialog asking prompt.
func NewConfirm(prompt string, theme themes.Theme) ConfirmModel {
	return ConfirmModel{prompt: prompt, theme: theme}
}

// Update handles key presses.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		return m, answer(true)
	case "n", "N", "esc", "q":
		return m, answer(false)
	}
	return m, nil
}

func answer(ok bool) tea.Cmd {
	return func() tea.Msg { return ConfirmedMsg{Confirmed: ok} }
}

// View renders the dialog.
func (m ConfirmModel) View() string {
	hint := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[y] Ya   [n] Batal")
	return m.theme.RoundedBox.
		BorderForeground(m.theme.Warning).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			m.theme.StatusWarning.Render(m.prompt),
			"",
			hint,
		))
}
