package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/pages"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready || m.screen == nil {
		return m.renderLoading()
	}

	sections := []string{}
	if m.route != guard.Login {
		sections = append(sections, m.renderHeader(), "")
	}
	sections = append(sections, m.screen.View())
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, "", toasts)
	}
	if m.route != guard.Login {
		sections = append(sections, "", m.help.View(m.app.keymap))
	}
	return m.app.theme.Box.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderLoading renders the screen shown while the session is restored.
func (m Model) renderLoading() string {
	t := m.app.theme
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		t.Title.Render("💰 MoneyTracker"),
		lipgloss.NewStyle().Foreground(t.Muted).Render("Memuat..."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderHeader renders the menu and the signed-in user.
func (m Model) renderHeader() string {
	t := m.app.theme
	user := m.session.User()

	items := make([]string, 0, 4)
	for _, item := range guard.Navigation(user) {
		label := fmt.Sprintf("%s %s", item.Key, item.Label)
		if item.Route == m.route {
			items = append(items, t.NavActive.Render(label))
		} else {
			items = append(items, t.NavInactive.Render(label))
		}
	}

	who := ""
	if user != nil {
		who = lipgloss.NewStyle().Foreground(t.Muted).
			Render(fmt.Sprintf("👤 %s (%s)", user.Username, user.Role))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		t.Bold.Render("💰 MoneyTracker "),
		strings.Join(items, " "),
		"  ",
		who,
	)
}

// renderToasts renders the notices that have not expired yet.
func (m Model) renderToasts() string {
	t := m.app.theme
	lines := make([]string, 0, len(m.toasts))
	for _, toast := range m.toasts {
		switch toast.notice.Level {
		case pages.LevelSuccess:
			lines = append(lines, t.StatusSuccess.Render("✓ "+toast.notice.Message))
		case pages.LevelError:
			lines = append(lines, t.StatusError.Render("✗ "+toast.notice.Message))
		default:
			lines = append(lines, t.StatusInfo.Render("ℹ "+toast.notice.Message))
		}
	}
	return strings.Join(lines, "\n")
}
