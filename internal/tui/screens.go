package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/tui/components"
)

// screen is one page of the app. Each screen fetches its own data in Init
// and keeps it only while it is shown.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	// Capturing reports whether key presses go to a text input or dialog,
	// in which case global shortcuts are off.
	Capturing() bool
}

// formError returns the validation message of err, or "".
func formError(err error) string {
	var fe *pages.FormError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return ""
}

// loginScreen asks for credentials.
type loginScreen struct {
	app  *app
	form components.FormModel
}

func newLoginScreen(a *app) *loginScreen {
	return &loginScreen{
		app: a,
		form: components.NewForm("login", "Login", []components.Field{
			{Key: "username", Label: "Username", Placeholder: "username"},
			{Key: "password", Label: "Password", Placeholder: "password", Kind: components.FieldPassword},
		}, a.theme),
	}
}

func (s *loginScreen) Init() tea.Cmd { return nil }

func (s *loginScreen) Capturing() bool { return true }

func (s *loginScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.FormSubmittedMsg:
		s.form.SetError("")
		s.form.SetBusy(true)
		return s, s.app.submitLogin(msg.Values["username"], msg.Values["password"])

	case loginResultMsg:
		s.form.SetBusy(false)
		if msg.err != nil {
			s.form.SetError(formError(msg.err))
			return s, nil
		}
		return s, goTo(guard.Dashboard)

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.form, cmd = s.form.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *loginScreen) View() string {
	t := s.app.theme
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render("💰 MoneyTracker"),
		lipgloss.NewStyle().Foreground(t.Muted).Render("Masuk untuk mengelola keuangan Anda"),
		"",
		s.form.View(),
	)
}
