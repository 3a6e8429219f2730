package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/tui/components"
)

// adminScreen lists accounts and creates new ones. The guard only opens
// it for superadmins.
type adminScreen struct {
	app      *app
	form     components.FormModel
	users    []model.User
	creating bool
	loading  bool
}

func newAdminScreen(a *app) *adminScreen {
	return &adminScreen{app: a}
}

func (s *adminScreen) Init() tea.Cmd {
	s.loading = true
	return s.app.loadUsers()
}

func (s *adminScreen) Capturing() bool { return s.creating }

func (s *adminScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		s.loading = false
		s.users = msg.users
		return s, nil

	case userCreatedMsg:
		s.form.SetBusy(false)
		if msg.err != nil && !errors.Is(msg.err, pages.ErrRefetchFailed) {
			s.form.SetError(formError(msg.err))
			return s, nil
		}
		s.users = msg.users
		s.creating = false
		return s, nil

	case components.FormSubmittedMsg:
		s.form.SetError("")
		s.form.SetBusy(true)
		return s, s.app.createUser(pages.UserForm{
			Username: msg.Values["username"],
			Password: msg.Values["password"],
			Role:     model.Role(msg.Values["role"]),
		})

	case components.FormCancelledMsg:
		s.creating = false
		return s, nil

	case tea.KeyMsg:
		if s.creating {
			var cmd tea.Cmd
			s.form, cmd = s.form.Update(msg)
			return s, cmd
		}
		switch {
		case key.Matches(msg, s.app.keymap.New):
			s.openForm()
		case key.Matches(msg, s.app.keymap.Refresh):
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *adminScreen) openForm() {
	s.form = components.NewForm("user", "Buat User Baru", []components.Field{
		{Key: "username", Label: "Username"},
		{Key: "password", Label: "Password", Kind: components.FieldPassword},
		{Key: "role", Label: "Role", Kind: components.FieldChoice, Value: string(model.RoleUser), Choices: []components.Choice{
			{Value: string(model.RoleUser), Label: "User"},
			{Value: string(model.RoleSuperadmin), Label: "Superadmin"},
		}},
	}, s.app.theme)
	s.creating = true
}

func (s *adminScreen) View() string {
	t := s.app.theme
	title := t.Title.Render("Admin")
	if s.loading {
		return lipgloss.JoinVertical(lipgloss.Left, title, t.StatusPending.Render("Memuat data user..."))
	}
	if s.creating {
		return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View())
	}

	var b strings.Builder
	b.WriteString(t.Bold.Render(fmt.Sprintf("Daftar User (%d)", len(s.users))))
	for _, u := range s.users {
		created := "-"
		if u.CreatedAt != nil {
			created = model.FormatDateID(model.NewDate(*u.CreatedAt))
		}
		role := lipgloss.NewStyle().Foreground(t.Muted).Render(string(u.Role))
		if u.IsSuperadmin() {
			role = t.StatusWarning.Render(string(u.Role))
		}
		fmt.Fprintf(&b, "\n👤 %-20s %-12s %s", u.Username, role, created)
	}
	hint := lipgloss.NewStyle().Foreground(t.Muted).Render("n buat user • r muat ulang")
	return lipgloss.JoinVertical(lipgloss.Left, title, t.RoundedBox.Render(b.String()), hint)
}
