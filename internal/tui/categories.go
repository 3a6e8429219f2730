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
	"github.com/Veraticus/money-tracker/internal/tui/themes"
)

// categoriesScreen lists categories by type and adds custom ones.
type categoriesScreen struct {
	app        *app
	form       components.FormModel
	categories []model.Category
	adding     bool
	loading    bool
}

func newCategoriesScreen(a *app) *categoriesScreen {
	return &categoriesScreen{app: a}
}

func (s *categoriesScreen) Init() tea.Cmd {
	s.loading = true
	return s.app.loadCategories()
}

func (s *categoriesScreen) Capturing() bool { return s.adding }

func (s *categoriesScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesLoadedMsg:
		s.loading = false
		s.categories = msg.categories
		return s, nil

	case categoryCreatedMsg:
		s.form.SetBusy(false)
		if msg.err != nil && !errors.Is(msg.err, pages.ErrRefetchFailed) {
			s.form.SetError(formError(msg.err))
			return s, nil
		}
		s.categories = msg.categories
		s.adding = false
		return s, nil

	case components.FormSubmittedMsg:
		s.form.SetError("")
		s.form.SetBusy(true)
		return s, s.app.createCategory(msg.Values["name"], model.TransactionType(msg.Values["type"]))

	case components.FormCancelledMsg:
		s.adding = false
		return s, nil

	case tea.KeyMsg:
		if s.adding {
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

func (s *categoriesScreen) openForm() {
	s.form = components.NewForm("category", "Tambah Kategori", []components.Field{
		{Key: "name", Label: "Nama", Placeholder: "mis. Hobi"},
		{Key: "type", Label: "Tipe", Kind: components.FieldChoice, Value: string(model.TypeExpense), Choices: typeChoices()},
	}, s.app.theme)
	s.adding = true
}

func (s *categoriesScreen) View() string {
	t := s.app.theme
	title := t.Title.Render("Kategori")
	if s.loading {
		return lipgloss.JoinVertical(lipgloss.Left, title, t.StatusPending.Render("Memuat kategori..."))
	}
	if s.adding {
		return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View())
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		categoryColumn(t, model.TypeIncome, model.CategoriesOfType(s.categories, model.TypeIncome)),
		"  ",
		categoryColumn(t, model.TypeExpense, model.CategoriesOfType(s.categories, model.TypeExpense)),
	)
	hint := lipgloss.NewStyle().Foreground(t.Muted).Render("n tambah kategori • r muat ulang")
	return lipgloss.JoinVertical(lipgloss.Left, title, columns, hint)
}

func categoryColumn(t themes.Theme, typ model.TransactionType, cats []model.Category) string {
	heading := t.Income
	if typ == model.TypeExpense {
		heading = t.Expense
	}
	var b strings.Builder
	b.WriteString(heading.Bold(true).Render(fmt.Sprintf("Kategori %s (%d)", typ.Label(), len(cats))))
	for _, c := range cats {
		b.WriteString("\n")
		b.WriteString(themes.GetCategoryIcon(c.Name) + " " + c.Name)
		if c.IsCustom {
			b.WriteString(" " + t.StatusInfo.Render("Custom"))
		}
	}
	if len(cats) == 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(t.Muted).Render("Belum ada kategori"))
	}
	return t.RoundedBox.Width(36).Render(b.String())
}
