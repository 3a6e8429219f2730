package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/money-tracker/internal/tui/themes"
)

// FieldKind is how a form field is edited.
type FieldKind int

// Field kinds.
const (
	FieldText FieldKind = iota
	FieldPassword
	FieldChoice
)

// Choice is one option of a choice field.
type Choice struct {
	Value string
	Label string
}

// Field describes one form input.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
	Choices     []Choice
	Kind        FieldKind
}

// FormModel is a vertical form of text and choice fields.
// Tab and the arrow keys move between fields, left/right cycles a choice,
// Enter submits and Esc cancels.
type FormModel struct {
	theme   themes.Theme
	id      string
	title   string
	errText string
	fields  []Field
	inputs  []textinput.Model
	choices []int
	focus   int
	busy    bool
}

// NewForm creates a form. id is echoed back in the submit and cancel messages.
func NewForm(id, title string, fields []Field, theme themes.Theme) FormModel {
	m := FormModel{
		id:      id,
		title:   title,
		theme:   theme,
		fields:  fields,
		inputs:  make([]textinput.Model, len(fields)),
		choices: make([]int, len(fields)),
	}
	for i, f := range fields {
		if f.Kind == FieldChoice {
			m.choices[i] = indexOf(f.Choices, f.Value)
			continue
		}
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 100
		ti.Prompt = ""
		ti.Cursor.SetMode(cursor.CursorStatic)
		ti.SetValue(f.Value)
		if f.Kind == FieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[i] = ti
	}
	m.setFocus(0)
	return m
}

func indexOf(choices []Choice, value string) int {
	for i, c := range choices {
		if c.Value == value {
			return i
		}
	}
	return 0
}

// ID returns the form identifier.
func (m FormModel) ID() string {
	return m.id
}

// Update handles key presses.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.fields) == 0 {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % len(m.fields))
	case "shift+tab", "up":
		return m, m.setFocus((m.focus - 1 + len(m.fields)) % len(m.fields))
	case "esc":
		id := m.id
		return m, func() tea.Msg { return FormCancelledMsg{Form: id} }
	case "enter":
		if m.busy {
			return m, nil
		}
		id, values := m.id, m.Values()
		return m, func() tea.Msg { return FormSubmittedMsg{Form: id, Values: values} }
	}

	if m.fields[m.focus].Kind == FieldChoice {
		switch keyMsg.String() {
		case "left", "h":
			m.cycle(-1)
		case "right", "l", " ":
			m.cycle(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModel) cycle(delta int) {
	n := len(m.fields[m.focus].Choices)
	if n == 0 {
		return
	}
	m.choices[m.focus] = (m.choices[m.focus] + delta + n) % n
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.fields {
		if m.fields[j].Kind == FieldChoice {
			continue
		}
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

// Value returns the current value of the field with key.
func (m FormModel) Value(key string) string {
	for i, f := range m.fields {
		if f.Key != key {
			continue
		}
		if f.Kind == FieldChoice {
			if len(f.Choices) == 0 {
				return ""
			}
			return f.Choices[m.choices[i]].Value
		}
		return m.inputs[i].Value()
	}
	return ""
}

// Values returns every field value by key.
func (m FormModel) Values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		values[f.Key] = m.Value(f.Key)
	}
	return values
}

// SetChoices replaces the options of a choice field. The selection is kept
// when its value is still offered and reset to the first option otherwise.
func (m *FormModel) SetChoices(key string, choices []Choice) {
	for i, f := range m.fields {
		if f.Key != key || f.Kind != FieldChoice {
			continue
		}
		current := m.Value(key)
		m.fields[i].Choices = choices
		m.choices[i] = indexOf(choices, current)
	}
}

// SetError shows msg under the form. An empty msg clears it.
func (m *FormModel) SetError(msg string) {
	m.errText = msg
}

// SetBusy blocks submission while a request is in flight.
func (m *FormModel) SetBusy(busy bool) {
	m.busy = busy
}

// Busy reports whether the form is waiting for a request.
func (m FormModel) Busy() bool {
	return m.busy
}

// View renders the form.
func (m FormModel) View() string {
	labelWidth := 0
	for _, f := range m.fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}
	label := lipgloss.NewStyle().Width(labelWidth + 2)
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.title))
	b.WriteString("\n")
	for i, f := range m.fields {
		marker := "  "
		if i == m.focus {
			marker = m.theme.StatusInfo.Render("› ")
		}
		b.WriteString(marker)
		b.WriteString(label.Render(f.Label + ":"))
		if f.Kind == FieldChoice {
			b.WriteString(m.renderChoice(i))
		} else {
			b.WriteString(m.inputs[i].View())
		}
		b.WriteString("\n")
	}
	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.StatusError.Render(m.errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.theme.StatusPending.Render("Menyimpan..."))
	} else {
		b.WriteString(muted.Render("Tab pindah • ←/→ pilih • Enter simpan • Esc batal"))
	}
	return m.theme.RoundedBox.Render(b.String())
}

func (m FormModel) renderChoice(i int) string {
	f := m.fields[i]
	if len(f.Choices) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("(kosong)")
	}
	text := f.Choices[m.choices[i]].Label
	if i == m.focus {
		return m.theme.Bold.Render(fmt.Sprintf("‹ %s ›", text))
	}
	return fmt.Sprintf("  %s  ", text)
}
