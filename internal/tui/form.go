package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/WillyV3/todolist/internal/todo"
)

const (
	inputText = iota
	inputDate
)

// formModel edits the text and date of one task. It backs both the add
// screen and the inline row of a task in edit mode.
type formModel struct {
	focusIndex  int
	inputs      []textinput.Model
	editingTask *todo.Task // nil if creating new task
}

func newTaskForm(task *todo.Task) formModel {
	m := formModel{
		inputs:      make([]textinput.Model, 2),
		editingTask: task,
	}

	t := textinput.New()
	t.Cursor.Style = cursorStyle
	t.Placeholder = "What needs doing? (3-255 characters)"
	t.Focus()
	t.PromptStyle = focusedStyle
	t.TextStyle = focusedStyle
	t.CharLimit = todo.MaxTextLen
	t.Width = 50
	if task != nil {
		t.CharLimit = fitLimit(t.CharLimit, task.Text)
		t.SetValue(task.Text)
	}
	m.inputs[inputText] = t

	t = textinput.New()
	t.Cursor.Style = cursorStyle
	t.Placeholder = "YYYY-MM-DD (optional)"
	t.CharLimit = len(todo.DateLayout)
	t.Width = 12
	if task != nil {
		t.CharLimit = fitLimit(t.CharLimit, task.Date)
		t.SetValue(task.Date)
	}
	m.inputs[inputDate] = t

	return m
}

// fitLimit raises limit so an existing value loads without truncation.
// Saved edits are not length checked, so stored values can exceed it.
func fitLimit(limit int, value string) int {
	return max(limit, utf8.RuneCountInString(value))
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

// onSave reports whether the save button has focus.
func (m formModel) onSave() bool {
	return m.focusIndex == len(m.inputs)
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			s := msg.String()

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			return m, m.refocus()
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *formModel) refocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}
	return tea.Batch(cmds...)
}

func (m *formModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// values returns the raw text and the trimmed date.
func (m formModel) values() (string, string) {
	return m.inputs[inputText].Value(), strings.TrimSpace(m.inputs[inputDate].Value())
}

func (m formModel) button() string {
	if m.onSave() {
		return focusedButton
	}
	return blurredButton
}

// View renders the full add screen.
func (m formModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("New Task"))
	b.WriteString("\n\n")

	labels := []string{"Task:", "Due date:"}
	for i := range m.inputs {
		label := labels[i]
		if i == m.focusIndex {
			label = focusedStyle.Render(label)
		} else {
			label = blurredStyle.Render(label)
		}

		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.button())
	b.WriteString("  ")
	b.WriteString(cancelButton)
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Tab: next field • Enter on Save / Ctrl+S: save • Esc: cancel"))

	return b.String()
}

// InlineView renders the form on a single list row.
func (m formModel) InlineView() string {
	return m.inputs[inputText].View() + "  " + m.inputs[inputDate].View() + "  " + m.button()
}
