// Package tui is the interactive terminal front end of the task store.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/WillyV3/todolist/internal/todo"
)

type viewMode int

const (
	listView viewMode = iota
	formView
	editView
	searchView
)

const statusTTL = 3 * time.Second

type (
	tickMsg   time.Time
	changeMsg struct{}
)

// rows receives the filtered view the store pushes after every change.
type rows struct {
	tasks []todo.Task
}

func (r *rows) set(view []todo.Task) { r.tasks = view }

type Model struct {
	store        *todo.Store
	rows         *rows
	changes      <-chan struct{}
	log          *slog.Logger
	mode         viewMode
	cursor       int
	width        int
	height       int
	showHelp     bool
	help         help.Model
	search       textinput.Model
	form         formModel
	statusMsg    string
	statusErr    bool
	statusExpire time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithChanges reloads the store whenever ch fires.
func WithChanges(ch <-chan struct{}) Option { return func(m *Model) { m.changes = ch } }

func WithLogger(l *slog.Logger) Option { return func(m *Model) { m.log = l } }

// New binds a model to store. The store's change listener is taken over by
// the model.
func New(store *todo.Store, opts ...Option) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search (2+ characters)"
	search.Cursor.Style = cursorStyle
	search.SetValue(store.SearchTerm())

	r := &rows{}
	store.OnChange(r.set)
	r.set(store.View())

	m := Model{
		store:  store,
		rows:   r,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		help:   help.New(),
		search: search,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitForChange(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case changeMsg:
		if m.store.Reload() {
			m.leaveEditor()
			m.setStatus("Tasks changed on disk, reloaded")
		}
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		switch m.mode {
		case formView:
			return m.updateForm(msg)
		case editView:
			return m.updateEdit(msg)
		case searchView:
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	// Non-key messages such as cursor blinks go to the focused inputs.
	var cmd tea.Cmd
	switch m.mode {
	case formView, editView:
		m.form, cmd = m.form.Update(msg)
	case searchView:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.rows.tasks

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Add):
		m.mode = formView
		m.form = newTaskForm(nil)
		return m, m.form.Init()

	case key.Matches(msg, keys.Edit):
		if m.cursor < len(tasks) {
			task := tasks[m.cursor]
			m.store.EnterEditMode(task.ID)
			m.startEdit(task)
			return m, m.form.Init()
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if m.cursor < len(tasks) {
			m.store.Delete(tasks[m.cursor].ID)
			m.clampCursor()
			m.setStatus("Task deleted")
		}
		return m, nil

	case key.Matches(msg, keys.Search):
		m.mode = searchView
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, keys.Cancel):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.store.SetSearchTerm("")
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, keys.Reload):
		if m.store.Reload() {
			m.clampCursor()
			m.setStatus("Tasks reloaded")
		} else {
			m.setStatus("Tasks are up to date")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		m.mode = listView
		return m, nil

	case key.Matches(msg, keys.Save), msg.String() == "enter" && m.form.onSave():
		text, date := m.form.values()
		if err := m.store.Add(text, date); err != nil {
			m.setError(todo.UserMessage(err))
			return m, nil
		}
		m.mode = listView
		m.cursor = max(len(m.rows.tasks)-1, 0)
		m.setStatus("Task added")
		return m, nil

	case msg.String() == "enter":
		m.form.focusIndex = min(m.form.focusIndex+1, len(m.form.inputs))
		cmd := m.form.refocus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editing := m.form.editingTask

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		m.store.CancelEdit()
		m.leaveEditor()
		return m, nil

	case key.Matches(msg, keys.Save), msg.String() == "enter" && m.form.onSave():
		text, date := m.form.values()
		m.store.SaveEdit(editing.ID, text, date)
		m.leaveEditor()
		m.setStatus("Task saved")
		return m, nil

	case msg.String() == "enter":
		m.form.focusIndex = min(m.form.focusIndex+1, len(m.form.inputs))
		cmd := m.form.refocus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.mode = listView
		m.search.Blur()
		return m, nil
	case "esc":
		m.mode = listView
		m.search.Blur()
		m.search.SetValue("")
		m.store.SetSearchTerm("")
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.store.SearchTerm() {
		m.store.SetSearchTerm(m.search.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m *Model) startEdit(task todo.Task) {
	m.mode = editView
	m.form = newTaskForm(&task)
	for i, t := range m.rows.tasks {
		if t.ID == task.ID {
			m.cursor = i
		}
	}
}

func (m *Model) leaveEditor() {
	if m.mode == editView {
		m.mode = listView
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows.tasks) {
		m.cursor = len(m.rows.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
	m.statusExpire = time.Now().Add(statusTTL)
}

func (m *Model) setError(msg string) {
	m.setStatus(msg)
	m.statusErr = true
	m.log.Debug("Input rejected", "reason", msg)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.mode == formView {
		return pageStyle.Render(m.form.View() + m.statusView())
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString(m.listView())
	b.WriteString(m.statusView())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))

	return pageStyle.Render(b.String())
}

func (m Model) headerView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Width(max(m.width-4, 0)).Render("TODO"))
	b.WriteString("\n")

	st := m.store.Stats()
	line := fmt.Sprintf("%d tasks • %d due today • %d overdue", st.Total, st.DueToday, st.Overdue)
	if todo.Active(m.store.SearchTerm()) {
		line += fmt.Sprintf(" • showing %d", len(m.rows.tasks))
	}
	b.WriteString(subtitleStyle.Render(line))
	b.WriteString("\n")

	if m.mode == searchView || m.search.Value() != "" {
		b.WriteString(searchStyle.Render(m.search.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	tasks := m.rows.tasks
	if len(tasks) == 0 {
		msg := "No tasks yet. Press a to add one."
		if todo.Active(m.store.SearchTerm()) {
			msg = "No tasks match the search."
		}
		return emptyStyle.Render(msg)
	}

	now := m.store.Now()
	term := m.store.SearchTerm()

	var b strings.Builder
	for i, task := range tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "→ "
		}

		if task.Editing && m.mode == editView {
			b.WriteString(cursor + m.form.InlineView())
			b.WriteString("\n")
			continue
		}

		b.WriteString(cursor + renderTask(task, term, now, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTask styles match segments one by one; user text is never
// interpreted, only stripped of control characters.
func renderTask(task todo.Task, term string, now time.Time, selected bool) string {
	base := taskStyle
	if selected {
		base = selectedStyle
	}

	var b strings.Builder
	for _, seg := range todo.Highlight(todo.Printable(task.Text), term) {
		if seg.Match {
			b.WriteString(highlightStyle.Render(seg.Text))
		} else {
			b.WriteString(base.Render(seg.Text))
		}
	}

	if task.HasDate() {
		style := dateStyle
		switch {
		case task.Overdue(now):
			style = overdueStyle
		case task.DueToday(now):
			style = todayStyle
		}
		b.WriteString("  ")
		b.WriteString(style.Render(todo.Printable(task.Date)))
	}
	return b.String()
}

func (m Model) statusView() string {
	if m.statusMsg == "" || time.Now().After(m.statusExpire) {
		return ""
	}
	style := statusStyle
	if m.statusErr {
		style = errorStyle
	}
	return "\n" + style.Render(m.statusMsg)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changeMsg{}
	}
}
