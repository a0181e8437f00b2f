package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#4ec9b0")
	muted  = lipgloss.Color("#666")
	faint  = lipgloss.Color("#999")
	text   = lipgloss.Color("#d4d4d4")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(accent)

	subtitleStyle  = lipgloss.NewStyle().Foreground(faint)
	taskStyle      = lipgloss.NewStyle().Foreground(text)
	selectedStyle  = taskStyle.Bold(true).Foreground(accent)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e1e")).Background(lipgloss.Color("#ffc107"))
	dateStyle      = lipgloss.NewStyle().Foreground(faint)
	todayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffc107")).Bold(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f44336")).Bold(true)
	emptyStyle     = lipgloss.NewStyle().Foreground(muted).Italic(true)
	statusStyle    = lipgloss.NewStyle().Foreground(accent).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#f44336")).Bold(true)
	searchStyle    = lipgloss.NewStyle().Foreground(faint)

	focusedStyle = lipgloss.NewStyle().Foreground(accent)
	blurredStyle = lipgloss.NewStyle().Foreground(muted)
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()

	focusedButton = focusedStyle.Render("[ Save ]")
	blurredButton = blurredStyle.Render("[ Save ]")
	cancelButton  = blurredStyle.Render("[ Cancel (Esc) ]")

	pageStyle = lipgloss.NewStyle().Padding(1, 2)
)
