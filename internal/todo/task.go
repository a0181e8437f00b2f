package todo

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	MinTextLen = 3
	MaxTextLen = 255

	// DateLayout is the calendar date format used on the wire and in inputs.
	DateLayout = "2006-01-02"
)

// Task represents a todo item
type Task struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Date    string `json:"date"`
	Editing bool   `json:"isEditing"`
}

// HasDate reports whether the task carries a due date.
func (t Task) HasDate() bool {
	return t.Date != ""
}

// Due parses the task date in loc. ok is false for undated or malformed dates.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	if t.Date == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, t.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Overdue reports whether the due date lies before the calendar day of now.
func (t Task) Overdue(now time.Time) bool {
	d, ok := t.Due(now.Location())
	return ok && d.Before(startOfDay(now))
}

// DueToday reports whether the due date is the calendar day of now.
func (t Task) DueToday(now time.Time) bool {
	d, ok := t.Due(now.Location())
	return ok && d.Equal(startOfDay(now))
}

// cleanText trims surrounding whitespace and normalizes to NFC so that
// visually identical input compares and counts the same.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func textLen(s string) int {
	return utf8.RuneCountInString(s)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Printable drops control characters, including the ESC that starts terminal
// escape sequences, so stored text can be drawn verbatim.
func Printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) || r == utf8.RuneError {
			return -1
		}
		return r
	}, s)
}
