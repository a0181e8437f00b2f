package main

import (
	"time"

	"github.com/WillyV3/todolist/internal/todo"
)

type sample struct {
	Text string
	Date string
}

// sampleTasks returns a starter list with due dates relative to now.
func sampleTasks(now time.Time) []sample {
	in := func(days int) string {
		return now.AddDate(0, 0, days).Format(todo.DateLayout)
	}

	return []sample{
		{Text: "Press 'a' to add a task"},
		{Text: "Press enter on a task to edit it, ctrl+s to save"},
		{Text: "Press '/' and type two letters to search"},
		{Text: "Buy milk", Date: in(0)},
		{Text: "Buy bread", Date: in(1)},
		{Text: "Renew library books", Date: in(7)},
		{Text: "Book dentist appointment", Date: in(14)},
	}
}
