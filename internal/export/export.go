// Package export renders the task list for use outside the terminal.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/WillyV3/todolist/internal/todo"
)

// Formats accepted by Export.
var Formats = []string{"json", "csv", "html", "pdf"}

// Source is the part of the task store an export reads.
type Source interface {
	FilteredView(term string) []todo.Task
	Now() time.Time
}

type Exporter struct{ src Source }

func NewExporter(src Source) *Exporter { return &Exporter{src: src} }

// Export renders the tasks matching term in format. Matches are highlighted
// in the html and pdf output.
func (e *Exporter) Export(format, term string) ([]byte, error) {
	tasks := e.src.FilteredView(term)
	now := e.src.Now()

	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(tasks, "", "  ")
	case "csv":
		var b bytes.Buffer
		if err := writeCSV(&b, tasks, now); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case "html":
		return renderHTML(tasks, term, now)
	case "pdf":
		return renderPDF(tasks, term, now)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

type htmlTask struct {
	Segments []todo.Segment
	Date     string
	Overdue  bool
}

var page = template.Must(template.New("tasks").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Tasks</title>
<style>
.overdue { color: #f44336; }
.task-date { color: #999; margin-left: 1em; }
</style>
</head>
<body>
<h1>Tasks</h1>
{{if .Term}}<p>Search: {{.Term}}</p>{{end}}
<ul id="task-list">
{{- range .Tasks}}
<li class="task-item"><span class="task-text">{{range .Segments}}{{if .Match}}<mark class="highlight">{{.Text}}</mark>{{else}}{{.Text}}{{end}}{{end}}</span>
{{- if .Date}}<span class="task-date{{if .Overdue}} overdue{{end}}">{{.Date}}</span>{{end}}</li>
{{- else}}
<li>No tasks</li>
{{- end}}
</ul>
<p>Exported {{.When}}</p>
</body>
</html>
`))

func renderHTML(tasks []todo.Task, term string, now time.Time) ([]byte, error) {
	rows := make([]htmlTask, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, htmlTask{
			Segments: todo.Highlight(t.Text, term),
			Date:     t.Date,
			Overdue:  t.Overdue(now),
		})
	}

	var buf bytes.Buffer
	err := page.Execute(&buf, map[string]any{
		"Tasks": rows,
		"Term":  term,
		"When":  now.Format("2006-01-02 15:04"),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(tasks []todo.Task, term string, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	if len(tasks) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(40, 6, "No tasks")
		pdf.Ln(6)
	}

	for _, t := range tasks {
		pdf.SetFont("Arial", "", 10)
		pdf.Write(6, "- ")
		for _, seg := range todo.Highlight(todo.Printable(t.Text), term) {
			style := ""
			if seg.Match {
				style = "BU"
			}
			pdf.SetFont("Arial", style, 10)
			pdf.Write(6, tr(seg.Text))
		}
		if t.Date != "" {
			pdf.SetFont("Arial", "", 10)
			if t.Overdue(now) {
				pdf.SetTextColor(244, 67, 54)
			} else {
				pdf.SetTextColor(120, 120, 120)
			}
			pdf.Write(6, "  "+t.Date)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSV(out io.Writer, tasks []todo.Task, now time.Time) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "text", "date", "overdue"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range tasks {
		if err := w.Write([]string{fmt.Sprint(t.ID), t.Text, t.Date, fmt.Sprint(t.Overdue(now))}); err != nil {
			return fmt.Errorf("write csv row %d: %w", t.ID, err)
		}
	}
	w.Flush()
	return w.Error()
}
