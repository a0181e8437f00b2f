package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillyV3/todolist/internal/kv"
	"github.com/WillyV3/todolist/internal/todo"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newSource(t *testing.T, texts ...string) *todo.Store {
	t.Helper()
	s := todo.NewStore(kv.NewMemory(), todo.WithClock(func() time.Time { return now }))
	s.Load()
	for _, text := range texts {
		require.NoError(t, s.Add(text, "2026-10-20"))
	}
	return s
}

func TestExportJSON(t *testing.T) {
	src := newSource(t, "Buy milk", "Walk the dog")
	out, err := NewExporter(src).Export("json", "milk")
	require.NoError(t, err)

	var tasks []todo.Task
	require.NoError(t, json.Unmarshal(out, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
}

func TestExportCSV(t *testing.T) {
	src := newSource(t, "Buy milk, eggs")
	out, err := NewExporter(src).Export("CSV", "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,text,date,overdue", lines[0])
	assert.Contains(t, lines[1], `"Buy milk, eggs",2026-10-20,false`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSVReportsWriteErrors(t *testing.T) {
	tasks := make([]todo.Task, 40)
	for i := range tasks {
		tasks[i] = todo.Task{ID: int64(i + 1), Text: strings.Repeat("x", todo.MaxTextLen)}
	}

	err := writeCSV(failingWriter{}, tasks, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write csv row")
	assert.ErrorContains(t, err, "disk full")
}

func TestExportHTMLEscapesUserText(t *testing.T) {
	src := newSource(t, `<script>alert("x")</script> buy`)
	out, err := NewExporter(src).Export("html", "buy")
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, `<mark class="highlight">buy</mark>`)
}

func TestExportHTMLEscapesSearchTerm(t *testing.T) {
	src := newSource(t, "a <b> tag")
	out, err := NewExporter(src).Export("html", "<b>")
	require.NoError(t, err)
	assert.Contains(t, string(out), `<mark class="highlight">&lt;b&gt;</mark>`)
	assert.NotContains(t, string(out), "<b>")
}

func TestExportHTMLEmpty(t *testing.T) {
	out, err := NewExporter(newSource(t)).Export("html", "")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<li>No tasks</li>")
}

func TestExportPDF(t *testing.T) {
	src := newSource(t, "Zażółć milk", "Walk the dog")
	out, err := NewExporter(src).Export("pdf", "milk")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := NewExporter(newSource(t)).Export("docx", "")
	assert.ErrorContains(t, err, "unknown format")
}
