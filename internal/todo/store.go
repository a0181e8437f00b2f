// Package todo holds the task list and keeps it mirrored to a key-value
// backend after every mutation.
package todo

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/WillyV3/todolist/internal/metrics"
)

// DefaultKey is the key the task list is stored under.
const DefaultKey = "todoTasks"

const persistTimeout = 5 * time.Second

// Backend is the persistence collaborator: a string-keyed string store.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Listener is told about every change with the current filtered view.
type Listener func(view []Task)

// Store owns the ordered task sequence and the live search term.
// It is not safe for concurrent use; callers drive it from one goroutine.
type Store struct {
	backend  Backend
	key      string
	now      func() time.Time
	ids      IDSource
	log      *slog.Logger
	rec      metrics.Recorder
	listener Listener

	tasks      []Task
	searchTerm string
	snapshot   string // last value loaded from or written to the backend
}

// Option configures a Store.
type Option func(*Store)

func WithKey(key string) Option { return func(s *Store) { s.key = key } }

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func WithIDs(ids IDSource) Option { return func(s *Store) { s.ids = ids } }

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.log = l } }

func WithRecorder(r metrics.Recorder) Option { return func(s *Store) { s.rec = r } }

func WithListener(fn Listener) Option { return func(s *Store) { s.listener = fn } }

// NewStore builds an empty store. Call Load to read persisted tasks.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		now:     time.Now,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		rec:     metrics.NoopRecorder{},
		tasks:   []Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = NewClockIDs(s.now)
	}
	return s
}

// OnChange replaces the change listener.
func (s *Store) OnChange(fn Listener) { s.listener = fn }

// Load replaces the in-memory tasks with the persisted ones. Missing,
// unreadable or malformed data yields an empty list.
func (s *Store) Load() {
	raw, ok, _ := s.read()
	s.tasks = decode(raw, ok, s.log)
	s.snapshot = raw
	s.afterLoad()
}

// Reload re-reads the backend and reports whether anything changed. Values
// equal to the last one this store saw are ignored so that our own writes do
// not clobber transient edit state.
func (s *Store) Reload() bool {
	raw, ok, err := s.read()
	if err != nil || raw == s.snapshot {
		return false
	}
	s.tasks = decode(raw, ok, s.log)
	s.snapshot = raw
	s.afterLoad()
	s.log.Info("Tasks reloaded", "tasks", len(s.tasks))
	s.notify()
	return true
}

func (s *Store) afterLoad() {
	var maxID int64
	for i := range s.tasks {
		s.tasks[i].Editing = false
		if s.tasks[i].ID > maxID {
			maxID = s.tasks[i].ID
		}
	}
	s.ids.Seed(maxID)
	s.rec.SetTasks(len(s.tasks))
}

func (s *Store) read() (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	raw, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("Failed to read tasks", "key", s.key, "error", err)
		s.rec.IncPersistFailure("read")
		return "", false, err
	}
	return raw, ok, nil
}

func decode(raw string, ok bool, log *slog.Logger) []Task {
	if !ok || raw == "" {
		return []Task{}
	}
	tasks, err := Decode(raw)
	if err != nil {
		log.Warn("Stored tasks are malformed, starting empty", "error", err)
		return []Task{}
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks
}

// Add validates and appends a new task.
func (s *Store) Add(text, date string) error {
	text = cleanText(text)
	if n := textLen(text); n < MinTextLen || n > MaxTextLen {
		s.rec.ObserveOperation("add", metrics.ResultInvalid)
		return &ValidationError{Field: "text", Value: text, Err: ErrTextLength}
	}
	if date != "" {
		d, err := time.ParseInLocation(DateLayout, date, s.now().Location())
		if err != nil {
			s.rec.ObserveOperation("add", metrics.ResultInvalid)
			return &ValidationError{Field: "date", Value: date, Err: ErrInvalidDate}
		}
		if d.Before(startOfDay(s.now())) {
			s.rec.ObserveOperation("add", metrics.ResultInvalid)
			return &ValidationError{Field: "date", Value: date, Err: ErrPastDate}
		}
	}

	task := Task{ID: s.ids.Next(), Text: text, Date: date}
	s.tasks = append(s.tasks, task)
	s.log.Debug("Task added", "id", task.ID)
	s.rec.ObserveOperation("add", metrics.ResultOK)
	s.commit()
	return nil
}

// Delete removes the task with id. Unknown ids are ignored.
func (s *Store) Delete(id int64) {
	kept := s.tasks[:0]
	found := false
	for _, t := range s.tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	s.rec.ObserveOperation("delete", result(found))
	s.commit()
}

// EnterEditMode marks id as the only task being edited. Stored data may
// repeat an id; only the first such task is flagged.
func (s *Store) EnterEditMode(id int64) {
	flagged := false
	for i := range s.tasks {
		s.tasks[i].Editing = !flagged && s.tasks[i].ID == id
		flagged = flagged || s.tasks[i].Editing
	}
	s.rec.ObserveOperation("edit", metrics.ResultOK)
	s.commit()
}

// CancelEdit leaves edit mode without changing any task.
func (s *Store) CancelEdit() {
	for i := range s.tasks {
		s.tasks[i].Editing = false
	}
	s.commit()
}

// SaveEdit replaces the text and date of id and leaves edit mode. Unlike Add
// it applies no validation beyond trimming.
func (s *Store) SaveEdit(id int64, text, date string) {
	i := s.index(id)
	if i < 0 {
		s.rec.ObserveOperation("save", metrics.ResultNotFound)
		return
	}
	s.tasks[i].Text = cleanText(text)
	s.tasks[i].Date = date
	s.tasks[i].Editing = false
	s.rec.ObserveOperation("save", metrics.ResultOK)
	s.commit()
}

// FilteredView returns the tasks matching term. Terms shorter than
// MinSearchLen return every task. The result is a copy.
func (s *Store) FilteredView(term string) []Task {
	out := make([]Task, 0, len(s.tasks))
	active := Active(term)
	for _, t := range s.tasks {
		if !active || Contains(t.Text, term) {
			out = append(out, t)
		}
	}
	return out
}

// SetSearchTerm updates the live search term and notifies the listener.
func (s *Store) SetSearchTerm(term string) {
	s.searchTerm = term
	s.notify()
}

func (s *Store) SearchTerm() string { return s.searchTerm }

// View is FilteredView for the live search term.
func (s *Store) View() []Task { return s.FilteredView(s.searchTerm) }

// Tasks returns a copy of every task in order.
func (s *Store) Tasks() []Task { return s.FilteredView("") }

func (s *Store) Len() int { return len(s.tasks) }

// Get returns the task with id.
func (s *Store) Get(id int64) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Editing returns the task currently in edit mode, if any.
func (s *Store) Editing() (Task, bool) {
	for _, t := range s.tasks {
		if t.Editing {
			return t, true
		}
	}
	return Task{}, false
}

// Stats summarizes due dates relative to today.
type Stats struct {
	Total    int
	Dated    int
	DueToday int
	Overdue  int
}

func (s *Store) Stats() Stats {
	now := s.now()
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.HasDate() {
			st.Dated++
		}
		if t.DueToday(now) {
			st.DueToday++
		}
		if t.Overdue(now) {
			st.Overdue++
		}
	}
	return st
}

// Now is the store's clock.
func (s *Store) Now() time.Time { return s.now() }

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// commit persists the full list and notifies the listener. Write failures
// are logged; the in-memory state stays authoritative.
func (s *Store) commit() {
	s.rec.SetTasks(len(s.tasks))
	s.persist()
	s.notify()
}

func (s *Store) persist() {
	data, err := Encode(s.tasks)
	if err != nil {
		s.log.Warn("Failed to encode tasks", "error", err)
		s.rec.IncPersistFailure("encode")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.backend.Set(ctx, s.key, data); err != nil {
		s.log.Warn("Failed to save tasks", "key", s.key, "error", err)
		s.rec.IncPersistFailure("write")
		return
	}
	s.snapshot = data
}

func (s *Store) notify() {
	if s.listener != nil {
		s.listener(s.View())
	}
}

// Encode serializes tasks in the stored wire format.
func Encode(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses the stored wire format.
func Decode(raw string) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func result(found bool) string {
	if found {
		return metrics.ResultOK
	}
	return metrics.ResultNotFound
}
