package todo

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func validTextGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 ]{1,253}[A-Za-z0-9]`)
}

func paddingGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[ \t]{0,3}`)
}

func futureDateGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.Map(rapid.IntRange(0, 400), day),
	)
}

func TestAddValidProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestStore(t, nil)
		n := rapid.IntRange(0, 5).Draw(t, "existing")
		for i := 0; i < n; i++ {
			if err := s.Add(validTextGen().Draw(t, "seed"), ""); err != nil {
				t.Fatalf("seed add failed: %v", err)
			}
		}

		text := validTextGen().Draw(t, "text")
		pad := paddingGen().Draw(t, "pad")
		date := futureDateGen().Draw(t, "date")
		before := s.Len()

		if err := s.Add(pad+text+pad, date); err != nil {
			t.Fatalf("valid add rejected: %v", err)
		}
		if s.Len() != before+1 {
			t.Fatalf("expected %d tasks, got %d", before+1, s.Len())
		}
		last := s.Tasks()[s.Len()-1]
		if last.Text != text || last.Date != date || last.Editing {
			t.Fatalf("unexpected task %+v", last)
		}
	})
}

func TestAddInvalidLengthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestStore(t, nil)
		_ = s.Add("existing task", "")
		before := s.Tasks()

		text := rapid.OneOf(
			rapid.StringMatching(`[a-z]{0,2}`),
			rapid.StringMatching(`[a-z]{256,300}`),
		).Draw(t, "text")
		pad := paddingGen().Draw(t, "pad")

		if err := s.Add(pad+text+pad, ""); err == nil {
			t.Fatalf("add of %d chars accepted", len(text))
		}
		if s.Len() != len(before) {
			t.Fatalf("sequence changed")
		}
	})
}

func TestAddPastDateProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestStore(t, nil)
		offset := rapid.IntRange(1, 3650).Draw(t, "daysAgo")

		if err := s.Add(validTextGen().Draw(t, "text"), day(-offset)); err == nil {
			t.Fatalf("past date %s accepted", day(-offset))
		}
		if s.Len() != 0 {
			t.Fatalf("sequence changed")
		}
	})
}

func TestSingleEditorProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestStore(t, nil)
		n := rapid.IntRange(1, 6).Draw(t, "tasks")
		for i := 0; i < n; i++ {
			_ = s.Add(validTextGen().Draw(t, "text"), "")
		}
		ids := make([]int64, 0, n+1)
		for _, task := range s.Tasks() {
			ids = append(ids, task.ID)
		}
		ids = append(ids, -1)

		steps := rapid.SliceOfN(rapid.SampledFrom(ids), 1, 20).Draw(t, "steps")
		for _, id := range steps {
			s.EnterEditMode(id)
			editing := 0
			for _, task := range s.Tasks() {
				if task.Editing {
					editing++
				}
			}
			if editing > 1 {
				t.Fatalf("%d tasks editing after EnterEditMode(%d)", editing, id)
			}
		}
	})
}

func TestFilteredViewProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestStore(t, nil)
		texts := rapid.SliceOfN(rapid.StringMatching(`[A-Za-z ]{3,20}`), 0, 10).Draw(t, "texts")
		for _, text := range texts {
			_ = s.Add(text, "")
		}
		term := rapid.StringMatching(`[A-Za-z]{0,4}`).Draw(t, "term")

		all := s.Tasks()
		got := s.FilteredView(term)

		if len(term) < MinSearchLen {
			if len(got) != len(all) {
				t.Fatalf("short term %q filtered %d of %d", term, len(got), len(all))
			}
			for i := range all {
				if got[i] != all[i] {
					t.Fatalf("order changed at %d", i)
				}
			}
			return
		}

		var want []Task
		for _, task := range all {
			if strings.Contains(strings.ToLower(task.Text), strings.ToLower(term)) {
				want = append(want, task)
			}
		}
		if len(got) != len(want) {
			t.Fatalf("term %q: got %d tasks, want %d", term, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("term %q: mismatch at %d: %+v vs %+v", term, i, got[i], want[i])
			}
		}
	})
}

func TestDeleteProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestStore(t, nil)
		n := rapid.IntRange(0, 6).Draw(t, "tasks")
		for i := 0; i < n; i++ {
			_ = s.Add(validTextGen().Draw(t, "text"), "")
		}
		ids := []int64{0}
		for _, task := range s.Tasks() {
			ids = append(ids, task.ID)
		}
		id := rapid.SampledFrom(ids).Draw(t, "id")
		_, existed := s.Get(id)
		before := s.Len()

		s.Delete(id)

		for _, task := range s.FilteredView("") {
			if task.ID == id {
				t.Fatalf("deleted id %d still present", id)
			}
		}
		want := before
		if existed {
			want--
		}
		if s.Len() != want {
			t.Fatalf("expected %d tasks, got %d", want, s.Len())
		}
	})
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tasks := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) Task {
			return Task{
				ID:   rapid.Int64Range(1, 1<<50).Draw(t, "id"),
				Text: rapid.String().Draw(t, "text"),
				Date: futureDateGen().Draw(t, "date"),
			}
		}), 0, 10).Draw(t, "tasks")

		raw, err := Encode(tasks)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := Decode(raw)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got) != len(tasks) {
			t.Fatalf("length %d != %d", len(got), len(tasks))
		}
		for i := range tasks {
			if got[i] != tasks[i] {
				t.Fatalf("task %d: %+v != %+v", i, got[i], tasks[i])
			}
		}
	})
}
