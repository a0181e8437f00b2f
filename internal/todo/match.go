package todo

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MinSearchLen is the shortest search term that filters the list.
const MinSearchLen = 2

// Segment is a run of task text, either plain or matching the search term.
type Segment struct {
	Text  string
	Match bool
}

// Active reports whether term is long enough to filter and highlight.
func Active(term string) bool {
	return utf8.RuneCountInString(term) >= MinSearchLen
}

// Contains reports whether text contains term, ignoring case.
func Contains(text, term string) bool {
	if term == "" {
		return true
	}
	t := []rune(norm.NFC.String(text))
	q := []rune(norm.NFC.String(term))
	return indexFold(t, q, 0) >= 0
}

// Highlight splits text into plain and matching segments. Matches are found
// left to right and never overlap. Inactive terms yield a single plain segment.
func Highlight(text, term string) []Segment {
	if text == "" {
		return nil
	}
	if !Active(term) {
		return []Segment{{Text: text}}
	}

	t := []rune(norm.NFC.String(text))
	q := []rune(norm.NFC.String(term))

	var segs []Segment
	start := 0
	for {
		i := indexFold(t, q, start)
		if i < 0 {
			break
		}
		if i > start {
			segs = append(segs, Segment{Text: string(t[start:i])})
		}
		segs = append(segs, Segment{Text: string(t[i : i+len(q)]), Match: true})
		start = i + len(q)
	}
	if start < len(t) {
		segs = append(segs, Segment{Text: string(t[start:])})
	}
	return segs
}

// indexFold returns the rune offset of the first case-insensitive occurrence
// of q in t at or after from, or -1.
func indexFold(t, q []rune, from int) int {
	if len(q) == 0 {
		return from
	}
	for i := from; i+len(q) <= len(t); i++ {
		if strings.EqualFold(string(t[i:i+len(q)]), string(q)) {
			return i
		}
	}
	return -1
}
