// Package textedit describes and applies positional edits to text documents.
package textedit

import (
	"fmt"
	"sort"
	"strings"
)

// Position is a 1-based line and 1-based byte column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range spans Start up to, but not including, End.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Edit replaces the text in Range with NewText. An empty range is an insertion.
type Edit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// Insert returns an edit inserting text at p.
func Insert(p Position, text string) Edit {
	return Edit{Range: Range{Start: p, End: p}, NewText: text}
}

// Replace returns an edit replacing the given range.
func Replace(start, end Position, text string) Edit {
	return Edit{Range: Range{Start: start, End: end}, NewText: text}
}

// Document indexes the line starts of a text so positions can be turned into
// byte offsets.
type Document struct {
	text   string
	starts []int
}

// NewDocument indexes text.
func NewDocument(text string) *Document {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Document{text: text, starts: starts}
}

// LineCount returns the number of lines, counting a trailing empty line.
func (d *Document) LineCount() int {
	return len(d.starts)
}

// Line returns the content of a 1-based line without its terminator.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.starts) {
		return ""
	}
	end := len(d.text)
	if n < len(d.starts) {
		end = d.starts[n] - 1
	}
	return strings.TrimSuffix(d.text[d.starts[n-1]:end], "\r")
}

// End returns the position just past the last character.
func (d *Document) End() Position {
	last := len(d.starts)
	return Position{Line: last, Column: len(d.text) - d.starts[last-1] + 1}
}

// Offset converts a position to a byte offset, clamping columns to the line.
func (d *Document) Offset(p Position) (int, error) {
	if p.Line < 1 || p.Line > len(d.starts) || p.Column < 1 {
		return 0, fmt.Errorf("position %s outside document", p)
	}
	start := d.starts[p.Line-1]
	end := len(d.text)
	if p.Line < len(d.starts) {
		end = d.starts[p.Line]
	}
	off := start + p.Column - 1
	if off > end {
		off = end
	}
	return off, nil
}

// Apply applies edits to text and returns the result and the number of edits
// skipped because they overlapped an edit already applied.
//
// Edits are applied from the end of the text backwards. Edits that start at
// the same offset are applied in the order given, so the text of a later
// insertion ends up in front of an earlier one.
func Apply(text string, edits []Edit) (string, int, error) {
	doc := NewDocument(text)
	type span struct {
		start, end int
		text       string
	}
	spans := make([]span, 0, len(edits))
	for _, e := range edits {
		start, err := doc.Offset(e.Range.Start)
		if err != nil {
			return text, 0, err
		}
		end, err := doc.Offset(e.Range.End)
		if err != nil {
			return text, 0, err
		}
		if end < start {
			return text, 0, fmt.Errorf("edit range %s-%s is reversed", e.Range.Start, e.Range.End)
		}
		spans = append(spans, span{start: start, end: end, text: e.NewText})
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start > spans[j].start })

	out := text
	skipped := 0
	limit := len(text) + 1
	for _, s := range spans {
		if s.end > limit {
			skipped++
			continue
		}
		out = out[:s.start] + s.text + out[s.end:]
		limit = s.start
	}
	return out, skipped, nil
}
