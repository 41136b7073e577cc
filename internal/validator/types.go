// Package validator checks the structure of meta documents line by line and
// proposes quick-fixes for the problems it finds. It never modifies the text.
package validator

import "github.com/vvka-141/metakit/internal/textedit"

// Severity classifies an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// FixKind names the kind of repair a quick-fix performs.
type FixKind string

const (
	FixCloseComment        FixKind = "close-comment"
	FixRemoveStrayText     FixKind = "remove-stray-text"
	FixCloseTag            FixKind = "close-tag"
	FixClosingTagName      FixKind = "fix-closing-tag"
	FixRemoveDuplicateAttr FixKind = "remove-duplicate-attr"
	FixQuoteAttribute      FixKind = "quote-attribute"
	FixEscapeAmpersand     FixKind = "escape-ampersand"
)

// QuickFix is a proposed repair. It is a value: applying it is up to the
// caller, see textedit.Apply.
type QuickFix struct {
	Kind  FixKind         `json:"kind"`
	Title string          `json:"title"`
	Edits []textedit.Edit `json:"edits"`
}

// Issue is one structural problem.
type Issue struct {
	Line     int       `json:"line"`
	Column   int       `json:"column"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Context  string    `json:"context"`
	Fix      *QuickFix `json:"fix,omitempty"`
}

// Result is the outcome of validating one document.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Errors returns the number of error-severity issues.
func (r Result) Errors() int {
	return r.count(SeverityError)
}

// Warnings returns the number of warning-severity issues.
func (r Result) Warnings() int {
	return r.count(SeverityWarning)
}

// Fixes returns every quick-fix edit in issue order.
func (r Result) Fixes() []textedit.Edit {
	var edits []textedit.Edit
	for _, is := range r.Issues {
		if is.Fix != nil {
			edits = append(edits, is.Fix.Edits...)
		}
	}
	return edits
}

func (r Result) count(s Severity) int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == s {
			n++
		}
	}
	return n
}
