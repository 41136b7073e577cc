package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vvka-141/metakit/internal/textedit"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var (
	tagPattern       = regexp.MustCompile(`</?([a-zA-Z_][\w:.-]*)[^>]*/?>`)
	emptyTagPattern  = regexp.MustCompile(`<\s+>|</\s*>`)
	attrPattern      = regexp.MustCompile(`\s([a-zA-Z_][\w:.-]*)\s*=\s*("[^"]*"|'[^']*'|[^\s"'/>]+)`)
	controlPattern   = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
	entityPattern    = regexp.MustCompile(`^(?:amp|lt|gt|quot|apos|#[0-9]+|#x[0-9a-fA-F]+);`)
	commentOpen      = "<!--"
	commentTerminate = "-->"
)

type frame struct {
	name   string
	line   int
	column int
}

type scanner struct {
	doc    *textedit.Document
	stack  []frame
	issues []Issue
}

// Validate checks content in a single pass over its lines, tracking open
// elements on a stack. Issues are ordered by line; the result is valid when
// no issue has error severity.
func Validate(content string) Result {
	s := &scanner{doc: textedit.NewDocument(content)}
	total := s.doc.LineCount()

	for ln := 1; ln <= total; ln++ {
		line := s.doc.Line(ln)
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "<?xml") {
			continue
		}

		if strings.HasPrefix(trimmed, commentOpen) && !strings.Contains(trimmed, commentTerminate) {
			if end := s.findCommentEnd(ln + 1); end > 0 {
				ln = end
			} else {
				s.add(ln, strings.Index(line, commentOpen)+1, SeverityError, "Unclosed comment block",
					&QuickFix{Kind: FixCloseComment, Title: "Close the comment", Edits: []textedit.Edit{
						textedit.Insert(textedit.Position{Line: ln, Column: len(line) + 1}, " "+commentTerminate),
					}})
			}
			continue
		}

		s.checkLine(ln, line)
	}

	for _, f := range s.stack {
		s.add(f.line, f.column, SeverityError, fmt.Sprintf("Unclosed tag <%s>", f.name),
			&QuickFix{Kind: FixCloseTag, Title: fmt.Sprintf("Add </%s>", f.name), Edits: []textedit.Edit{
				textedit.Insert(s.doc.End(), "\n</"+f.name+">"),
			}})
	}

	sort.SliceStable(s.issues, func(i, j int) bool { return s.issues[i].Line < s.issues[j].Line })
	res := Result{Issues: s.issues}
	if res.Issues == nil {
		res.Issues = []Issue{}
	}
	res.Valid = res.Errors() == 0
	return res
}

func (s *scanner) findCommentEnd(from int) int {
	for j := from; j <= s.doc.LineCount(); j++ {
		if strings.Contains(s.doc.Line(j), commentTerminate) {
			return j
		}
	}
	return 0
}

// maskComments blanks every closed comment on the line, keeping columns intact.
func maskComments(line string) string {
	out := []byte(line)
	for from := 0; ; {
		i := strings.Index(line[from:], commentOpen)
		if i < 0 {
			break
		}
		start := from + i
		j := strings.Index(line[start+len(commentOpen):], commentTerminate)
		if j < 0 {
			break
		}
		from = start + len(commentOpen) + j + len(commentTerminate)
		for k := start; k < from; k++ {
			out[k] = ' '
		}
	}
	return string(out)
}

func (s *scanner) checkLine(ln int, raw string) {
	line := maskComments(raw)
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	indent := strings.Index(line, trimmed) + 1

	if !strings.HasPrefix(trimmed, "<") && !strings.HasSuffix(trimmed, ">") && len(s.stack) == 0 {
		s.add(ln, indent, SeverityError, "Text outside of any element",
			&QuickFix{Kind: FixRemoveStrayText, Title: "Remove the stray text", Edits: []textedit.Edit{s.deleteLine(ln)}})
		return
	}

	opens, closes := strings.Count(line, "<"), strings.Count(line, ">")
	if opens != closes {
		s.add(ln, indent, SeverityError,
			fmt.Sprintf("Mismatched angle brackets: %d '<' but %d '>'", opens, closes), nil)
		return
	}

	if loc := emptyTagPattern.FindStringIndex(line); loc != nil {
		s.add(ln, loc[0]+1, SeverityError, "Empty tag name", nil)
		return
	}

	for _, m := range tagPattern.FindAllStringSubmatchIndex(line, -1) {
		s.checkTag(ln, line, m)
	}

	if loc := controlPattern.FindStringIndex(line); loc != nil {
		s.add(ln, loc[0]+1, SeverityError,
			fmt.Sprintf("Invalid control character U+%04X", line[loc[0]]), nil)
	}

	s.checkAmpersands(ln, line)
}

func (s *scanner) checkTag(ln int, line string, m []int) {
	full := line[m[0]:m[1]]
	name := line[m[2]:m[3]]
	nameStart := textedit.Position{Line: ln, Column: m[2] + 1}
	nameEnd := textedit.Position{Line: ln, Column: m[3] + 1}

	switch {
	case strings.HasPrefix(full, "</"):
		s.closeTag(ln, line, m[0], m[1], name, nameStart, nameEnd)
		return
	case strings.HasSuffix(full, "/>"):
	default:
		s.stack = append(s.stack, frame{name: name, line: ln, column: m[0] + 1})
	}
	s.checkAttributes(ln, line, m[3], m[1])
}

func (s *scanner) closeTag(ln int, line string, start, end int, name string, nameStart, nameEnd textedit.Position) {
	col := start + 1
	if len(s.stack) == 0 {
		s.add(ln, col, SeverityError, fmt.Sprintf("Unexpected closing tag </%s>", name),
			&QuickFix{Kind: FixRemoveStrayText, Title: fmt.Sprintf("Remove </%s>", name), Edits: []textedit.Edit{
				textedit.Replace(textedit.Position{Line: ln, Column: col}, textedit.Position{Line: ln, Column: end + 1}, ""),
			}})
		return
	}

	top := s.stack[len(s.stack)-1]
	if top.name == name {
		s.stack = s.stack[:len(s.stack)-1]
		return
	}

	s.add(ln, col, SeverityError,
		fmt.Sprintf("Mismatched closing tag: expected </%s> (opened at line %d) but found </%s>", top.name, top.line, name),
		&QuickFix{Kind: FixClosingTagName, Title: fmt.Sprintf("Change to </%s>", top.name), Edits: []textedit.Edit{
			textedit.Replace(nameStart, nameEnd, top.name),
		}})

	for i := len(s.stack) - 2; i >= 0; i-- {
		if s.stack[i].name == name {
			s.stack = s.stack[:i+1]
			return
		}
	}
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *scanner) checkAttributes(ln int, line string, from, to int) {
	seen := make(map[string]bool)
	for _, a := range attrPattern.FindAllStringSubmatchIndex(line[from:to], -1) {
		start, end := from+a[0], from+a[1]
		name := line[from+a[2] : from+a[3]]
		valStart, valEnd := from+a[4], from+a[5]
		value := line[valStart:valEnd]

		if seen[name] {
			s.add(ln, from+a[2]+1, SeverityWarning, fmt.Sprintf("Duplicate attribute %q", name),
				&QuickFix{Kind: FixRemoveDuplicateAttr, Title: fmt.Sprintf("Remove duplicate %s", name), Edits: []textedit.Edit{
					textedit.Replace(textedit.Position{Line: ln, Column: start + 1}, textedit.Position{Line: ln, Column: end + 1}, ""),
				}})
			continue
		}
		seen[name] = true

		if value[0] != '"' && value[0] != '\'' {
			s.add(ln, valStart+1, SeverityWarning, fmt.Sprintf("Unquoted value for attribute %q", name),
				&QuickFix{Kind: FixQuoteAttribute, Title: "Quote the value", Edits: []textedit.Edit{
					textedit.Replace(textedit.Position{Line: ln, Column: valStart + 1}, textedit.Position{Line: ln, Column: valEnd + 1}, `"`+value+`"`),
				}})
		}
	}
}

func (s *scanner) checkAmpersands(ln int, line string) {
	var edits []textedit.Edit
	first := 0
	for i := 0; i < len(line); i++ {
		if line[i] != '&' || entityPattern.MatchString(line[i+1:]) {
			continue
		}
		if first == 0 {
			first = i + 1
		}
		edits = append(edits, textedit.Replace(textedit.Position{Line: ln, Column: i + 1}, textedit.Position{Line: ln, Column: i + 2}, "&amp;"))
	}
	if len(edits) == 0 {
		return
	}
	s.add(ln, first, SeverityWarning, "Unescaped '&' (use &amp;)",
		&QuickFix{Kind: FixEscapeAmpersand, Title: "Escape as &amp;", Edits: edits})
}

// deleteLine removes a whole line including its terminator.
func (s *scanner) deleteLine(ln int) textedit.Edit {
	if ln < s.doc.LineCount() {
		return textedit.Replace(textedit.Position{Line: ln, Column: 1}, textedit.Position{Line: ln + 1, Column: 1}, "")
	}
	if ln > 1 {
		prev := s.doc.Line(ln - 1)
		return textedit.Replace(textedit.Position{Line: ln - 1, Column: len(prev) + 1}, s.doc.End(), "")
	}
	return textedit.Replace(textedit.Position{Line: ln, Column: 1}, s.doc.End(), "")
}

func (s *scanner) add(line, column int, sev Severity, msg string, fix *QuickFix) {
	s.issues = append(s.issues, Issue{
		Line:     line,
		Column:   column,
		Severity: sev,
		Message:  msg,
		Context:  excerpt(s.doc.Line(line)),
		Fix:      fix,
	})
}

func excerpt(line string) string {
	r := []rune(strings.TrimSpace(line))
	if len(r) > metakit.MaxContextLength {
		r = r[:metakit.MaxContextLength]
	}
	return string(r)
}
