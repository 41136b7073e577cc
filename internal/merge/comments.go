package merge

import (
	"regexp"
	"strings"

	"github.com/vvka-141/metakit/pkg/metakit"
)

var commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

// collectComments returns every distinct comment across inputs in
// first-seen order.
func collectComments(inputs []Input) []string {
	seen := make(map[string]struct{})
	var comments []string
	for _, in := range inputs {
		for _, c := range commentPattern.FindAllString(in.Content, -1) {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			comments = append(comments, c)
		}
	}
	return comments
}

// attachComments inserts comments right after the first line of content.
func attachComments(content string, comments []string) string {
	if len(comments) == 0 {
		return content
	}
	first, rest, found := strings.Cut(content, "\n")
	var b strings.Builder
	b.WriteString(first)
	for _, c := range comments {
		b.WriteString("\n")
		b.WriteString(metakit.IndentUnit)
		b.WriteString(c)
	}
	if found {
		b.WriteString("\n")
		b.WriteString(rest)
	}
	return b.String()
}
