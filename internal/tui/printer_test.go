package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/metakit/internal/validator"
)

func TestPrinter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Success("%s is valid", "handling.meta")
	p.Failure("%d error(s)", 2)
	p.Line("plain %d", 1)

	assert.Equal(t, "✓ handling.meta is valid\n✗ 2 error(s)\nplain 1\n", buf.String())
}

func TestPrinter_Issue(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Issue("carcols.meta", validator.Issue{
		Line:     3,
		Column:   5,
		Severity: validator.SeverityWarning,
		Message:  "Unescaped '&'",
		Context:  "<gameName>R&D</gameName>",
		Fix:      &validator.QuickFix{Kind: validator.FixEscapeAmpersand, Title: "Escape as &amp;"},
	})

	assert.Equal(t,
		"  carcols.meta:3:5: warning Unescaped '&'\n"+
			"      <gameName>R&D</gameName>\n"+
			"      fix: Escape as &amp;\n",
		buf.String())
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Table([]string{"Name", "Dialects"}, [][]string{{"adder", "handling,vehicles"}})

	out := buf.String()
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "adder")
	assert.Contains(t, out, "handling,vehicles")
}
