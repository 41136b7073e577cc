package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vvka-141/metakit/internal/validator"
)

// Printer writes human-readable reports. Styling is applied only when
// styled is set, so redirected output stays plain.
type Printer struct {
	w      io.Writer
	styled bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, styled bool) *Printer {
	return &Printer{w: w, styled: styled}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// Title prints a heading line.
func (p *Printer) Title(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.render(TitleStyle, fmt.Sprintf(format, args...)))
}

// Line prints an unstyled line.
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Success prints a line prefixed with a check mark.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.render(SuccessStyle, SymbolCheck)+" "+fmt.Sprintf(format, args...))
}

// Failure prints a line prefixed with a cross.
func (p *Printer) Failure(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.render(ErrorStyle, SymbolCross)+" "+fmt.Sprintf(format, args...))
}

// Issue prints one validation issue with its excerpt and quick-fix title.
func (p *Printer) Issue(path string, is validator.Issue) {
	style := WarningStyle
	if is.Severity == validator.SeverityError {
		style = ErrorStyle
	}
	loc := p.render(LocationStyle, fmt.Sprintf("%s:%d:%d:", path, is.Line, is.Column))
	fmt.Fprintf(p.w, "  %s %s %s\n", loc, p.render(style, string(is.Severity)), is.Message)
	if is.Context != "" {
		fmt.Fprintf(p.w, "      %s\n", p.render(MutedStyle, is.Context))
	}
	if is.Fix != nil {
		fmt.Fprintf(p.w, "      %s %s\n", p.render(FixStyle, "fix:"), is.Fix.Title)
	}
}

// Table prints rows under headers.
func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	if p.styled {
		t = t.BorderStyle(MutedStyle).StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})
	} else {
		t = t.StyleFunc(func(row, col int) lipgloss.Style { return lipgloss.NewStyle().Padding(0, 1) })
	}
	fmt.Fprintln(p.w, t.String())
}
