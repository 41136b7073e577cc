// Package components holds reusable bubbletea models.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Option is one choice of a Selector. Key, when set, picks the option
// directly.
type Option struct {
	Label       string
	Description string
	Value       string
	Key         string
}

// Selector lets the user pick one option, optionally under a block of
// context lines.
type Selector struct {
	title     string
	body      []string
	options   []Option
	cursor    int
	selected  int
	width     int
	keyMap    selectorKeyMap
	styles    selectorStyles
	submitted bool
	cancelled bool
}

type selectorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

type selectorStyles struct {
	Title       lipgloss.Style
	Body        lipgloss.Style
	Selected    lipgloss.Style
	Unselected  lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
}

func defaultSelectorStyles() selectorStyles {
	return selectorStyles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Body:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginLeft(2),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Unselected:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(4),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func defaultSelectorKeyMap() selectorKeyMap {
	return selectorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "left", "h"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "right", "l", "tab"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// NewSelector creates a selector with the cursor on the first option.
func NewSelector(title string, options []Option) Selector {
	return Selector{
		title:    title,
		options:  options,
		selected: -1,
		width:    60,
		keyMap:   defaultSelectorKeyMap(),
		styles:   defaultSelectorStyles(),
	}
}

// WithBody sets the context lines shown under the title.
func (s Selector) WithBody(lines []string) Selector {
	s.body = lines
	return s
}

// WithCursor moves the initial cursor. Out-of-range values are ignored.
func (s Selector) WithCursor(i int) Selector {
	if i >= 0 && i < len(s.options) {
		s.cursor = i
	}
	return s
}

// Init implements tea.Model.
func (s Selector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		for i, opt := range s.options {
			if opt.Key != "" && msg.String() == opt.Key {
				s.cursor = i
				return s.submit()
			}
		}
		switch {
		case key.Matches(msg, s.keyMap.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, s.keyMap.Down):
			if s.cursor < len(s.options)-1 {
				s.cursor++
			}
		case key.Matches(msg, s.keyMap.Select):
			return s.submit()
		case key.Matches(msg, s.keyMap.Quit):
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
	}
	return s, nil
}

func (s Selector) submit() (tea.Model, tea.Cmd) {
	s.selected = s.cursor
	s.submitted = true
	return s, tea.Quit
}

// View implements tea.Model.
func (s Selector) View() string {
	if s.submitted || s.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.styles.Title.Render(s.title))
	b.WriteString("\n")
	for _, line := range s.body {
		b.WriteString(s.styles.Body.Width(s.width).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, opt := range s.options {
		style, symbol := s.styles.Unselected, "○"
		if i == s.cursor {
			style, symbol = s.styles.Selected, "●"
		}
		label := opt.Label
		if opt.Key != "" {
			label += " (" + opt.Key + ")"
		}
		b.WriteString("  ")
		b.WriteString(style.Render(symbol + " " + label))
		b.WriteString("\n")
		if opt.Description != "" {
			b.WriteString(s.styles.Description.Render(opt.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(s.styles.Help.Render("↑/↓ navigate • enter select • q quit"))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected option index, or -1 if none selected.
func (s Selector) Selected() int {
	return s.selected
}

// Cancelled returns true if the user cancelled the selection.
func (s Selector) Cancelled() bool {
	return s.cancelled
}

// Submitted returns true if the user made a selection.
func (s Selector) Submitted() bool {
	return s.submitted
}

// Value returns the value of the selected option, or "" if none.
func (s Selector) Value() string {
	if s.selected >= 0 && s.selected < len(s.options) {
		return s.options[s.selected].Value
	}
	return ""
}
