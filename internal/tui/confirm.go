package tui

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/metakit/internal/tui/components"
)

// ErrCancelled is returned when the user quits a prompt without choosing.
var ErrCancelled = errors.New("cancelled by user")

// Confirm asks a yes/no question on stderr, showing body lines under the
// title. It must only be called in interactive mode.
func Confirm(title string, body []string, defaultYes bool) (bool, error) {
	sel := components.NewSelector(title, []components.Option{
		{Label: "Yes", Value: "yes", Key: "y"},
		{Label: "No", Value: "no", Key: "n"},
	}).WithBody(body)
	if !defaultYes {
		sel = sel.WithCursor(1)
	}

	final, err := tea.NewProgram(sel, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return false, err
	}
	result := final.(components.Selector)
	if result.Cancelled() {
		return false, ErrCancelled
	}
	return result.Value() == "yes", nil
}
