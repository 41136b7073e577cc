// Package tui renders human-facing output and prompts.
//
// Reports are written through Printer, which styles output with lipgloss
// only in interactive mode. Confirm runs a bubbletea selector for yes/no
// choices such as accepting handling id consolidation during a merge.
package tui
