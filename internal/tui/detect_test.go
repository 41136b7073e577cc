package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name           string
		nonInteractive string
		ci             string
		noColor        string
	}{
		{"explicit override", "1", "", ""},
		{"ci", "", "true", ""},
		{"no color", "", "", "1"},
		{"override wrong value falls through to terminal check", "true", "", ""},
		{"no terminal in tests", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvNonInteractive, tt.nonInteractive)
			t.Setenv("CI", tt.ci)
			t.Setenv("NO_COLOR", tt.noColor)

			assert.Equal(t, ModeNonInteractive, DetectMode())
			assert.False(t, IsInteractive())
		})
	}
}
