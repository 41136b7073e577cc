package logging

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is one message captured by a Recorder.
type Entry struct {
	Level   string
	Message string
}

// Recorder keeps every message in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Verbose(format string, args ...interface{}) { r.add("verbose", format, args) }
func (r *Recorder) Info(format string, args ...interface{})    { r.add("info", format, args) }
func (r *Recorder) Warn(format string, args ...interface{})    { r.add("warn", format, args) }
func (r *Recorder) Error(format string, args ...interface{})   { r.add("error", format, args) }

// Entries returns a copy of the captured messages.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Contains reports whether any message at level contains substr.
func (r *Recorder) Contains(level, substr string) bool {
	for _, e := range r.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func (r *Recorder) add(level, format string, args []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}
