// Package decode turns loosely shaped document values into typed scalars.
//
// A document field may arrive as a bare number, a boolean, a text node, or
// an element carrying attributes and optional text. Every decoder accepts
// any of these shapes and falls back to the caller's default instead of
// failing, so a single bad field never aborts a parse.
package decode

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the shape held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindNumber
	KindBool
	KindText
	KindNode
)

// Value is one field of a document in whatever shape it was written.
type Value struct {
	kind  Kind
	num   float64
	flag  bool
	text  string
	attrs map[string]string
}

// Absent is the value of a missing field.
func Absent() Value { return Value{} }

// Number wraps a bare number.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool wraps a bare boolean.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Text wraps a text node.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Node wraps an element with its attributes and trimmed text content.
func Node(attrs map[string]string, text string) Value {
	return Value{kind: KindNode, attrs: attrs, text: text}
}

// Kind returns the shape of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the field was missing.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Attr returns the named attribute of a node value.
func (v Value) Attr(name string) (string, bool) {
	if v.kind != KindNode {
		return "", false
	}
	s, ok := v.attrs[name]
	return s, ok
}

// scalar returns the text a number-like decoder should look at: the value
// attribute of a node, else its text, else the text itself.
func (v Value) scalar() (string, bool) {
	switch v.kind {
	case KindText:
		return strings.TrimSpace(v.text), true
	case KindNode:
		if s, ok := v.attrs["value"]; ok {
			return strings.TrimSpace(s), true
		}
		if t := strings.TrimSpace(v.text); t != "" {
			return t, true
		}
	}
	return "", false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
