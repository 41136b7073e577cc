package decode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vvka-141/metakit/pkg/metakit"
)

// Float decodes a number from a bare number, a node's value attribute or
// numeric text.
func Float(v Value, def float64) float64 {
	if v.kind == KindNumber {
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return def
		}
		return v.num
	}
	if s, ok := v.scalar(); ok {
		if f, ok := parseFloat(s); ok {
			return f
		}
	}
	return def
}

// Int decodes a number and rounds it to the nearest integer.
func Int(v Value, def int) int {
	f := Float(v, math.NaN())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int(math.Round(f))
}

// String decodes text content. A present element with no text and no value
// attribute decodes to the empty string; only a missing field takes def.
func String(v Value, def string) string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindNode:
		if v.text != "" {
			return v.text
		}
		if s, ok := v.attrs["value"]; ok {
			return s
		}
		return ""
	}
	return def
}

// Vector3 decodes x/y/z attributes, or whitespace-separated text, or a
// value attribute holding that text. Missing or malformed components are 0.
func Vector3(v Value, def metakit.Vec3) metakit.Vec3 {
	c, ok := components(v, "x", "y", "z")
	if !ok {
		return def
	}
	return metakit.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

// Vector2 decodes x/y attributes, or whitespace-separated text.
func Vector2(v Value, def metakit.Vec2) metakit.Vec2 {
	c, ok := components(v, "x", "y")
	if !ok {
		return def
	}
	return metakit.Vec2{X: c[0], Y: c[1]}
}

func components(v Value, names ...string) ([]float64, bool) {
	out := make([]float64, len(names))
	if v.kind == KindNode {
		found := false
		for i, n := range names {
			if s, ok := v.attrs[n]; ok {
				found = true
				out[i], _ = parseFloat(s)
			}
		}
		if found {
			return out, true
		}
	}
	s, ok := v.scalar()
	if !ok || s == "" {
		return nil, false
	}
	for i, field := range strings.Fields(s) {
		if i >= len(out) {
			break
		}
		out[i], _ = parseFloat(field)
	}
	return out, true
}

// Color decodes an ARGB color. A 0x-prefixed hex string of 8 digits passes
// through unchanged; shorter hex strings are zero padded to 8 upper-case
// digits; decimal integers are rendered as 0x%08X of their unsigned 32-bit
// value.
func Color(v Value, def string) string {
	var s string
	switch v.kind {
	case KindNumber:
		return fmt.Sprintf("0x%08X", toUint32(v.num))
	case KindText, KindNode:
		var ok bool
		if s, ok = v.scalar(); !ok {
			return def
		}
	default:
		return def
	}

	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		digits := s[2:]
		if len(digits) > 8 || !isHex(digits) {
			return def
		}
		if len(digits) == 8 {
			return s
		}
		n, _ := strconv.ParseUint(digits, 16, 32)
		return fmt.Sprintf("0x%08X", n)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fmt.Sprintf("0x%08X", uint32(n))
	}
	return def
}

// BitPattern decodes a 32-step flash sequence. Exactly 32 binary digits pass
// through; decimal integers are rendered as their unsigned 32-bit binary
// form zero padded to 32 digits.
func BitPattern(v Value, def string) string {
	var s string
	switch v.kind {
	case KindNumber:
		return fmt.Sprintf("%032b", toUint32(v.num))
	case KindText, KindNode:
		var ok bool
		if s, ok = v.scalar(); !ok {
			return def
		}
	default:
		return def
	}

	if IsBitPattern(s) {
		return s
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fmt.Sprintf("%032b", uint32(n))
	}
	return def
}

// IsBitPattern reports whether s is exactly 32 binary digits.
func IsBitPattern(s string) bool {
	if len(s) != 32 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return false
		}
	}
	return true
}

// Boolean decodes true, 1 and their string forms; everything else is false.
func Boolean(v Value) bool {
	switch v.kind {
	case KindBool:
		return v.flag
	case KindNumber:
		return v.num == 1
	case KindText, KindNode:
		s, ok := v.scalar()
		return ok && (strings.EqualFold(s, "true") || s == "1")
	}
	return false
}

func toUint32(f float64) uint32 {
	return uint32(int64(f))
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
