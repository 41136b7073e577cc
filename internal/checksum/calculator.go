package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Calculator is an interface for computing document checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	// Normalization makes checksums resilient to formatting changes.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
// Normalization:
//  1. Remove XML comments and processing instructions, keeping CDATA and
//     quoted attribute values intact
//  2. Drop whitespace between adjacent tags
//  3. Collapse remaining whitespace to single spaces
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateString is CalculateRaw for string keys.
func (c SHA256) CalculateString(key string) string {
	return c.CalculateRaw([]byte(key))
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	normalized := c.normalize(string(content))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// normalize applies the normalization rules to content.
func (c SHA256) normalize(content string) string {
	cleaned := c.removeComments(content)

	var b strings.Builder
	b.Grow(len(cleaned))

	pendingSpace := false
	var last rune
	for _, r := range cleaned {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace && !(last == '>' && r == '<') {
			b.WriteRune(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
		last = r
	}

	return b.String()
}

type scanState int

const (
	ssText scanState = iota
	ssTag
	ssQuote
	ssComment
	ssInstruction
	ssCDATA
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
)

// removeComments removes XML comments and processing instructions.
// Comment markers inside quoted attribute values and CDATA sections are kept.
func (c SHA256) removeComments(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := ssText
	var quote byte
	i := 0

	for i < len(content) {
		ch := content[i]

		switch state {
		case ssText:
			switch {
			case strings.HasPrefix(content[i:], commentOpen):
				state = ssComment
				b.WriteByte(' ')
				i += len(commentOpen)
			case strings.HasPrefix(content[i:], cdataOpen):
				state = ssCDATA
				b.WriteString(cdataOpen)
				i += len(cdataOpen)
			case strings.HasPrefix(content[i:], "<?"):
				state = ssInstruction
				b.WriteByte(' ')
				i += 2
			case ch == '<':
				state = ssTag
				b.WriteByte(ch)
				i++
			default:
				b.WriteByte(ch)
				i++
			}

		case ssTag:
			b.WriteByte(ch)
			if ch == '"' || ch == '\'' {
				state = ssQuote
				quote = ch
			} else if ch == '>' {
				state = ssText
			}
			i++

		case ssQuote:
			b.WriteByte(ch)
			if ch == quote {
				state = ssTag
			}
			i++

		case ssComment:
			if strings.HasPrefix(content[i:], commentClose) {
				state = ssText
				i += len(commentClose)
			} else {
				i++
			}

		case ssInstruction:
			if strings.HasPrefix(content[i:], "?>") {
				state = ssText
				i += 2
			} else {
				i++
			}

		case ssCDATA:
			if strings.HasPrefix(content[i:], cdataClose) {
				b.WriteString(cdataClose)
				state = ssText
				i += len(cdataClose)
			} else {
				b.WriteByte(ch)
				i++
			}
		}
	}

	return b.String()
}
