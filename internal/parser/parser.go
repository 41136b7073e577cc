// Package parser reads meta documents into a record collection.
//
// Parsing is lenient: documents are read with a permissive XML reader, every
// known spelling of a container is tried, items without an identity are
// skipped, and every field falls back to its default. The only hard failure
// is a document that cannot be read as XML at all.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/vvka-141/metakit/internal/decode"
	"github.com/vvka-141/metakit/internal/detect"
	"github.com/vvka-141/metakit/internal/logging"
	"github.com/vvka-141/metakit/pkg/metakit"
)

// KitPairing selects how siren entries pick up a kit id and name.
type KitPairing string

const (
	// KitPairingIndex pairs the n-th siren with the n-th kit of the same document.
	KitPairingIndex KitPairing = "index"
	// KitPairingNone leaves sirens with the default kit.
	KitPairingNone KitPairing = "none"
)

// Options configures a Parser.
type Options struct {
	KitPairing KitPairing
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{KitPairing: KitPairingIndex}
}

// Note records an assignment the parser had to make by position rather
// than by identity, or a document part it could not use.
type Note struct {
	Dialect metakit.Dialect `json:"dialect"`
	Record  string          `json:"record,omitempty"`
	Message string          `json:"message"`
}

// Report summarizes what one parse call did to the collection.
type Report struct {
	Dialect metakit.Dialect `json:"dialect"`
	Items   int             `json:"items"`
	Skipped int             `json:"skipped"`
	Created int             `json:"created"`
	Updated int             `json:"updated"`
	Notes   []Note          `json:"notes,omitempty"`
}

// Parser reads documents of every dialect into a caller-owned collection.
type Parser struct {
	opts   Options
	logger metakit.Logger
}

// New creates a parser. A nil logger discards output.
func New(opts Options, logger metakit.Logger) *Parser {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if opts.KitPairing == "" {
		opts.KitPairing = KitPairingIndex
	}
	return &Parser{opts: opts, logger: logger}
}

// Parse reads content as the given dialect into coll.
func (p *Parser) Parse(d metakit.Dialect, content string, coll *metakit.Collection) (Report, error) {
	switch d {
	case metakit.DialectHandling:
		return p.Handling(content, coll)
	case metakit.DialectVehicles:
		return p.Vehicles(content, coll)
	case metakit.DialectCarcols, metakit.DialectModkits:
		return p.Carcols(content, coll)
	case metakit.DialectCarvariations:
		return p.Carvariations(content, coll)
	case metakit.DialectVehicleLayouts:
		return p.VehicleLayouts(content, coll)
	}
	return Report{}, fmt.Errorf("%w: %s", metakit.ErrUnknownDialect, d)
}

// ParseFile detects the dialect of content and reads it into coll.
func (p *Parser) ParseFile(content, fileName string, coll *metakit.Collection) (Report, error) {
	d := detect.Detect(content, fileName)
	if d == metakit.DialectNone {
		return Report{}, &metakit.DocumentError{
			Path:    fileName,
			Message: "no supported meta dialect detected",
			Hint:    "expected handling, vehicles, carcols, carvariations or vehiclelayouts content",
			Err:     metakit.ErrNoDialect,
		}
	}
	rep, err := p.Parse(d, content, coll)
	if err != nil {
		var docErr *metakit.DocumentError
		if errors.As(err, &docErr) && docErr.Path == "" {
			docErr.Path = fileName
		}
		return rep, err
	}
	return rep, nil
}

func (p *Parser) note(rep *Report, record, format string, args ...interface{}) {
	n := Note{Dialect: rep.Dialect, Record: record, Message: fmt.Sprintf(format, args...)}
	rep.Notes = append(rep.Notes, n)
	p.logger.Verbose("%s: %s", rep.Dialect, n.Message)
}

func readTree(content string) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(content); err != nil {
		return nil, &metakit.DocumentError{Message: err.Error(), Err: metakit.ErrMalformedDocument}
	}
	root := doc.Root()
	if root == nil {
		return nil, &metakit.DocumentError{Message: "document has no root element", Err: metakit.ErrMalformedDocument}
	}
	return root, nil
}

// locate finds the list element of a dialect: a child of a known container
// root, or the root itself when the container was left out.
func locate(root *etree.Element, containers, lists []string) *etree.Element {
	if hasTag(root, lists...) {
		return root
	}
	if hasTag(root, containers...) {
		return child(root, lists...)
	}
	return nil
}

func hasTag(el *etree.Element, names ...string) bool {
	for _, n := range names {
		if el.Tag == n {
			return true
		}
	}
	return false
}

// child returns the first child element carrying any of the given names.
func child(el *etree.Element, names ...string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if hasTag(c, names...) {
			return c
		}
	}
	return nil
}

func items(el *etree.Element) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == "Item" || c.Tag == "item" {
			out = append(out, c)
		}
	}
	return out
}

// unwrap flattens one level of nesting when the first item is a wrapper
// that lacks the identity field but holds items of its own.
func unwrap(list []*etree.Element, identity ...string) []*etree.Element {
	if len(list) == 0 || child(list[0], identity...) != nil || len(items(list[0])) == 0 {
		return list
	}
	var out []*etree.Element
	for _, it := range list {
		if nested := items(it); len(nested) > 0 {
			out = append(out, nested...)
		} else {
			out = append(out, it)
		}
	}
	return out
}

func node(el *etree.Element) decode.Value {
	if el == nil {
		return decode.Absent()
	}
	attrs := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		attrs[a.Key] = a.Value
	}
	return decode.Node(attrs, strings.TrimSpace(el.Text()))
}

func field(el *etree.Element, names ...string) decode.Value {
	return node(child(el, names...))
}

func text(el *etree.Element, names ...string) string {
	return strings.TrimSpace(decode.String(field(el, names...), ""))
}

// itemTexts returns the non-empty text of every item under el.
func itemTexts(el *etree.Element) []string {
	var out []string
	for _, it := range items(el) {
		if s := strings.TrimSpace(it.Text()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// resolve finds the record an identity-keyed item belongs to, creating a
// default record when none matches.
func resolve(coll *metakit.Collection, rep *Report, name string, key func(*metakit.VehicleRecord) string) *metakit.VehicleRecord {
	if r := coll.Find(func(r *metakit.VehicleRecord) bool { return metakit.SameName(key(r), name) }); r != nil {
		rep.Updated++
		return r
	}
	rep.Created++
	return coll.CreateDefault(name)
}

type elem = *etree.Element
