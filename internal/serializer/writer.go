// Package serializer renders record collections back into meta documents.
//
// Output is canonical: fixed element order, two-space indentation, LF line
// separators, no trailing newline, and every floating-point scalar with
// exactly six decimals. Empty lists are written as empty elements so the
// container is never dropped.
package serializer

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/vvka-141/metakit/pkg/metakit"
)

type writer struct {
	lines []string
}

func newWriter() *writer {
	return &writer{lines: []string{metakit.XMLProlog}}
}

func (w *writer) raw(depth int, s string) {
	w.lines = append(w.lines, strings.Repeat(metakit.IndentUnit, depth)+s)
}

func (w *writer) open(depth int, tag string) {
	w.raw(depth, "<"+tag+">")
}

func (w *writer) openAttr(depth int, tag, attr, value string) {
	w.raw(depth, "<"+tag+" "+attr+`="`+escape(value)+`">`)
}

func (w *writer) close(depth int, tag string) {
	w.raw(depth, "</"+tag+">")
}

func (w *writer) empty(depth int, tag string) {
	w.raw(depth, "<"+tag+" />")
}

// text writes <tag>value</tag>, or <tag /> for an empty value.
func (w *writer) text(depth int, tag, value string) {
	if value == "" {
		w.empty(depth, tag)
		return
	}
	w.raw(depth, "<"+tag+">"+escape(value)+"</"+tag+">")
}

func (w *writer) value(depth int, tag, value string) {
	w.raw(depth, "<"+tag+` value="`+escape(value)+`" />`)
}

func (w *writer) decimal(depth int, tag string, f float64) {
	w.value(depth, tag, formatFloat(f))
}

func (w *writer) integer(depth int, tag string, n int) {
	w.value(depth, tag, strconv.Itoa(n))
}

func (w *writer) vec3(depth int, tag string, v metakit.Vec3) {
	w.raw(depth, "<"+tag+` x="`+formatFloat(v.X)+`" y="`+formatFloat(v.Y)+`" z="`+formatFloat(v.Z)+`" />`)
}

func (w *writer) vec2(depth int, tag string, v metakit.Vec2) {
	w.raw(depth, "<"+tag+` x="`+formatFloat(v.X)+`" y="`+formatFloat(v.Y)+`" />`)
}

// list writes tag around n children produced by item, or an empty element
// when n is zero.
func (w *writer) list(depth int, tag string, n int, item func(i int)) {
	if n == 0 {
		w.empty(depth, tag)
		return
	}
	w.open(depth, tag)
	for i := 0; i < n; i++ {
		item(i)
	}
	w.close(depth, tag)
}

func (w *writer) String() string {
	return strings.Join(w.lines, "\n")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', metakit.FloatPrecision, 64)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func loaded(records []*metakit.VehicleRecord, d metakit.Dialect) []*metakit.VehicleRecord {
	var out []*metakit.VehicleRecord
	for _, r := range records {
		if r.Loaded.Has(d) {
			out = append(out, r)
		}
	}
	return out
}
