package metakit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Dialect identifies one of the meta document schemas.
type Dialect string

const (
	DialectNone           Dialect = ""
	DialectHandling       Dialect = "handling"
	DialectVehicles       Dialect = "vehicles"
	DialectCarcols        Dialect = "carcols"
	DialectCarvariations  Dialect = "carvariations"
	DialectVehicleLayouts Dialect = "vehiclelayouts"
	DialectModkits        Dialect = "modkits"
)

// AllDialects lists every concrete dialect in serialization order.
var AllDialects = []Dialect{
	DialectHandling,
	DialectVehicles,
	DialectCarcols,
	DialectCarvariations,
	DialectVehicleLayouts,
	DialectModkits,
}

func (d Dialect) String() string {
	if d == DialectNone {
		return "none"
	}
	return string(d)
}

// FileName returns the conventional file name for documents of this dialect.
func (d Dialect) FileName() string {
	if d == DialectNone {
		return ""
	}
	return string(d) + MetaFileExtension
}

// ParseDialect resolves a dialect name, case-insensitively.
func ParseDialect(name string) (Dialect, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, d := range AllDialects {
		if string(d) == n {
			return d, nil
		}
	}
	return DialectNone, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

func (d Dialect) bit() DialectSet {
	for i, known := range AllDialects {
		if known == d {
			return 1 << uint(i)
		}
	}
	return 0
}

// DialectSet records which sub-records of a VehicleRecord hold data that was
// actually loaded, as opposed to defaults.
type DialectSet uint8

// Add marks d as loaded.
func (s *DialectSet) Add(d Dialect) {
	*s |= d.bit()
}

// Has reports whether d is loaded.
func (s DialectSet) Has(d Dialect) bool {
	b := d.bit()
	return b != 0 && s&b != 0
}

// Dialects returns the loaded dialects in serialization order.
func (s DialectSet) Dialects() []Dialect {
	var out []Dialect
	for _, d := range AllDialects {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s DialectSet) String() string {
	names := make([]string, 0, len(AllDialects))
	for _, d := range s.Dialects() {
		names = append(names, string(d))
	}
	return strings.Join(names, ",")
}

func (s DialectSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(AllDialects))
	for _, d := range s.Dialects() {
		names = append(names, string(d))
	}
	return json.Marshal(names)
}

func (s *DialectSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = 0
	for _, n := range names {
		d, err := ParseDialect(n)
		if err != nil {
			return err
		}
		s.Add(d)
	}
	return nil
}
