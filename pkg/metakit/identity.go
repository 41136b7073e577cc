package metakit

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NamespaceRecordIdentity is the UUID namespace for record identifiers,
// derived from "metakit/record-identity/v1" with the URL namespace.
var NamespaceRecordIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("metakit/record-identity/v1"))

// GenerateRecordID creates a deterministic UUID v5 for the n-th record a
// collection allocates under the given name. The name is case-folded, so
// "Adder" and "ADDER" allocated at the same position get the same id.
func GenerateRecordID(name string, sequence int) string {
	key := FoldName(name) + "#" + strconv.Itoa(sequence)
	return uuid.NewSHA1(NamespaceRecordIdentity, []byte(key)).String()
}

// FoldName trims and case-folds an identity name for comparisons.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName reports whether two identity names match case-insensitively.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}

func upperName(name string) string {
	return cases.Upper(language.Und).String(name)
}

func lowerName(name string) string {
	return cases.Lower(language.Und).String(name)
}
