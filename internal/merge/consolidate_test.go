package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/metakit/pkg/metakit"
)

func TestPickCanonicalID(t *testing.T) {
	tests := []struct {
		current, incoming, want string
	}{
		{"", "ADDER", "ADDER"},
		{"ADDER", "", "ADDER"},
		{"  ", " T20 ", "T20"},
		{"DURANGOSS", "DURANGO", "DURANGO"},
		{"DURANGO", "DURANGOSS", "DURANGO"},
		{"durango", "DURANGOSS", "durango"},
		{"Adder", "ADDER", "Adder"},
		{"ADDER", "T20", "ADDER"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.current+"|"+tt.incoming, func(t *testing.T) {
			assert.Equal(t, tt.want, PickCanonicalID(tt.current, tt.incoming))
		})
	}
}

func TestCanonicalBySimilarity(t *testing.T) {
	all := []string{"DURANGOSS", "DURANGO", "DUR", "ADDER", "adder2"}

	assert.Equal(t, "DUR", CanonicalBySimilarity("DURANGOSS", all))
	assert.Equal(t, "DUR", CanonicalBySimilarity("DURANGO", all))
	assert.Equal(t, "DUR", CanonicalBySimilarity("DUR", all))
	assert.Equal(t, "ADDER", CanonicalBySimilarity("adder2", all))
	assert.Equal(t, "T20", CanonicalBySimilarity("T20", all))
	assert.Equal(t, "", CanonicalBySimilarity(" ", all))
}

func TestConsolidate(t *testing.T) {
	a := metakit.NewRecord("a", "durango")
	a.Identity.HandlingID = "DURANGO"
	b := metakit.NewRecord("b", "durangoss")
	b.Identity.HandlingID = "DURANGOSS"
	c := metakit.NewRecord("c", "adder")
	c.Identity.HandlingID = ""

	records := []*metakit.VehicleRecord{a, b, c}
	assert.Equal(t, 1, Consolidate(records))
	assert.Equal(t, "DURANGO", a.Identity.HandlingID)
	assert.Equal(t, "DURANGO", b.Identity.HandlingID)
	assert.Equal(t, "", c.Identity.HandlingID)

	assert.Equal(t, 0, Consolidate(records))
	assert.Empty(t, previewPairs(records))
}
