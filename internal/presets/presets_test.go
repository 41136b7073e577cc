package presets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/metakit/internal/decode"
	"github.com/vvka-141/metakit/internal/serializer"
	"github.com/vvka-141/metakit/internal/validator"
	"github.com/vvka-141/metakit/pkg/metakit"
)

func TestCatalogue(t *testing.T) {
	assert.Equal(t, []string{"sedan", "compact", "sports", "super", "muscle", "suv", "motorcycle", "police"}, Names())

	for _, p := range All() {
		t.Run(p.Name, func(t *testing.T) {
			assert.NotEmpty(t, p.Description)
			assert.Greater(t, p.Handling.Mass, 0.0)
			assert.Greater(t, p.Handling.DriveGears, 0)
			assert.NotEmpty(t, p.Identity.VehicleClass)
			assert.NotEmpty(t, p.Identity.Flags)
			if p.Sirens != nil {
				for _, l := range p.Sirens.Lights {
					assert.True(t, decode.IsBitPattern(l.Sequencer), l.Sequencer)
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	p, err := Get(" Police ")
	require.NoError(t, err)
	assert.Equal(t, "police", p.Name)
	require.NotNil(t, p.Sirens)
	assert.Len(t, p.Sirens.Lights, 4)

	_, err = Get("hovercraft")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Contains(t, err.Error(), "sedan")
}

func TestBuild(t *testing.T) {
	coll := metakit.NewCollection()
	r, err := Build(coll, "super", "Zentorno")
	require.NoError(t, err)

	assert.Equal(t, 1, coll.Len())
	assert.Equal(t, "ZENTORNO", r.Handling.HandlingName)
	assert.Equal(t, "zentorno", r.Identity.ModelName)
	assert.Equal(t, 1450.0, r.Handling.Mass)
	assert.Equal(t, 7, r.Handling.InitialDriveGears)
	assert.Equal(t, "VC_SUPER", r.Identity.VehicleClass)
	assert.True(t, r.Identity.Flags.Has("FLAG_NO_BOOT"))
	assert.Empty(t, r.Sirens.Lights)

	for _, d := range []metakit.Dialect{metakit.DialectHandling, metakit.DialectVehicles, metakit.DialectCarcols, metakit.DialectCarvariations} {
		assert.True(t, r.Loaded.Has(d), d.String())
	}
	assert.False(t, r.Loaded.Has(metakit.DialectVehicleLayouts))

	_, err = Build(coll, "super", "  ")
	assert.Error(t, err)
	_, err = Build(coll, "tank", "rhino")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestBuild_PoliceSerializesValidDocuments(t *testing.T) {
	coll := metakit.NewCollection()
	r, err := Build(coll, "police", "police5")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Variation.SirenSettings)

	docs := serializer.Documents(coll.Records())
	require.Len(t, docs, 4)
	for _, doc := range docs {
		res := validator.Validate(doc.Content)
		assert.True(t, res.Valid, "%s: %v", doc.Dialect, res.Issues)
	}

	var carcols string
	for _, doc := range docs {
		if doc.Dialect == metakit.DialectCarcols {
			carcols = doc.Content
		}
	}
	assert.Equal(t, 4, strings.Count(carcols, "<sequencer "))
}
