package serializer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/metakit/internal/parser"
	"github.com/vvka-141/metakit/internal/validator"
	"github.com/vvka-141/metakit/pkg/metakit"
)

func record(name string, dialects ...metakit.Dialect) *metakit.VehicleRecord {
	r := metakit.NewRecord(metakit.GenerateRecordID(name, 0), name)
	for _, d := range dialects {
		r.Loaded.Add(d)
	}
	return r
}

func TestHandling_Golden(t *testing.T) {
	r := record("adder", metakit.DialectHandling)
	r.Handling.Mass = 1234.5678912

	want := `<?xml version="1.0" encoding="UTF-8"?>
<CHandlingDataMgr>
  <HandlingData>
    <Item type="CHandlingData">
      <handlingName>ADDER</handlingName>
      <fMass value="1234.567891" />
      <fInitialDragCoeff value="8.000000" />
      <vecCentreOfMassOffset x="0.000000" y="0.000000" z="0.000000" />
      <vecInertiaMultiplier x="1.000000" y="1.000000" z="1.000000" />
      <fDriveBiasFront value="0.000000" />
      <nInitialDriveGears value="6" />
      <fInitialDriveForce value="0.300000" />
      <fInitialDriveMaxFlatVel value="140.000000" />
      <fBrakeForce value="0.700000" />
      <fBrakeBiasFront value="0.650000" />
      <fSteeringLock value="35.000000" />
      <fTractionCurveMax value="2.200000" />
      <fTractionCurveMin value="1.900000" />
      <fTractionLossMult value="1.000000" />
      <fLowSpeedTractionLossMult value="0.000000" />
      <fSuspensionForce value="2.200000" />
      <fSuspensionCompDamp value="1.200000" />
      <fSuspensionReboundDamp value="1.800000" />
      <fSuspensionRaise value="0.000000" />
      <fAntiRollBarForce value="0.800000" />
      <fCollisionDamageMult value="1.000000" />
      <fDeformationDamageMult value="0.800000" />
      <strModelFlags>440010</strModelFlags>
      <strHandlingFlags>0</strHandlingFlags>
    </Item>
  </HandlingData>
</CHandlingDataMgr>`

	got := Handling([]*metakit.VehicleRecord{r, record("skipped")})
	assert.Equal(t, want, got)
}

func TestSerialize_FiltersByLoadedSetAndKeepsOrder(t *testing.T) {
	a := record("zeta", metakit.DialectVehicles)
	b := record("alpha")
	c := record("beta", metakit.DialectVehicles)

	out := Vehicles([]*metakit.VehicleRecord{a, b, c})
	assert.Less(t, strings.Index(out, "<modelName>zeta</modelName>"), strings.Index(out, "<modelName>beta</modelName>"))
	assert.NotContains(t, out, "alpha")
}

func TestSerialize_EmptyContainers(t *testing.T) {
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>
<CHandlingDataMgr>
  <HandlingData />
</CHandlingDataMgr>`, Handling(nil))

	r := record("plain", metakit.DialectVehicles, metakit.DialectCarvariations)
	r.Variation.Colors = nil
	r.Variation.Kits = nil

	assert.Contains(t, Vehicles([]*metakit.VehicleRecord{r}), "      <flags />")
	vars := Carvariations([]*metakit.VehicleRecord{r})
	assert.Contains(t, vars, "      <colors />")
	assert.Contains(t, vars, "      <kits />")
}

func TestSerialize_Formats(t *testing.T) {
	r := record("police", metakit.DialectVehicles, metakit.DialectCarcols, metakit.DialectCarvariations)
	r.Identity.Flags = metakit.NewFlagSet("FLAG_LAW_ENFORCEMENT")
	r.Identity.GameName = "R&D"
	r.Sirens.SirenID = 3
	r.Sirens.SequencerBPM = 600
	r.Sirens.Lights = []metakit.SirenLight{{Color: "0xFF0000FF", Scale: 0.4, Flashness: 1, Sequencer: "10101010101010101010101010101010"}}

	vehicles := Vehicles([]*metakit.VehicleRecord{r})
	assert.Contains(t, vehicles, "      <lodDistances content=\"float_array\">\n        15.0 30.0 60.0 120.0 500.0\n      </lodDistances>")
	assert.Contains(t, vehicles, "<gameName>R&amp;D</gameName>")
	assert.Contains(t, vehicles, "<diffuseTint value=\"0x00FFFFFF\" />")
	assert.Contains(t, vehicles, "        <Item>FLAG_LAW_ENFORCEMENT</Item>")

	carcols := Carcols([]*metakit.VehicleRecord{r})
	assert.Contains(t, carcols, "<sequencer value=\"2863311530\" />")
	assert.Contains(t, carcols, "<sequencerBpm value=\"600\" />")
	assert.Contains(t, carcols, "<kitName>0_default_modkit</kitName>")

	vars := Carvariations([]*metakit.VehicleRecord{r})
	assert.Contains(t, vars, "          <indices content=\"int_array\">\n            0 0 0 156 0 0\n          </indices>")
	order := []string{"</colors>", "<sirenSettings", "<lightSettings", "<kits", "<windows", "<plateProbabilities"}
	for i := 1; i < len(order); i++ {
		assert.Less(t, strings.Index(vars, order[i-1]), strings.Index(vars, order[i]), "%s before %s", order[i-1], order[i])
	}
	assert.Contains(t, vars, "<Item value=\"100\" />")

	assert.False(t, strings.HasSuffix(vars, "\n"))
}

func TestCarcols_SkipsEmptySirens(t *testing.T) {
	r := record("kitonly", metakit.DialectCarcols)
	out := Carcols([]*metakit.VehicleRecord{r})
	assert.Contains(t, out, "  <Sirens />")
	assert.Contains(t, out, "<kitName>0_default_modkit</kitName>")
}

func TestSerialize_UnknownDialect(t *testing.T) {
	_, err := Serialize(metakit.DialectNone, nil)
	assert.ErrorIs(t, err, metakit.ErrUnknownDialect)
}

func TestDocuments(t *testing.T) {
	docs := Documents([]*metakit.VehicleRecord{record("a", metakit.DialectHandling, metakit.DialectCarvariations)})
	require.Len(t, docs, 2)
	assert.Equal(t, metakit.DialectHandling, docs[0].Dialect)
	assert.Equal(t, metakit.DialectCarvariations, docs[1].Dialect)
}

var roundTripDocs = map[metakit.Dialect]string{
	metakit.DialectHandling: `<CHandlingDataMgr><HandlingData>
  <Item type="CHandlingData">
    <handlingName>ADDER</handlingName>
    <fMass value="1800.123" />
    <vecCentreOfMassOffset x="0.1" y="-0.2" z="0.3" />
    <nInitialDriveGears value="7" />
    <strHandlingFlags>20000</strHandlingFlags>
  </Item>
  <Item type="CHandlingData"><handlingName>T20</handlingName></Item>
</HandlingData></CHandlingDataMgr>`,
	metakit.DialectVehicles: `<CVehicleModelInfo__InitDataList><InitDatas>
  <Item>
    <modelName>adder</modelName>
    <gameName>R&amp;D</gameName>
    <handlingId />
    <flags>FLAG_SPORTS FLAG_RICH_CAR</flags>
  </Item>
</InitDatas></CVehicleModelInfo__InitDataList>`,
	metakit.DialectCarcols: `<CVehicleModelInfoVarGlobal>
  <Kits><Item><kitName>1_police_modkit</kitName><id value="1" /></Item></Kits>
  <Sirens><Item>
    <id value="3" />
    <rotationLimit value="2.5" />
    <sirens>
      <Item><rotation x="1" y="2" z="3" /><color value="4278190335" /><sequencer value="4042322160" /></Item>
    </sirens>
  </Item></Sirens>
</CVehicleModelInfoVarGlobal>`,
	metakit.DialectCarvariations: `<CVehicleModelInfoVariation><variationData>
  <Item>
    <modelName>police</modelName>
    <colors><Item><indices content="int_array">111 0 0 156 0 0</indices></Item></colors>
    <kits />
    <plateProbabilities><Item value="10" /><Item value="90" /></plateProbabilities>
    <sirenSettings value="3" />
  </Item>
</variationData></CVehicleModelInfoVariation>`,
	metakit.DialectVehicleLayouts: `<CVehicleMetadataMgr>
  <VehicleCoverBoundOffsetInfos>
    <Item type="CVehicleCoverBoundOffsetInfo"><Name>COVER</Name><ExtraZOffset value="-0.25" /></Item>
  </VehicleCoverBoundOffsetInfos>
  <FirstPersonDriveByLookAroundData>
    <Item type="CFirstPersonDriveByLookAroundData">
      <Name>LOOK</Name>
      <AllowLookback value="true" />
      <HeadingLimits x="-90" y="90" />
      <DataLeft><Offsets><Item><Offset value="0.1" /><AngleToBlendInOffset x="0" y="45" /></Item></Offsets></DataLeft>
    </Item>
  </FirstPersonDriveByLookAroundData>
</CVehicleMetadataMgr>`,
	metakit.DialectModkits: `<CVehicleModelInfoVarGlobal><Kits>
  <Item>
    <kitName>5_adder_modkit</kitName>
    <id value="5" />
    <kitType>MKT_SPORT</kitType>
    <visibleMods><Item><modelName>adder_wing</modelName><turnOffBones><Item>misc_a</Item><Item>misc_b</Item></turnOffBones></Item></visibleMods>
    <statMods><Item><identifier>engine_1</identifier><modifier value="25" /><audioApply value="0.5" /></Item></statMods>
    <slotNames><Item><slot>VMT_WING_L</slot><name>CANARDS</name></Item></slotNames>
  </Item>
  <Item><kitName>6_adder_modkit</kitName><id value="6" /></Item>
</Kits></CVehicleModelInfoVarGlobal>`,
}

// Serializing, re-parsing and serializing again must be stable for every dialect.
func TestRoundTrip(t *testing.T) {
	for d, doc := range roundTripDocs {
		t.Run(d.String(), func(t *testing.T) {
			p := parser.New(parser.DefaultOptions(), nil)

			first := metakit.NewCollection()
			_, err := p.Parse(d, doc, first)
			require.NoError(t, err)
			once, err := Serialize(d, first.Records())
			require.NoError(t, err)

			second := metakit.NewCollection()
			_, err = p.Parse(d, once, second)
			require.NoError(t, err)
			twice, err := Serialize(d, second.Records())
			require.NoError(t, err)

			assert.Equal(t, once, twice)

			res := validator.Validate(once)
			assert.True(t, res.Valid, "%v", res.Issues)
			assert.Empty(t, res.Issues)
		})
	}
}

func TestRoundTrip_CarcolsMixedKitAndSirenRecords(t *testing.T) {
	a := record("a", metakit.DialectCarcols)
	a.Sirens.KitID = 1
	a.Sirens.KitName = "1_a_modkit"

	b := record("b", metakit.DialectCarcols)
	b.Sirens.SirenID = 7
	b.Sirens.SequencerBPM = 220
	b.Sirens.KitID = 2
	b.Sirens.KitName = "2_b_modkit"
	b.Sirens.Lights = []metakit.SirenLight{{
		Flashness: 1,
		Color:     "0xFFFF0000",
		Scale:     0.4,
		Sequencer: metakit.DefaultSequencer,
	}}

	once := Carcols([]*metakit.VehicleRecord{a, b})
	assert.Less(t, strings.Index(once, "2_b_modkit"), strings.Index(once, "1_a_modkit"))

	coll := metakit.NewCollection()
	_, err := parser.New(parser.DefaultOptions(), nil).Carcols(once, coll)
	require.NoError(t, err)
	twice := Carcols(coll.Records())

	assert.Equal(t, once, twice)
	assert.Contains(t, twice, "<kitName>1_a_modkit</kitName>")
	assert.Contains(t, twice, "<kitName>2_b_modkit</kitName>")

	siren := coll.Find(func(r *metakit.VehicleRecord) bool { return r.Sirens.SirenID == 7 })
	require.NotNil(t, siren)
	assert.Equal(t, 2, siren.Sirens.KitID)
}
