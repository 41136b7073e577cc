package metakit

import (
	"encoding/json"
	"strings"
)

// Vec2 is a two-component vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is a three-component vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// VehicleRecord is the unified in-memory model of one vehicle. Every dialect
// contributes one sub-record; Loaded tells which of them came from a document.
type VehicleRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Handling  Handling        `json:"handling"`
	Identity  VehicleIdentity `json:"vehicles"`
	Sirens    SirenKit        `json:"carcols"`
	Variation Variation       `json:"carvariations"`
	Layout    Layout          `json:"vehiclelayouts"`
	ModKits   ModKitSet       `json:"modkits"`
	Loaded    DialectSet      `json:"loaded"`
}

// Handling is the physics tuning of a vehicle.
type Handling struct {
	HandlingName             string  `json:"handlingName"`
	Mass                     float64 `json:"fMass"`
	InitialDragCoeff         float64 `json:"fInitialDragCoeff"`
	CentreOfMassOffset       Vec3    `json:"vecCentreOfMassOffset"`
	InertiaMultiplier        Vec3    `json:"vecInertiaMultiplier"`
	InitialDriveForce        float64 `json:"fInitialDriveForce"`
	InitialDriveMaxFlatVel   float64 `json:"fInitialDriveMaxFlatVel"`
	InitialDriveGears        int     `json:"nInitialDriveGears"`
	DriveBiasFront           float64 `json:"fDriveBiasFront"`
	BrakeForce               float64 `json:"fBrakeForce"`
	BrakeBiasFront           float64 `json:"fBrakeBiasFront"`
	SteeringLock             float64 `json:"fSteeringLock"`
	TractionCurveMax         float64 `json:"fTractionCurveMax"`
	TractionCurveMin         float64 `json:"fTractionCurveMin"`
	TractionLossMult         float64 `json:"fTractionLossMult"`
	LowSpeedTractionLossMult float64 `json:"fLowSpeedTractionLossMult"`
	SuspensionForce          float64 `json:"fSuspensionForce"`
	SuspensionCompDamp       float64 `json:"fSuspensionCompDamp"`
	SuspensionReboundDamp    float64 `json:"fSuspensionReboundDamp"`
	AntiRollBarForce         float64 `json:"fAntiRollBarForce"`
	SuspensionRaise          float64 `json:"fSuspensionRaise"`
	CollisionDamageMult      float64 `json:"fCollisionDamageMult"`
	DeformationDamageMult    float64 `json:"fDeformationDamageMult"`
	ModelFlags               string  `json:"strModelFlags"`
	HandlingFlags            string  `json:"strHandlingFlags"`
}

// VehicleIdentity is the model, naming and presentation data of a vehicle.
type VehicleIdentity struct {
	ModelName             string  `json:"modelName"`
	TxdName               string  `json:"txdName"`
	HandlingID            string  `json:"handlingId"`
	GameName              string  `json:"gameName"`
	VehicleMakeName       string  `json:"vehicleMakeName"`
	Type                  string  `json:"type"`
	VehicleClass          string  `json:"vehicleClass"`
	Layout                string  `json:"layout"`
	DriverSourceExtension string  `json:"driverSourceExtension"`
	AudioNameHash         string  `json:"audioNameHash"`
	LodDistances          string  `json:"lodDistances"`
	DiffuseTint           string  `json:"diffuseTint"`
	DirtLevelMin          float64 `json:"dirtLevelMin"`
	DirtLevelMax          float64 `json:"dirtLevelMax"`
	Flags                 FlagSet `json:"flags"`
}

// SirenKit is the emergency-light setup of a vehicle together with the kit
// slot it occupies in the siren/kit container.
type SirenKit struct {
	KitID                       int          `json:"id"`
	KitName                     string       `json:"kitName"`
	SirenID                     int          `json:"sirenId"`
	SequencerBPM                int          `json:"sequencerBpm"`
	RotationLimit               float64      `json:"rotationLimit"`
	Lights                      []SirenLight `json:"lights"`
	EnvironmentalLightColor     string       `json:"environmentalLightColor"`
	EnvironmentalLightIntensity float64      `json:"environmentalLightIntensity"`
}

// SirenLight is one flashing light of a siren.
type SirenLight struct {
	Rotation  Vec3    `json:"rotation"`
	Flashness float64 `json:"flashness"`
	Delta     float64 `json:"delta"`
	Color     string  `json:"color"`
	Scale     float64 `json:"scale"`
	// Sequencer is the flash pattern as 32 binary digits.
	Sequencer string `json:"sequencer"`
}

// ColorSet is one paint combination of a variation.
type ColorSet struct {
	Primary   int `json:"primary"`
	Secondary int `json:"secondary"`
	Pearl     int `json:"pearl"`
	Wheels    int `json:"wheels"`
	Interior  int `json:"interior"`
	Dashboard int `json:"dashboard"`
}

// Indices returns the color set in document order.
func (c ColorSet) Indices() [6]int {
	return [6]int{c.Primary, c.Secondary, c.Pearl, c.Wheels, c.Interior, c.Dashboard}
}

// Variation is the paint and accessory variation data of a vehicle.
type Variation struct {
	ModelName          string     `json:"modelName"`
	Colors             []ColorSet `json:"colors"`
	SirenSettings      int        `json:"sirenSettings"`
	LightSettings      int        `json:"lightSettings"`
	Kits               []string   `json:"kits"`
	Windows            int        `json:"windows"`
	PlateProbabilities []int      `json:"plateProbabilities"`
}

// Layout is the seating and camera layout data carried by a vehicle.
type Layout struct {
	CoverBoundOffsets []CoverBoundOffset `json:"coverBoundOffsets"`
	LookAround        []LookAroundEntry  `json:"lookAround"`
}

// CoverBoundOffset shifts the cover bounds of a vehicle.
type CoverBoundOffset struct {
	Name                string  `json:"name"`
	ExtraSideOffset     float64 `json:"extraSideOffset"`
	ExtraForwardOffset  float64 `json:"extraForwardOffset"`
	ExtraBackwardOffset float64 `json:"extraBackwardOffset"`
	ExtraZOffset        float64 `json:"extraZOffset"`
}

// LookAroundEntry is a first-person drive-by look-around configuration.
type LookAroundEntry struct {
	Name          string         `json:"name"`
	AllowLookback bool           `json:"allowLookback"`
	HeadingLimits Vec2           `json:"headingLimits"`
	Left          LookAroundSide `json:"dataLeft"`
	Right         LookAroundSide `json:"dataRight"`
}

// LookAroundSide holds the offsets and pitch blending for one side.
type LookAroundSide struct {
	Offsets                  []LookAroundOffset `json:"offsets"`
	ExtraRelativePitch       Vec2               `json:"extraRelativePitch"`
	AngleToBlendInExtraPitch Vec2               `json:"angleToBlendInExtraPitch"`
}

// LookAroundOffset is one camera offset blended in over an angle range.
type LookAroundOffset struct {
	Offset               float64 `json:"offset"`
	AngleToBlendInOffset Vec2    `json:"angleToBlendInOffset"`
}

// ModKitSet is the list of modification kits attached to a vehicle.
type ModKitSet struct {
	Kits []ModKit `json:"kits"`
}

// ModKit is one modification kit.
type ModKit struct {
	KitName     string       `json:"kitName"`
	ID          int          `json:"id"`
	KitType     string       `json:"kitType"`
	VisibleMods []VisibleMod `json:"visibleMods"`
	StatMods    []StatMod    `json:"statMods"`
	SlotNames   []SlotName   `json:"slotNames"`
}

// VisibleMod is a modification that changes the vehicle model.
type VisibleMod struct {
	ModelName     string   `json:"modelName"`
	ModShopLabel  string   `json:"modShopLabel"`
	LinkedModels  string   `json:"linkedModels"`
	TurnOffBones  []string `json:"turnOffBones"`
	Type          string   `json:"type"`
	Bone          string   `json:"bone"`
	CollisionBone string   `json:"collisionBone"`
}

// StatMod is a modification that changes performance.
type StatMod struct {
	Identifier string  `json:"identifier"`
	Modifier   int     `json:"modifier"`
	AudioApply float64 `json:"audioApply"`
	Weight     int     `json:"weight"`
	Type       string  `json:"type"`
}

// SlotName renames a mod slot in the shop.
type SlotName struct {
	Slot string `json:"slot"`
	Name string `json:"name"`
}

// FlagSet is a set of flag tokens. Tokens are unique and keep their first
// insertion order for display; equality ignores order.
type FlagSet struct {
	items []string
}

// NewFlagSet builds a set from tokens, dropping blanks and repeats.
func NewFlagSet(tokens ...string) FlagSet {
	var s FlagSet
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

// Add inserts a token unless it is blank or already present.
func (s *FlagSet) Add(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" || s.Has(token) {
		return false
	}
	s.items = append(s.items, token)
	return true
}

// Has reports whether token is in the set.
func (s FlagSet) Has(token string) bool {
	for _, it := range s.items {
		if it == token {
			return true
		}
	}
	return false
}

// Union returns a new set holding the tokens of s followed by the new tokens of other.
func (s FlagSet) Union(other FlagSet) FlagSet {
	out := FlagSet{items: append([]string(nil), s.items...)}
	for _, t := range other.items {
		out.Add(t)
	}
	return out
}

// Equal reports whether both sets hold the same tokens, in any order.
func (s FlagSet) Equal(other FlagSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for _, t := range s.items {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// Items returns the tokens in insertion order.
func (s FlagSet) Items() []string {
	return append([]string(nil), s.items...)
}

// Len returns the number of tokens.
func (s FlagSet) Len() int {
	return len(s.items)
}

func (s FlagSet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

func (s *FlagSet) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	*s = NewFlagSet(tokens...)
	return nil
}
