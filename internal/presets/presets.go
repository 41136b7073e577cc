// Package presets holds the vehicle archetypes a new record can start from.
package presets

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/metakit/pkg/metakit"
)

//go:embed presets.yaml
var catalogueYAML []byte

// ErrUnknownPreset is returned for a preset name not in the catalogue.
var ErrUnknownPreset = errors.New("unknown preset")

type HandlingTune struct {
	Mass            float64 `yaml:"mass"`
	DragCoeff       float64 `yaml:"drag_coeff"`
	DriveForce      float64 `yaml:"drive_force"`
	MaxFlatVel      float64 `yaml:"max_flat_vel"`
	DriveGears      int     `yaml:"drive_gears"`
	DriveBiasFront  float64 `yaml:"drive_bias_front"`
	BrakeForce      float64 `yaml:"brake_force"`
	SteeringLock    float64 `yaml:"steering_lock"`
	TractionMax     float64 `yaml:"traction_max"`
	TractionMin     float64 `yaml:"traction_min"`
	SuspensionForce float64 `yaml:"suspension_force"`
}

type IdentityTune struct {
	Type          string   `yaml:"type"`
	VehicleClass  string   `yaml:"vehicle_class"`
	Layout        string   `yaml:"layout"`
	AudioNameHash string   `yaml:"audio_name_hash"`
	Flags         []string `yaml:"flags"`
}

type LightTune struct {
	Color     string `yaml:"color"`
	Sequencer string `yaml:"sequencer"`
}

type SirenTune struct {
	SirenID int         `yaml:"siren_id"`
	BPM     int         `yaml:"bpm"`
	Lights  []LightTune `yaml:"lights"`
}

// Preset is one archetype. Sirens is nil for civilian vehicles.
type Preset struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Handling    HandlingTune `yaml:"handling"`
	Identity    IdentityTune `yaml:"identity"`
	Sirens      *SirenTune   `yaml:"sirens"`
}

type catalogue struct {
	Presets []Preset `yaml:"presets"`
}

var load = sync.OnceValues(func() ([]Preset, error) {
	var c catalogue
	if err := yaml.Unmarshal(catalogueYAML, &c); err != nil {
		return nil, fmt.Errorf("failed to parse embedded presets: %w", err)
	}
	return c.Presets, nil
})

// All returns every preset in catalogue order.
func All() []Preset {
	list, err := load()
	if err != nil {
		panic(err)
	}
	return list
}

// Names returns the preset names in catalogue order.
func Names() []string {
	list := All()
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
	}
	return names
}

// Get looks a preset up by case-insensitive name.
func Get(name string) (Preset, error) {
	for _, p := range All() {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, name, strings.Join(Names(), ", "))
}

// Apply overlays the preset on r and marks the per-vehicle dialects loaded.
func (p Preset) Apply(r *metakit.VehicleRecord) {
	h := &r.Handling
	h.Mass = p.Handling.Mass
	h.InitialDragCoeff = p.Handling.DragCoeff
	h.InitialDriveForce = p.Handling.DriveForce
	h.InitialDriveMaxFlatVel = p.Handling.MaxFlatVel
	h.InitialDriveGears = p.Handling.DriveGears
	h.DriveBiasFront = p.Handling.DriveBiasFront
	h.BrakeForce = p.Handling.BrakeForce
	h.SteeringLock = p.Handling.SteeringLock
	h.TractionCurveMax = p.Handling.TractionMax
	h.TractionCurveMin = p.Handling.TractionMin
	h.SuspensionForce = p.Handling.SuspensionForce

	id := &r.Identity
	id.Type = p.Identity.Type
	id.VehicleClass = p.Identity.VehicleClass
	id.Layout = p.Identity.Layout
	id.AudioNameHash = p.Identity.AudioNameHash
	id.Flags = metakit.NewFlagSet(p.Identity.Flags...)

	if p.Sirens != nil {
		r.Sirens.SirenID = p.Sirens.SirenID
		r.Sirens.SequencerBPM = p.Sirens.BPM
		r.Sirens.Lights = make([]metakit.SirenLight, 0, len(p.Sirens.Lights))
		for _, l := range p.Sirens.Lights {
			r.Sirens.Lights = append(r.Sirens.Lights, metakit.SirenLight{
				Flashness: 1,
				Color:     l.Color,
				Scale:     0.4,
				Sequencer: l.Sequencer,
			})
		}
		r.Variation.SirenSettings = p.Sirens.SirenID
	}

	r.Loaded.Add(metakit.DialectHandling)
	r.Loaded.Add(metakit.DialectVehicles)
	r.Loaded.Add(metakit.DialectCarcols)
	r.Loaded.Add(metakit.DialectCarvariations)
}

// Build creates a record named vehicleName in coll from the named preset.
func Build(coll *metakit.Collection, presetName, vehicleName string) (*metakit.VehicleRecord, error) {
	if strings.TrimSpace(vehicleName) == "" {
		return nil, errors.New("vehicle name cannot be empty")
	}
	p, err := Get(presetName)
	if err != nil {
		return nil, err
	}
	r := coll.CreateDefault(vehicleName)
	p.Apply(r)
	return r, nil
}
