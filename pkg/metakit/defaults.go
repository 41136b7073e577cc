package metakit

// DefaultHandling returns the handling used for records that have not loaded one.
func DefaultHandling(name string) Handling {
	return Handling{
		HandlingName:             upperName(name),
		Mass:                     1500,
		InitialDragCoeff:         8,
		InertiaMultiplier:        Vec3{X: 1, Y: 1, Z: 1},
		InitialDriveForce:        0.3,
		InitialDriveMaxFlatVel:   140,
		InitialDriveGears:        6,
		BrakeForce:               0.7,
		BrakeBiasFront:           0.65,
		SteeringLock:             35,
		TractionCurveMax:         2.2,
		TractionCurveMin:         1.9,
		TractionLossMult:         1,
		SuspensionForce:          2.2,
		SuspensionCompDamp:       1.2,
		SuspensionReboundDamp:    1.8,
		AntiRollBarForce:         0.8,
		CollisionDamageMult:      1,
		DeformationDamageMult:    0.8,
		ModelFlags:               "440010",
		HandlingFlags:            "0",
	}
}

// DefaultIdentity returns the identity data used for records that have not loaded one.
func DefaultIdentity(name string) VehicleIdentity {
	model := lowerName(name)
	return VehicleIdentity{
		ModelName:             model,
		TxdName:               model,
		HandlingID:            upperName(name),
		GameName:              upperName(name),
		VehicleMakeName:       "CUSTOM",
		Type:                  "VEHICLE_TYPE_CAR",
		VehicleClass:          "VC_SPORT",
		Layout:                "LAYOUT_STANDARD",
		DriverSourceExtension: "feroci",
		AudioNameHash:         "ADDER",
		LodDistances:          "15.0 30.0 60.0 120.0 500.0",
		DiffuseTint:           "0x00FFFFFF",
		DirtLevelMin:          0,
		DirtLevelMax:          0.4,
	}
}

// DefaultSirenKit returns the siren data used for records that have not loaded one.
func DefaultSirenKit() SirenKit {
	return SirenKit{
		KitName:                 DefaultKitName,
		EnvironmentalLightColor: "0x00000000",
	}
}

// DefaultColorSet is the paint combination used when a variation lists none.
func DefaultColorSet() ColorSet {
	return ColorSet{Wheels: 156}
}

// DefaultVariation returns the variation used for records that have not loaded one.
func DefaultVariation(name string) Variation {
	return Variation{
		ModelName:          lowerName(name),
		Colors:             []ColorSet{DefaultColorSet()},
		Kits:               []string{DefaultKitName},
		PlateProbabilities: []int{100, 0, 0},
	}
}

// NewRecord builds a record with every sub-record at its default and an
// empty loaded-set.
func NewRecord(id, name string) *VehicleRecord {
	return &VehicleRecord{
		ID:        id,
		Name:      name,
		Handling:  DefaultHandling(name),
		Identity:  DefaultIdentity(name),
		Sirens:    DefaultSirenKit(),
		Variation: DefaultVariation(name),
	}
}
