package serializer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/metakit/internal/decode"
	"github.com/vvka-141/metakit/pkg/metakit"
)

// Document is one rendered dialect document.
type Document struct {
	Dialect metakit.Dialect
	Content string
}

// Serialize renders the records that loaded dialect d.
func Serialize(d metakit.Dialect, records []*metakit.VehicleRecord) (string, error) {
	switch d {
	case metakit.DialectHandling:
		return Handling(records), nil
	case metakit.DialectVehicles:
		return Vehicles(records), nil
	case metakit.DialectCarcols:
		return Carcols(records), nil
	case metakit.DialectCarvariations:
		return Carvariations(records), nil
	case metakit.DialectVehicleLayouts:
		return VehicleLayouts(records), nil
	case metakit.DialectModkits:
		return Modkits(records), nil
	}
	return "", fmt.Errorf("%w: %s", metakit.ErrUnknownDialect, d)
}

// Documents renders one document per dialect that at least one record loaded.
func Documents(records []*metakit.VehicleRecord) []Document {
	var docs []Document
	for _, d := range metakit.AllDialects {
		if len(loaded(records, d)) == 0 {
			continue
		}
		content, _ := Serialize(d, records)
		docs = append(docs, Document{Dialect: d, Content: content})
	}
	return docs
}

// Handling renders a handling document.
func Handling(records []*metakit.VehicleRecord) string {
	w := newWriter()
	rs := loaded(records, metakit.DialectHandling)
	w.open(0, "CHandlingDataMgr")
	w.list(1, "HandlingData", len(rs), func(i int) {
		h := rs[i].Handling
		w.openAttr(2, "Item", "type", "CHandlingData")
		w.text(3, "handlingName", h.HandlingName)
		w.decimal(3, "fMass", h.Mass)
		w.decimal(3, "fInitialDragCoeff", h.InitialDragCoeff)
		w.vec3(3, "vecCentreOfMassOffset", h.CentreOfMassOffset)
		w.vec3(3, "vecInertiaMultiplier", h.InertiaMultiplier)
		w.decimal(3, "fDriveBiasFront", h.DriveBiasFront)
		w.integer(3, "nInitialDriveGears", h.InitialDriveGears)
		w.decimal(3, "fInitialDriveForce", h.InitialDriveForce)
		w.decimal(3, "fInitialDriveMaxFlatVel", h.InitialDriveMaxFlatVel)
		w.decimal(3, "fBrakeForce", h.BrakeForce)
		w.decimal(3, "fBrakeBiasFront", h.BrakeBiasFront)
		w.decimal(3, "fSteeringLock", h.SteeringLock)
		w.decimal(3, "fTractionCurveMax", h.TractionCurveMax)
		w.decimal(3, "fTractionCurveMin", h.TractionCurveMin)
		w.decimal(3, "fTractionLossMult", h.TractionLossMult)
		w.decimal(3, "fLowSpeedTractionLossMult", h.LowSpeedTractionLossMult)
		w.decimal(3, "fSuspensionForce", h.SuspensionForce)
		w.decimal(3, "fSuspensionCompDamp", h.SuspensionCompDamp)
		w.decimal(3, "fSuspensionReboundDamp", h.SuspensionReboundDamp)
		w.decimal(3, "fSuspensionRaise", h.SuspensionRaise)
		w.decimal(3, "fAntiRollBarForce", h.AntiRollBarForce)
		w.decimal(3, "fCollisionDamageMult", h.CollisionDamageMult)
		w.decimal(3, "fDeformationDamageMult", h.DeformationDamageMult)
		w.text(3, "strModelFlags", h.ModelFlags)
		w.text(3, "strHandlingFlags", h.HandlingFlags)
		w.close(2, "Item")
	})
	w.close(0, "CHandlingDataMgr")
	return w.String()
}

// Vehicles renders a vehicle identity document.
func Vehicles(records []*metakit.VehicleRecord) string {
	w := newWriter()
	rs := loaded(records, metakit.DialectVehicles)
	w.open(0, "CVehicleModelInfo__InitDataList")
	w.list(1, "InitDatas", len(rs), func(i int) {
		v := rs[i].Identity
		w.open(2, "Item")
		w.text(3, "modelName", v.ModelName)
		w.text(3, "txdName", v.TxdName)
		w.text(3, "handlingId", v.HandlingID)
		w.text(3, "gameName", v.GameName)
		w.text(3, "vehicleMakeName", v.VehicleMakeName)
		w.text(3, "type", v.Type)
		w.text(3, "vehicleClass", v.VehicleClass)
		w.text(3, "layout", v.Layout)
		w.text(3, "driverSourceExtension", v.DriverSourceExtension)
		w.text(3, "audioNameHash", v.AudioNameHash)
		w.openAttr(3, "lodDistances", "content", "float_array")
		w.raw(4, escape(v.LodDistances))
		w.close(3, "lodDistances")
		w.value(3, "diffuseTint", v.DiffuseTint)
		w.decimal(3, "dirtLevelMin", v.DirtLevelMin)
		w.decimal(3, "dirtLevelMax", v.DirtLevelMax)
		flags := v.Flags.Items()
		w.list(3, "flags", len(flags), func(j int) { w.text(4, "Item", flags[j]) })
		w.close(2, "Item")
	})
	w.close(0, "CVehicleModelInfo__InitDataList")
	return w.String()
}

// Carcols renders the kit slots and sirens of a siren/kit container. Records
// with siren id 0 and no lights contribute a kit slot only. Kits of records
// with sirens come first, in siren order, so a reader pairing kits with
// sirens by index gets the same pairs back.
func Carcols(records []*metakit.VehicleRecord) string {
	w := newWriter()
	rs := loaded(records, metakit.DialectCarcols)

	var sirens, kitOnly []metakit.SirenKit
	for _, r := range rs {
		if r.Sirens.SirenID != 0 || len(r.Sirens.Lights) > 0 {
			sirens = append(sirens, r.Sirens)
		} else {
			kitOnly = append(kitOnly, r.Sirens)
		}
	}
	kits := append(append([]metakit.SirenKit{}, sirens...), kitOnly...)

	w.open(0, "CVehicleModelInfoVarGlobal")
	w.list(1, "Kits", len(kits), func(i int) {
		w.open(2, "Item")
		w.integer(3, "id", kits[i].KitID)
		w.text(3, "kitName", kits[i].KitName)
		w.close(2, "Item")
	})

	w.list(1, "Sirens", len(sirens), func(i int) {
		sk := sirens[i]
		w.open(2, "Item")
		w.integer(3, "id", sk.SirenID)
		w.integer(3, "sequencerBpm", sk.SequencerBPM)
		w.decimal(3, "rotationLimit", sk.RotationLimit)
		w.list(3, "sirens", len(sk.Lights), func(j int) {
			l := sk.Lights[j]
			w.open(4, "Item")
			w.vec3(5, "rotation", l.Rotation)
			w.decimal(5, "flashness", l.Flashness)
			w.decimal(5, "delta", l.Delta)
			w.value(5, "color", l.Color)
			w.decimal(5, "scale", l.Scale)
			w.value(5, "sequencer", sequencerValue(l.Sequencer))
			w.close(4, "Item")
		})
		w.open(3, "environmentalLight")
		w.value(4, "color", sk.EnvironmentalLightColor)
		w.decimal(4, "intensity", sk.EnvironmentalLightIntensity)
		w.close(3, "environmentalLight")
		w.close(2, "Item")
	})
	w.close(0, "CVehicleModelInfoVarGlobal")
	return w.String()
}

// sequencerValue renders a binary flash pattern as its decimal value.
func sequencerValue(s string) string {
	if !decode.IsBitPattern(s) {
		return s
	}
	n, _ := strconv.ParseUint(s, 2, 32)
	return strconv.FormatUint(n, 10)
}

// Carvariations renders a variation document.
func Carvariations(records []*metakit.VehicleRecord) string {
	w := newWriter()
	rs := loaded(records, metakit.DialectCarvariations)
	w.open(0, "CVehicleModelInfoVariation")
	w.list(1, "variationData", len(rs), func(i int) {
		v := rs[i].Variation
		w.open(2, "Item")
		w.text(3, "modelName", v.ModelName)
		w.list(3, "colors", len(v.Colors), func(j int) {
			idx := v.Colors[j].Indices()
			parts := make([]string, len(idx))
			for k, n := range idx {
				parts[k] = strconv.Itoa(n)
			}
			w.open(4, "Item")
			w.openAttr(5, "indices", "content", "int_array")
			w.raw(6, strings.Join(parts, " "))
			w.close(5, "indices")
			w.close(4, "Item")
		})
		w.integer(3, "sirenSettings", v.SirenSettings)
		w.integer(3, "lightSettings", v.LightSettings)
		w.list(3, "kits", len(v.Kits), func(j int) { w.text(4, "Item", v.Kits[j]) })
		w.integer(3, "windows", v.Windows)
		w.list(3, "plateProbabilities", len(v.PlateProbabilities), func(j int) {
			w.integer(4, "Item", v.PlateProbabilities[j])
		})
		w.close(2, "Item")
	})
	w.close(0, "CVehicleModelInfoVariation")
	return w.String()
}

// VehicleLayouts renders the layout data of every record into one document.
func VehicleLayouts(records []*metakit.VehicleRecord) string {
	var covers []metakit.CoverBoundOffset
	var looks []metakit.LookAroundEntry
	for _, r := range loaded(records, metakit.DialectVehicleLayouts) {
		covers = append(covers, r.Layout.CoverBoundOffsets...)
		looks = append(looks, r.Layout.LookAround...)
	}

	w := newWriter()
	w.open(0, "CVehicleMetadataMgr")
	w.list(1, "VehicleCoverBoundOffsetInfos", len(covers), func(i int) {
		c := covers[i]
		w.openAttr(2, "Item", "type", "CVehicleCoverBoundOffsetInfo")
		w.text(3, "Name", c.Name)
		w.decimal(3, "ExtraSideOffset", c.ExtraSideOffset)
		w.decimal(3, "ExtraForwardOffset", c.ExtraForwardOffset)
		w.decimal(3, "ExtraBackwardOffset", c.ExtraBackwardOffset)
		w.decimal(3, "ExtraZOffset", c.ExtraZOffset)
		w.empty(3, "CoverBoundInfos")
		w.close(2, "Item")
	})
	w.list(1, "FirstPersonDriveByLookAroundData", len(looks), func(i int) {
		e := looks[i]
		w.openAttr(2, "Item", "type", "CFirstPersonDriveByLookAroundData")
		w.text(3, "Name", e.Name)
		w.value(3, "AllowLookback", strconv.FormatBool(e.AllowLookback))
		w.vec2(3, "HeadingLimits", e.HeadingLimits)
		lookSide(w, "DataLeft", e.Left)
		lookSide(w, "DataRight", e.Right)
		w.close(2, "Item")
	})
	w.close(0, "CVehicleMetadataMgr")
	return w.String()
}

func lookSide(w *writer, tag string, s metakit.LookAroundSide) {
	w.open(3, tag)
	w.list(4, "Offsets", len(s.Offsets), func(i int) {
		o := s.Offsets[i]
		w.open(5, "Item")
		w.decimal(6, "Offset", o.Offset)
		w.vec2(6, "AngleToBlendInOffset", o.AngleToBlendInOffset)
		w.close(5, "Item")
	})
	w.vec2(4, "ExtraRelativePitch", s.ExtraRelativePitch)
	w.vec2(4, "AngleToBlendInExtraPitch", s.AngleToBlendInExtraPitch)
	w.close(3, tag)
}

// Modkits renders the full kit lists of every record into one container.
func Modkits(records []*metakit.VehicleRecord) string {
	var kits []metakit.ModKit
	for _, r := range loaded(records, metakit.DialectModkits) {
		kits = append(kits, r.ModKits.Kits...)
	}

	w := newWriter()
	w.open(0, "CVehicleModelInfoVarGlobal")
	w.list(1, "Kits", len(kits), func(i int) {
		k := kits[i]
		w.open(2, "Item")
		w.text(3, "kitName", k.KitName)
		w.integer(3, "id", k.ID)
		w.text(3, "kitType", k.KitType)
		w.list(3, "visibleMods", len(k.VisibleMods), func(j int) {
			m := k.VisibleMods[j]
			w.open(4, "Item")
			w.text(5, "modelName", m.ModelName)
			w.text(5, "modShopLabel", m.ModShopLabel)
			w.text(5, "linkedModels", m.LinkedModels)
			w.list(5, "turnOffBones", len(m.TurnOffBones), func(b int) { w.text(6, "Item", m.TurnOffBones[b]) })
			w.text(5, "type", m.Type)
			w.text(5, "bone", m.Bone)
			w.text(5, "collisionBone", m.CollisionBone)
			w.close(4, "Item")
		})
		w.list(3, "statMods", len(k.StatMods), func(j int) {
			m := k.StatMods[j]
			w.open(4, "Item")
			w.text(5, "identifier", m.Identifier)
			w.integer(5, "modifier", m.Modifier)
			w.decimal(5, "audioApply", m.AudioApply)
			w.integer(5, "weight", m.Weight)
			w.text(5, "type", m.Type)
			w.close(4, "Item")
		})
		w.list(3, "slotNames", len(k.SlotNames), func(j int) {
			s := k.SlotNames[j]
			w.open(4, "Item")
			w.text(5, "slot", s.Slot)
			w.text(5, "name", s.Name)
			w.close(4, "Item")
		})
		w.close(2, "Item")
	})
	w.close(0, "CVehicleModelInfoVarGlobal")
	return w.String()
}
