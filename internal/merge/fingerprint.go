package merge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/metakit/internal/checksum"
	"github.com/vvka-141/metakit/pkg/metakit"
)

// Fingerprint returns the SHA-256 content fingerprint of r as seen by
// dialect d, or "" when the record carries nothing to identify it by.
func Fingerprint(d metakit.Dialect, r *metakit.VehicleRecord) string {
	return fingerprint(checksum.New(), d, r)
}

// Dedupe drops records whose fingerprint is empty or was already seen,
// keeping first-seen order. Applying it to its own output changes nothing.
func Dedupe(d metakit.Dialect, records []*metakit.VehicleRecord) []*metakit.VehicleRecord {
	return dedupe(checksum.New(), d, records)
}

func (e *Engine) dedupe(d metakit.Dialect, records []*metakit.VehicleRecord) []*metakit.VehicleRecord {
	return dedupe(e.checksum, d, records)
}

func dedupe(calc checksum.SHA256, d metakit.Dialect, records []*metakit.VehicleRecord) []*metakit.VehicleRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]*metakit.VehicleRecord, 0, len(records))
	for _, r := range records {
		fp := fingerprint(calc, d, r)
		if fp == "" {
			continue
		}
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, r)
	}
	return out
}

func fingerprint(calc checksum.SHA256, d metakit.Dialect, r *metakit.VehicleRecord) string {
	key := fingerprintKey(d, r)
	if key == "" {
		return ""
	}
	return calc.CalculateString(key)
}

// fingerprintKey builds the canonical text a record is identified by.
func fingerprintKey(d metakit.Dialect, r *metakit.VehicleRecord) string {
	if r == nil {
		return ""
	}
	switch d {
	case metakit.DialectHandling:
		return handlingKey(r.Handling)

	case metakit.DialectVehicles:
		return metakit.FoldName(strings.TrimSpace(r.Identity.ModelName))

	case metakit.DialectCarvariations:
		return metakit.FoldName(strings.TrimSpace(r.Variation.ModelName))

	case metakit.DialectVehicleLayouts:
		names := make([]string, 0, len(r.Layout.LookAround))
		for _, look := range r.Layout.LookAround {
			if n := metakit.FoldName(strings.TrimSpace(look.Name)); n != "" {
				names = append(names, n)
			}
		}
		return strings.Join(names, "|")

	case metakit.DialectCarcols:
		s := r.Sirens
		lights := make([]string, 0, len(s.Lights))
		for _, l := range s.Lights {
			lights = append(lights, strings.Join([]string{
				formatVec3(l.Rotation),
				formatFloat(l.Flashness),
				formatFloat(l.Delta),
				strings.ToUpper(l.Color),
				formatFloat(l.Scale),
				l.Sequencer,
			}, ","))
		}
		return fmt.Sprintf("%d|%d|%s|[%s]|%s|%s",
			s.SirenID,
			s.SequencerBPM,
			formatFloat(s.RotationLimit),
			strings.Join(lights, ";"),
			strings.ToUpper(s.EnvironmentalLightColor),
			formatFloat(s.EnvironmentalLightIntensity))

	case metakit.DialectModkits:
		pairs := make([]string, 0, len(r.ModKits.Kits))
		for _, k := range r.ModKits.Kits {
			pairs = append(pairs, metakit.FoldName(strings.TrimSpace(k.KitName))+":"+strconv.Itoa(k.ID))
		}
		return strings.Join(pairs, "|")
	}
	return ""
}

// handlingKey lists every tuning field except the name. Each float is
// formatted on its own so no value can make the key unrepresentable.
func handlingKey(h metakit.Handling) string {
	return strings.Join([]string{
		formatFloat(h.Mass),
		formatFloat(h.InitialDragCoeff),
		formatVec3(h.CentreOfMassOffset),
		formatVec3(h.InertiaMultiplier),
		formatFloat(h.InitialDriveForce),
		formatFloat(h.InitialDriveMaxFlatVel),
		strconv.Itoa(h.InitialDriveGears),
		formatFloat(h.DriveBiasFront),
		formatFloat(h.BrakeForce),
		formatFloat(h.BrakeBiasFront),
		formatFloat(h.SteeringLock),
		formatFloat(h.TractionCurveMax),
		formatFloat(h.TractionCurveMin),
		formatFloat(h.TractionLossMult),
		formatFloat(h.LowSpeedTractionLossMult),
		formatFloat(h.SuspensionForce),
		formatFloat(h.SuspensionCompDamp),
		formatFloat(h.SuspensionReboundDamp),
		formatFloat(h.AntiRollBarForce),
		formatFloat(h.SuspensionRaise),
		formatFloat(h.CollisionDamageMult),
		formatFloat(h.DeformationDamageMult),
		h.ModelFlags,
		h.HandlingFlags,
	}, "|")
}

func formatVec3(v metakit.Vec3) string {
	return formatFloat(v.X) + "," + formatFloat(v.Y) + "," + formatFloat(v.Z)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', metakit.FloatPrecision, 64)
}
