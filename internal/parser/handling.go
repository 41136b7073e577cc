package parser

import (
	"github.com/vvka-141/metakit/internal/decode"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var handlingIdentity = []string{"handlingName"}

// Handling reads a handling document into coll, matching records by
// handling name.
func (p *Parser) Handling(content string, coll *metakit.Collection) (Report, error) {
	rep := Report{Dialect: metakit.DialectHandling}
	root, err := readTree(content)
	if err != nil {
		return rep, err
	}
	list := locate(root, []string{"CHandlingDataMgr"}, []string{"HandlingData", "handlingData"})
	if list == nil {
		p.note(&rep, "", "no handling list found under <%s>", root.Tag)
		return rep, nil
	}

	for _, it := range unwrap(items(list), handlingIdentity...) {
		name := text(it, handlingIdentity...)
		if name == "" {
			rep.Skipped++
			continue
		}
		rep.Items++
		r := resolve(coll, &rep, name, func(r *metakit.VehicleRecord) string { return r.Handling.HandlingName })
		r.Handling = decodeHandling(it, name)
		r.Loaded.Add(metakit.DialectHandling)
	}
	return rep, nil
}

func decodeHandling(it elem, name string) metakit.Handling {
	d := metakit.DefaultHandling(name)
	f := func(tag string, def float64) float64 { return decode.Float(field(it, tag), def) }
	return metakit.Handling{
		HandlingName:             name,
		Mass:                     f("fMass", d.Mass),
		InitialDragCoeff:         f("fInitialDragCoeff", d.InitialDragCoeff),
		CentreOfMassOffset:       decode.Vector3(field(it, "vecCentreOfMassOffset"), d.CentreOfMassOffset),
		InertiaMultiplier:        decode.Vector3(field(it, "vecInertiaMultiplier"), d.InertiaMultiplier),
		InitialDriveForce:        f("fInitialDriveForce", d.InitialDriveForce),
		InitialDriveMaxFlatVel:   f("fInitialDriveMaxFlatVel", d.InitialDriveMaxFlatVel),
		InitialDriveGears:        decode.Int(field(it, "nInitialDriveGears"), d.InitialDriveGears),
		DriveBiasFront:           f("fDriveBiasFront", d.DriveBiasFront),
		BrakeForce:               f("fBrakeForce", d.BrakeForce),
		BrakeBiasFront:           f("fBrakeBiasFront", d.BrakeBiasFront),
		SteeringLock:             f("fSteeringLock", d.SteeringLock),
		TractionCurveMax:         f("fTractionCurveMax", d.TractionCurveMax),
		TractionCurveMin:         f("fTractionCurveMin", d.TractionCurveMin),
		TractionLossMult:         f("fTractionLossMult", d.TractionLossMult),
		LowSpeedTractionLossMult: f("fLowSpeedTractionLossMult", d.LowSpeedTractionLossMult),
		SuspensionForce:          f("fSuspensionForce", d.SuspensionForce),
		SuspensionCompDamp:       f("fSuspensionCompDamp", d.SuspensionCompDamp),
		SuspensionReboundDamp:    f("fSuspensionReboundDamp", d.SuspensionReboundDamp),
		AntiRollBarForce:         f("fAntiRollBarForce", d.AntiRollBarForce),
		SuspensionRaise:          f("fSuspensionRaise", d.SuspensionRaise),
		CollisionDamageMult:      f("fCollisionDamageMult", d.CollisionDamageMult),
		DeformationDamageMult:    f("fDeformationDamageMult", d.DeformationDamageMult),
		ModelFlags:               decode.String(field(it, "strModelFlags"), d.ModelFlags),
		HandlingFlags:            decode.String(field(it, "strHandlingFlags"), d.HandlingFlags),
	}
}
