package parser

import (
	"strings"

	"github.com/vvka-141/metakit/internal/decode"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var (
	layoutRoots = []string{"CVehicleMetadataMgr", "CVehicleLayoutData"}
	coverLists  = []string{"VehicleCoverBoundOffsetInfos", "vehicleCoverBoundOffsetInfos"}
	lookLists   = []string{"FirstPersonDriveByLookAroundData", "firstPersonDriveByLookAroundData"}
	nameField   = camel("Name")
)

// VehicleLayouts reads a layout document into coll. Layout data carries no
// vehicle name: it goes to the first record without layout data, or to a new
// record named vehiclelayouts.
func (p *Parser) VehicleLayouts(content string, coll *metakit.Collection) (Report, error) {
	rep := Report{Dialect: metakit.DialectVehicleLayouts}
	root, err := readTree(content)
	if err != nil {
		return rep, err
	}
	if !hasTag(root, layoutRoots...) {
		p.note(&rep, "", "unexpected layout root <%s>", root.Tag)
	}
	covers := child(root, coverLists...)
	looks := child(root, lookLists...)
	if covers == nil && looks == nil {
		p.note(&rep, "", "no cover bound or look-around lists found under <%s>", root.Tag)
		return rep, nil
	}

	layout := metakit.Layout{
		CoverBoundOffsets: []metakit.CoverBoundOffset{},
		LookAround:        []metakit.LookAroundEntry{},
	}
	for _, it := range items(covers) {
		layout.CoverBoundOffsets = append(layout.CoverBoundOffsets, metakit.CoverBoundOffset{
			Name:                text(it, nameField...),
			ExtraSideOffset:     decode.Float(field(it, camel("ExtraSideOffset")...), 0),
			ExtraForwardOffset:  decode.Float(field(it, camel("ExtraForwardOffset")...), 0),
			ExtraBackwardOffset: decode.Float(field(it, camel("ExtraBackwardOffset")...), 0),
			ExtraZOffset:        decode.Float(field(it, camel("ExtraZOffset")...), 0),
		})
	}
	for _, it := range items(looks) {
		layout.LookAround = append(layout.LookAround, metakit.LookAroundEntry{
			Name:          text(it, nameField...),
			AllowLookback: decode.Boolean(field(it, camel("AllowLookback")...)),
			HeadingLimits: decode.Vector2(field(it, camel("HeadingLimits")...), metakit.Vec2{}),
			Left:          decodeLookSide(child(it, camel("DataLeft")...)),
			Right:         decodeLookSide(child(it, camel("DataRight")...)),
		})
	}
	rep.Items = len(layout.CoverBoundOffsets) + len(layout.LookAround)

	target := coll.Find(func(r *metakit.VehicleRecord) bool { return !r.Loaded.Has(metakit.DialectVehicleLayouts) })
	if target != nil {
		rep.Updated++
		p.note(&rep, target.Name, "layout data assigned to %q as the first record without layout data", target.Name)
	} else {
		target = coll.CreateDefault(metakit.LayoutRecordName)
		rep.Created++
	}
	target.Layout = layout
	target.Loaded.Add(metakit.DialectVehicleLayouts)
	return rep, nil
}

func decodeLookSide(el elem) metakit.LookAroundSide {
	side := metakit.LookAroundSide{
		Offsets:                  []metakit.LookAroundOffset{},
		ExtraRelativePitch:       decode.Vector2(field(el, camel("ExtraRelativePitch")...), metakit.Vec2{}),
		AngleToBlendInExtraPitch: decode.Vector2(field(el, camel("AngleToBlendInExtraPitch")...), metakit.Vec2{}),
	}
	for _, it := range items(child(el, camel("Offsets")...)) {
		side.Offsets = append(side.Offsets, metakit.LookAroundOffset{
			Offset:               decode.Float(field(it, camel("Offset")...), 0),
			AngleToBlendInOffset: decode.Vector2(field(it, camel("AngleToBlendInOffset")...), metakit.Vec2{}),
		})
	}
	return side
}

// camel returns a layout field name in both the upper-camel spelling the game
// writes and the lower-camel spelling some tools emit.
func camel(name string) []string {
	return []string{name, strings.ToLower(name[:1]) + name[1:]}
}
