package parser

import (
	"strings"

	"github.com/vvka-141/metakit/internal/decode"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var modelIdentity = []string{"modelName"}

// Vehicles reads a vehicle identity document into coll, matching records by
// model name.
func (p *Parser) Vehicles(content string, coll *metakit.Collection) (Report, error) {
	rep := Report{Dialect: metakit.DialectVehicles}
	root, err := readTree(content)
	if err != nil {
		return rep, err
	}
	list := locate(root, []string{"CVehicleModelInfo__InitDataList"}, []string{"InitDatas", "initDatas"})
	if list == nil {
		p.note(&rep, "", "no InitDatas list found under <%s>", root.Tag)
		return rep, nil
	}

	for _, it := range unwrap(items(list), modelIdentity...) {
		name := text(it, modelIdentity...)
		if name == "" {
			rep.Skipped++
			continue
		}
		rep.Items++
		r := resolve(coll, &rep, name, func(r *metakit.VehicleRecord) string { return r.Identity.ModelName })
		r.Identity = decodeIdentity(it, name)
		r.Loaded.Add(metakit.DialectVehicles)
	}
	return rep, nil
}

func decodeIdentity(it elem, model string) metakit.VehicleIdentity {
	d := metakit.DefaultIdentity(model)
	s := func(tag, def string) string { return decode.String(field(it, tag), def) }
	return metakit.VehicleIdentity{
		ModelName:             model,
		TxdName:               s("txdName", model),
		HandlingID:            s("handlingId", d.HandlingID),
		GameName:              s("gameName", d.GameName),
		VehicleMakeName:       s("vehicleMakeName", d.VehicleMakeName),
		Type:                  s("type", d.Type),
		VehicleClass:          s("vehicleClass", d.VehicleClass),
		Layout:                s("layout", d.Layout),
		DriverSourceExtension: s("driverSourceExtension", d.DriverSourceExtension),
		AudioNameHash:         s("audioNameHash", d.AudioNameHash),
		LodDistances:          strings.Join(strings.Fields(s("lodDistances", d.LodDistances)), " "),
		DiffuseTint:           s("diffuseTint", d.DiffuseTint),
		DirtLevelMin:          decode.Float(field(it, "dirtLevelMin"), d.DirtLevelMin),
		DirtLevelMax:          decode.Float(field(it, "dirtLevelMax"), d.DirtLevelMax),
		Flags:                 decodeFlags(child(it, "flags")),
	}
}

// decodeFlags accepts flags as item children or as whitespace-separated text.
func decodeFlags(el elem) metakit.FlagSet {
	if el == nil {
		return metakit.FlagSet{}
	}
	if tokens := itemTexts(el); len(tokens) > 0 {
		return metakit.NewFlagSet(tokens...)
	}
	return metakit.NewFlagSet(strings.Fields(el.Text())...)
}
