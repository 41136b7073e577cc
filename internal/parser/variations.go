package parser

import (
	"strconv"
	"strings"

	"github.com/vvka-141/metakit/internal/decode"
	"github.com/vvka-141/metakit/pkg/metakit"
)

// Carvariations reads a variation document into coll, matching records by
// model name.
func (p *Parser) Carvariations(content string, coll *metakit.Collection) (Report, error) {
	rep := Report{Dialect: metakit.DialectCarvariations}
	root, err := readTree(content)
	if err != nil {
		return rep, err
	}
	list := locate(root, []string{"CVehicleModelInfoVariation"}, []string{"variationData", "VariationData"})
	if list == nil {
		p.note(&rep, "", "no variationData list found under <%s>", root.Tag)
		return rep, nil
	}

	for _, it := range unwrap(items(list), modelIdentity...) {
		name := text(it, modelIdentity...)
		if name == "" {
			rep.Skipped++
			continue
		}
		rep.Items++
		r := resolve(coll, &rep, name, func(r *metakit.VehicleRecord) string { return r.Variation.ModelName })
		r.Variation = decodeVariation(it, name)
		r.Loaded.Add(metakit.DialectCarvariations)
	}
	return rep, nil
}

func decodeVariation(it elem, model string) metakit.Variation {
	d := metakit.DefaultVariation(model)
	v := metakit.Variation{
		ModelName:          model,
		Colors:             d.Colors,
		SirenSettings:      decode.Int(field(it, "sirenSettings"), 0),
		LightSettings:      decode.Int(field(it, "lightSettings"), 0),
		Kits:               d.Kits,
		Windows:            decode.Int(field(it, "windows"), 0),
		PlateProbabilities: d.PlateProbabilities,
	}

	if colors := child(it, "colors"); colors != nil {
		v.Colors = []metakit.ColorSet{}
		for _, c := range items(colors) {
			v.Colors = append(v.Colors, decodeColorSet(text(c, "indices")))
		}
	}
	if kits := child(it, "kits"); kits != nil {
		v.Kits = []string{}
		v.Kits = append(v.Kits, itemTexts(kits)...)
	}
	if plates := child(it, "plateProbabilities"); plates != nil {
		v.PlateProbabilities = []int{}
		for _, pi := range items(plates) {
			v.PlateProbabilities = append(v.PlateProbabilities, decode.Int(node(pi), 0))
		}
	}
	return v
}

// decodeColorSet reads up to six whitespace-separated palette indices;
// missing or malformed indices keep their default.
func decodeColorSet(indices string) metakit.ColorSet {
	d := metakit.DefaultColorSet().Indices()
	for i, f := range strings.Fields(indices) {
		if i >= len(d) {
			break
		}
		if n, err := strconv.Atoi(f); err == nil {
			d[i] = n
		}
	}
	return metakit.ColorSet{Primary: d[0], Secondary: d[1], Pearl: d[2], Wheels: d[3], Interior: d[4], Dashboard: d[5]}
}
