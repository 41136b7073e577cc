package parser

import (
	"fmt"

	"github.com/vvka-141/metakit/internal/decode"
	"github.com/vvka-141/metakit/pkg/metakit"
)

type kitSlot struct {
	id   int
	name string
}

// Carcols reads a siren/kit container document into coll.
//
// Sirens carry no vehicle name, so records are found in a fixed order: the
// record whose variation sirenSettings equals the siren id, then the first
// record without siren data, then a new record named siren_<id>. Kits are
// attached afterwards to the first record that has siren data but no kit
// list. Every positional choice is recorded as a note in the report.
func (p *Parser) Carcols(content string, coll *metakit.Collection) (Report, error) {
	rep := Report{Dialect: metakit.DialectCarcols}
	root, err := readTree(content)
	if err != nil {
		return rep, err
	}
	kitList := child(root, "Kits", "kits")
	sirenList := child(root, "Sirens", "sirens")
	if kitList == nil && sirenList == nil {
		p.note(&rep, "", "no Kits or Sirens list found under <%s>", root.Tag)
		return rep, nil
	}
	kits := items(kitList)
	sirens := items(sirenList)

	slots := make([]kitSlot, len(kits))
	for i, k := range kits {
		slots[i] = kitSlot{id: decode.Int(field(k, "id"), 0), name: text(k, "kitName")}
	}

	if len(sirens) > 0 {
		p.assignSirens(sirens, slots, coll, &rep)
	} else {
		p.assignKitSlots(slots, coll, &rep)
	}
	if len(kits) > 0 {
		p.assignModKits(kits, coll, &rep)
	}
	return rep, nil
}

func (p *Parser) assignSirens(sirens []elem, slots []kitSlot, coll *metakit.Collection, rep *Report) {
	pairing := p.opts.KitPairing == KitPairingIndex && len(slots) > 0
	if pairing && len(slots) != len(sirens) {
		p.note(rep, "", "%d sirens paired by position with %d kits", len(sirens), len(slots))
	}

	for i, it := range sirens {
		sk := decodeSirenKit(it)
		rep.Items++

		var target *metakit.VehicleRecord
		if sk.SirenID != 0 {
			target = coll.Find(func(r *metakit.VehicleRecord) bool {
				return r.Variation.SirenSettings == sk.SirenID
			})
		}
		if target == nil {
			target = coll.Find(func(r *metakit.VehicleRecord) bool { return !r.Loaded.Has(metakit.DialectCarcols) })
			if target != nil {
				p.note(rep, target.Name, "siren %d assigned to %q as the first record without siren data", sk.SirenID, target.Name)
			}
		}
		if target == nil {
			target = coll.CreateDefault(fmt.Sprintf("siren_%d", sk.SirenID))
			rep.Created++
		} else {
			rep.Updated++
		}

		if pairing && i < len(slots) {
			sk.KitID = slots[i].id
			if slots[i].name != "" {
				sk.KitName = slots[i].name
			}
		}
		target.Sirens = sk
		target.Loaded.Add(metakit.DialectCarcols)
	}

	if pairing && len(slots) > len(sirens) {
		p.assignKitSlots(slots[len(sirens):], coll, rep)
	}
}

func (p *Parser) assignKitSlots(slots []kitSlot, coll *metakit.Collection, rep *Report) {
	for _, s := range slots {
		rep.Items++
		target := coll.Find(func(r *metakit.VehicleRecord) bool { return !r.Loaded.Has(metakit.DialectCarcols) })
		if target != nil {
			rep.Updated++
			p.note(rep, target.Name, "kit %q assigned to %q as the first record without siren data", s.name, target.Name)
		} else {
			name := s.name
			if name == "" {
				name = fmt.Sprintf("kit_%d", s.id)
			}
			target = coll.CreateDefault(name)
			rep.Created++
		}
		sk := metakit.DefaultSirenKit()
		sk.KitID = s.id
		if s.name != "" {
			sk.KitName = s.name
		}
		target.Sirens = sk
		target.Loaded.Add(metakit.DialectCarcols)
	}
}

func (p *Parser) assignModKits(kits []elem, coll *metakit.Collection, rep *Report) {
	set := metakit.ModKitSet{Kits: make([]metakit.ModKit, 0, len(kits))}
	for _, k := range kits {
		set.Kits = append(set.Kits, decodeModKit(k))
	}
	target := coll.Find(func(r *metakit.VehicleRecord) bool {
		return r.Loaded.Has(metakit.DialectCarcols) && !r.Loaded.Has(metakit.DialectModkits)
	})
	if target == nil {
		p.note(rep, "", "%d kits dropped: every record with siren data already has a kit list", len(kits))
		return
	}
	target.ModKits = set
	target.Loaded.Add(metakit.DialectModkits)
	p.logger.Verbose("carcols: %d kits attached to %q", len(kits), target.Name)
}

func decodeSirenKit(it elem) metakit.SirenKit {
	sk := metakit.DefaultSirenKit()
	sk.SirenID = decode.Int(field(it, "id"), 0)
	sk.SequencerBPM = decode.Int(field(it, "sequencerBpm"), 600)
	sk.RotationLimit = decode.Float(field(it, "rotationLimit"), 0)
	sk.Lights = []metakit.SirenLight{}
	for _, l := range items(child(it, "sirens")) {
		sk.Lights = append(sk.Lights, decodeSirenLight(l))
	}
	env := child(it, "environmentalLight")
	sk.EnvironmentalLightColor = decode.Color(field(env, "color"), metakit.DefaultSirenColor)
	sk.EnvironmentalLightIntensity = decode.Float(field(env, "intensity"), 50)
	return sk
}

func decodeSirenLight(l elem) metakit.SirenLight {
	return metakit.SirenLight{
		Rotation:  decode.Vector3(field(l, "rotation"), metakit.Vec3{}),
		Flashness: decode.Float(field(l, "flashness"), 1),
		Delta:     decode.Float(field(l, "delta"), 0),
		Color:     decode.Color(field(l, "color"), metakit.DefaultSirenColor),
		Scale:     decode.Float(field(l, "scale"), 0.4),
		Sequencer: decode.BitPattern(field(l, "sequencer"), metakit.DefaultSequencer),
	}
}

func decodeModKit(k elem) metakit.ModKit {
	kit := metakit.ModKit{
		KitName:     text(k, "kitName"),
		ID:          decode.Int(field(k, "id"), 0),
		KitType:     decode.String(field(k, "kitType"), "MKT_STANDARD"),
		VisibleMods: []metakit.VisibleMod{},
		StatMods:    []metakit.StatMod{},
		SlotNames:   []metakit.SlotName{},
	}
	for _, m := range items(child(k, "visibleMods")) {
		kit.VisibleMods = append(kit.VisibleMods, metakit.VisibleMod{
			ModelName:     text(m, "modelName"),
			ModShopLabel:  text(m, "modShopLabel"),
			LinkedModels:  text(m, "linkedModels"),
			TurnOffBones:  append([]string{}, itemTexts(child(m, "turnOffBones"))...),
			Type:          decode.String(field(m, "type"), "VMT_SPOILER"),
			Bone:          decode.String(field(m, "bone"), "chassis"),
			CollisionBone: decode.String(field(m, "collisionBone"), "chassis"),
		})
	}
	for _, m := range items(child(k, "statMods")) {
		kit.StatMods = append(kit.StatMods, metakit.StatMod{
			Identifier: text(m, "identifier"),
			Modifier:   decode.Int(field(m, "modifier"), 0),
			AudioApply: decode.Float(field(m, "audioApply"), 1),
			Weight:     decode.Int(field(m, "weight"), 0),
			Type:       decode.String(field(m, "type"), "VMT_ENGINE"),
		})
	}
	for _, s := range items(child(k, "slotNames")) {
		kit.SlotNames = append(kit.SlotNames, metakit.SlotName{
			Slot: text(s, "slot"),
			Name: text(s, "name"),
		})
	}
	return kit
}
