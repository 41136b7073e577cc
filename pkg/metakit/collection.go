package metakit

// Collection is an insertion-ordered set of records keyed by record id.
// It has a single owner; callers that share one across goroutines must
// serialize access themselves.
type Collection struct {
	order    []string
	byID     map[string]*VehicleRecord
	sequence int
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{byID: make(map[string]*VehicleRecord)}
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.order)
}

// Get returns the record with the given id.
func (c *Collection) Get(id string) (*VehicleRecord, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Records returns the records in insertion order.
func (c *Collection) Records() []*VehicleRecord {
	out := make([]*VehicleRecord, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Put inserts r, or replaces the record with the same id in place.
func (c *Collection) Put(r *VehicleRecord) {
	if _, exists := c.byID[r.ID]; !exists {
		c.order = append(c.order, r.ID)
	}
	c.byID[r.ID] = r
}

// Remove deletes the record with the given id.
func (c *Collection) Remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Find returns the first record, in insertion order, that satisfies match.
func (c *Collection) Find(match func(*VehicleRecord) bool) *VehicleRecord {
	for _, id := range c.order {
		if r := c.byID[id]; match(r) {
			return r
		}
	}
	return nil
}

// CreateDefault allocates a fresh id, inserts a default record named name and
// returns it.
func (c *Collection) CreateDefault(name string) *VehicleRecord {
	id := GenerateRecordID(name, c.sequence)
	c.sequence++
	for c.byID[id] != nil {
		id = GenerateRecordID(name, c.sequence)
		c.sequence++
	}
	r := NewRecord(id, name)
	c.Put(r)
	return r
}

// Clone deep-copies the record with the given id under a new name and
// inserts the copy. Identity names follow the new name.
func (c *Collection) Clone(id, newName string) (*VehicleRecord, bool) {
	src, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	dst := c.CreateDefault(newName)
	recordID := dst.ID
	*dst = src.Copy()
	dst.ID = recordID
	dst.Name = newName
	dst.Handling.HandlingName = upperName(newName)
	dst.Identity.ModelName = lowerName(newName)
	dst.Identity.TxdName = lowerName(newName)
	dst.Identity.HandlingID = upperName(newName)
	dst.Identity.GameName = upperName(newName)
	dst.Variation.ModelName = lowerName(newName)
	return dst, true
}

// Copy returns a deep copy of the record.
func (r *VehicleRecord) Copy() VehicleRecord {
	out := *r
	out.Identity.Flags = NewFlagSet(r.Identity.Flags.Items()...)
	out.Sirens.Lights = append([]SirenLight(nil), r.Sirens.Lights...)
	out.Variation.Colors = append([]ColorSet(nil), r.Variation.Colors...)
	out.Variation.Kits = append([]string(nil), r.Variation.Kits...)
	out.Variation.PlateProbabilities = append([]int(nil), r.Variation.PlateProbabilities...)
	out.Layout.CoverBoundOffsets = append([]CoverBoundOffset(nil), r.Layout.CoverBoundOffsets...)
	out.Layout.LookAround = nil
	for _, e := range r.Layout.LookAround {
		e.Left.Offsets = append([]LookAroundOffset(nil), e.Left.Offsets...)
		e.Right.Offsets = append([]LookAroundOffset(nil), e.Right.Offsets...)
		out.Layout.LookAround = append(out.Layout.LookAround, e)
	}
	out.ModKits.Kits = nil
	for _, k := range r.ModKits.Kits {
		k.VisibleMods = append([]VisibleMod(nil), k.VisibleMods...)
		for j := range k.VisibleMods {
			k.VisibleMods[j].TurnOffBones = append([]string(nil), k.VisibleMods[j].TurnOffBones...)
		}
		k.StatMods = append([]StatMod(nil), k.StatMods...)
		k.SlotNames = append([]SlotName(nil), k.SlotNames...)
		out.ModKits.Kits = append(out.ModKits.Kits, k)
	}
	return out
}
