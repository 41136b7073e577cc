package merge

import (
	"strings"

	"github.com/vvka-141/metakit/pkg/metakit"
)

// PickCanonicalID resolves the handling id of two records describing the
// same model. A non-empty id beats an empty one; when one id starts with the
// other the shorter wins; otherwise current is kept.
func PickCanonicalID(current, incoming string) string {
	c := strings.TrimSpace(current)
	i := strings.TrimSpace(incoming)
	switch {
	case c == "":
		return i
	case i == "":
		return c
	}

	fc, fi := metakit.FoldName(c), metakit.FoldName(i)
	if fc == fi {
		return c
	}
	if strings.HasPrefix(fi, fc) {
		return c
	}
	if strings.HasPrefix(fc, fi) {
		return i
	}
	return c
}

// CanonicalBySimilarity returns the shortest id in all that id starts with,
// compared case-insensitively, or id itself when there is none.
func CanonicalBySimilarity(id string, all []string) string {
	best := strings.TrimSpace(id)
	folded := metakit.FoldName(best)
	if folded == "" {
		return best
	}
	for _, other := range all {
		o := strings.TrimSpace(other)
		fo := metakit.FoldName(o)
		if fo == "" || fo == folded {
			continue
		}
		if len(fo) < len(metakit.FoldName(best)) && strings.HasPrefix(folded, fo) {
			best = o
		}
	}
	return best
}

// Consolidate rewrites each record's handling id to its canonical form and
// returns how many records changed.
func Consolidate(records []*metakit.VehicleRecord) int {
	ids := handlingIDs(records)
	changed := 0
	for _, r := range records {
		id := strings.TrimSpace(r.Identity.HandlingID)
		if id == "" {
			continue
		}
		if canonical := CanonicalBySimilarity(id, ids); canonical != id {
			r.Identity.HandlingID = canonical
			changed++
		}
	}
	return changed
}

// previewPairs lists "id -> canonical" for every distinct id Consolidate
// would rewrite, in first-seen order.
func previewPairs(records []*metakit.VehicleRecord) []string {
	ids := handlingIDs(records)
	pairs := []string{}
	for _, id := range ids {
		if canonical := CanonicalBySimilarity(id, ids); canonical != id {
			pairs = append(pairs, id+" -> "+canonical)
		}
	}
	return pairs
}

func handlingIDs(records []*metakit.VehicleRecord) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range records {
		id := strings.TrimSpace(r.Identity.HandlingID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
