// Package aggregate groups furnishings and rooms by canonical label. It
// produces the per-label instance counts the rule evaluator reads (occupant
// counts, fixture counts, summed room areas) and the per-room occupancy
// counts used by capacity checks. Everything is built fresh per evaluation
// run; there is no cross-run state.
package aggregate

import (
	"sort"

	"github.com/edubim/schoolcheck/internal/footprint"
	"github.com/edubim/schoolcheck/internal/label"
	"github.com/edubim/schoolcheck/internal/model"
)

// Group is one canonical furnishing label's aggregate: the first-seen,
// numeric-token-stripped display string and the instance count.
type Group struct {
	Display string
	Count   int
}

// FurnitureMap maps canonical label -> group over furnishing instances.
type FurnitureMap map[string]*Group

// BuildFurnitureMap aggregates furnishing points by canonical label.
// Unlabeled furnishings are excluded.
func BuildFurnitureMap(furnishings []model.FurnishingPoint) FurnitureMap {
	fm := make(FurnitureMap)
	for i := range furnishings {
		raw := bestLabel(&furnishings[i])
		key := label.Canonical(raw)
		if key == "" {
			continue
		}
		g, ok := fm[key]
		if !ok {
			g = &Group{Display: label.Display(raw)}
			fm[key] = g
		}
		g.Count++
	}
	return fm
}

// bestLabel mirrors the furnishing label fallback order: own name, object
// type, defining-type name.
func bestLabel(f *model.FurnishingPoint) string {
	for _, s := range []string{f.Name, f.ObjectType, f.TypeName} {
		if s != "" {
			return s
		}
	}
	return ""
}

// ExactCount returns the instance count for a fully canonicalized label.
func (fm FurnitureMap) ExactCount(phrase string) int {
	if g, ok := fm[label.Canonical(phrase)]; ok {
		return g.Count
	}
	return 0
}

// ContainsCount sums the counts of every group whose display text contains
// the phrase, case-insensitively. Order-independent by construction.
func (fm FurnitureMap) ContainsCount(phrase string) int {
	total := 0
	for _, g := range fm {
		if label.ContainsFold(g.Display, phrase) {
			total += g.Count
		}
	}
	return total
}

// Labels returns the canonical keys in sorted order, for deterministic
// display output.
func (fm FurnitureMap) Labels() []string {
	keys := make([]string, 0, len(fm))
	for k := range fm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RoomCountByLabel counts footprinted rooms per canonical label. Rooms whose
// name canonicalizes to "" are excluded.
func RoomCountByLabel(rooms []*footprint.Footprint) map[string]int {
	counts := make(map[string]int)
	for _, r := range rooms {
		key := label.Canonical(r.Name)
		if key == "" {
			continue
		}
		counts[key]++
	}
	return counts
}

// AreaByLabel sums footprint areas per canonical label, scaled to square
// meters by areaScale.
func AreaByLabel(rooms []*footprint.Footprint, areaScale float64) map[string]float64 {
	areas := make(map[string]float64)
	for _, r := range rooms {
		key := label.Canonical(r.Name)
		if key == "" || r.Area <= 0 {
			continue
		}
		areas[key] += r.Area * areaScale
	}
	return areas
}

// Occupancy is one room's assigned furnishing count.
type Occupancy struct {
	EntityID int64
	Name     string
	Label    string // canonical room label
	Assigned int
}

// RoomOccupancy reports per-room assigned furnishing counts, preserving the
// incoming room order.
func RoomOccupancy(rooms []*footprint.Footprint) []Occupancy {
	out := make([]Occupancy, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, Occupancy{
			EntityID: r.EntityID,
			Name:     r.Name,
			Label:    label.Canonical(r.Name),
			Assigned: len(r.Furnishings),
		})
	}
	return out
}

// RoomOccupancyMatching reports per-room counts for rooms of one canonical
// label, counting only assigned furnishings whose display text contains the
// phrase. Capacity checks read this: the classroom check counts student
// chairs per classroom, not every object in the room. Room order is
// preserved; rooms of other labels are skipped entirely.
func RoomOccupancyMatching(rooms []*footprint.Footprint, furnishings []model.FurnishingPoint, roomLabel, phrase string) []Occupancy {
	byID := make(map[int64]*model.FurnishingPoint, len(furnishings))
	for i := range furnishings {
		byID[furnishings[i].EntityID] = &furnishings[i]
	}

	out := make([]Occupancy, 0, len(rooms))
	for _, r := range rooms {
		key := label.Canonical(r.Name)
		if key != roomLabel {
			continue
		}
		assigned := 0
		for _, id := range r.Furnishings {
			f, ok := byID[id]
			if !ok {
				continue
			}
			if label.ContainsFold(label.Display(bestLabel(f)), phrase) {
				assigned++
			}
		}
		out = append(out, Occupancy{
			EntityID: r.EntityID,
			Name:     r.Name,
			Label:    key,
			Assigned: assigned,
		})
	}
	return out
}
