// Package assign places furnishing world points into room footprints. Each
// furnishing lands in at most one room: the first room, in a stable order,
// whose footprint contains the 2D point and whose reference elevation is
// within the vertical tolerance. Furnishings that match no room stay
// unassigned, which is data rather than an error.
package assign

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/edubim/schoolcheck/internal/footprint"
	"github.com/edubim/schoolcheck/internal/model"
)

// DefaultZTolerance is the vertical tolerance band in model length units.
const DefaultZTolerance = 1.0

// OrderRooms sorts footprints into the stable scan order used for
// first-match assignment: display name, then entity id as tie-break. The
// slice is sorted in place and returned.
func OrderRooms(rooms []*footprint.Footprint) []*footprint.Footprint {
	sort.SliceStable(rooms, func(i, j int) bool {
		if rooms[i].Name != rooms[j].Name {
			return rooms[i].Name < rooms[j].Name
		}
		return rooms[i].EntityID < rooms[j].EntityID
	})
	return rooms
}

// Assign walks the furnishings in caller order and appends each to the first
// qualifying room's furnishing list. Rooms must already be in scan order
// (see OrderRooms); the room slice contents are the only thing mutated.
// Complexity is O(rooms x furnishings), fine at building scale.
//
// zTolerance is the maximum |furnishing Z - room reference elevation| in raw
// model length units. Zero means exact elevation match; a negative value
// selects DefaultZTolerance.
func Assign(rooms []*footprint.Footprint, furnishings []model.FurnishingPoint, zTolerance float64) {
	if zTolerance < 0 {
		zTolerance = DefaultZTolerance
	}
	for i := range furnishings {
		f := &furnishings[i]
		if !f.Placed {
			continue
		}
		pt := orb.Point{f.X, f.Y}
		for _, room := range rooms {
			if math.Abs(f.Z-room.RefElevation) > zTolerance {
				continue
			}
			if room.Contains(pt) {
				room.Furnishings = append(room.Furnishings, f.EntityID)
				break
			}
		}
	}
}
