package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubim/schoolcheck/internal/footprint"
	"github.com/edubim/schoolcheck/internal/model"
)

func furn(name, objectType, typeName string) model.FurnishingPoint {
	return model.FurnishingPoint{Name: name, ObjectType: objectType, TypeName: typeName}
}

func TestBuildFurnitureMap(t *testing.T) {
	t.Parallel()

	fm := BuildFurnitureMap([]model.FurnishingPoint{
		furn("Student Chair 1", "", ""),
		furn("Student Chair 2", "", ""),
		furn("student chair", "", ""),
		furn("", "Meeting Room Chair", ""),
		furn("", "", "Drinking Tap"),
		furn("", "", ""), // unlabeled, excluded
	})

	require.Len(t, fm, 3)
	assert.Equal(t, 3, fm.ExactCount("student chair"))
	assert.Equal(t, 1, fm.ExactCount("meeting room chair"))
	assert.Equal(t, 1, fm.ExactCount("drinking tap"))
	// Display keeps the first-seen, number-stripped form.
	assert.Equal(t, "Student Chair", fm["student chair"].Display)
}

func TestContainsCountSumsAcrossGroups(t *testing.T) {
	t.Parallel()

	fm := BuildFurnitureMap([]model.FurnishingPoint{
		furn("Student Chair Type A", "", ""),
		furn("Student Chair Type A", "", ""),
		furn("Student Chair Type B", "", ""),
		furn("Teacher Chair", "", ""),
	})

	assert.Equal(t, 3, fm.ContainsCount("student chair"))
	assert.Equal(t, 4, fm.ContainsCount("chair"))
	assert.Equal(t, 0, fm.ContainsCount("laboratory chair"))
}

func TestLabelsSorted(t *testing.T) {
	t.Parallel()

	fm := BuildFurnitureMap([]model.FurnishingPoint{
		furn("zebra desk", "", ""),
		furn("apple chair", "", ""),
	})
	assert.Equal(t, []string{"apple chair", "zebra desk"}, fm.Labels())
}

func fp(id int64, name string, area float64) *footprint.Footprint {
	return &footprint.Footprint{EntityID: id, Name: name, Area: area}
}

func TestRoomCountByLabel(t *testing.T) {
	t.Parallel()

	counts := RoomCountByLabel([]*footprint.Footprint{
		fp(1, "Classroom 1", 50),
		fp(2, "Classroom 2", 48),
		fp(3, "WC", 4),
		fp(4, "wc", 4),
		fp(5, "12", 9), // canonicalizes to "", excluded
	})
	assert.Equal(t, 2, counts["classroom"])
	assert.Equal(t, 2, counts["wc"])
	assert.NotContains(t, counts, "")
}

func TestAreaByLabelScaled(t *testing.T) {
	t.Parallel()

	// Areas in mm² with a millimeter model: area scale 1e-6.
	areas := AreaByLabel([]*footprint.Footprint{
		fp(1, "Classroom 1", 50e6),
		fp(2, "Classroom 2", 30e6),
		fp(3, "Empty", 0), // zero area contributes nothing
	}, 1e-6)
	assert.InDelta(t, 80.0, areas["classroom"], 1e-9)
	assert.NotContains(t, areas, "empty")
}

func TestRoomOccupancyPreservesOrder(t *testing.T) {
	t.Parallel()

	a := fp(1, "Classroom 1", 50)
	a.Furnishings = []int64{10, 11, 12}
	b := fp(2, "Laboratory", 60)

	occ := RoomOccupancy([]*footprint.Footprint{a, b})
	require.Len(t, occ, 2)
	assert.Equal(t, 3, occ[0].Assigned)
	assert.Equal(t, "classroom", occ[0].Label)
	assert.Equal(t, 0, occ[1].Assigned)
	assert.Equal(t, "laboratory", occ[1].Label)
}

func TestRoomOccupancyMatching(t *testing.T) {
	t.Parallel()

	furnishings := []model.FurnishingPoint{
		{EntityID: 10, Name: "Student Chair 1"},
		{EntityID: 11, Name: "Student Chair 2"},
		{EntityID: 12, Name: "Teacher Desk"},
		{EntityID: 13, Name: "Student Chair 3"},
	}

	a := fp(1, "Classroom 1", 50)
	a.Furnishings = []int64{10, 11, 12}
	b := fp(2, "Classroom 2", 48)
	b.Furnishings = []int64{13, 99} // 99 has no furnishing record
	c := fp(3, "Laboratory", 60)
	c.Furnishings = []int64{10}

	occ := RoomOccupancyMatching([]*footprint.Footprint{a, b, c}, furnishings, "classroom", "student chair")
	require.Len(t, occ, 2)
	assert.Equal(t, 2, occ[0].Assigned) // desk not counted
	assert.Equal(t, 1, occ[1].Assigned) // unknown id skipped
	assert.Equal(t, "Classroom 1", occ[0].Name)

	assert.Empty(t, RoomOccupancyMatching([]*footprint.Footprint{a, b, c}, furnishings, "workshop", "student chair"))
}
