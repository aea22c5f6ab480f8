package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubim/schoolcheck/internal/conf"
	"github.com/edubim/schoolcheck/internal/model"
	"github.com/edubim/schoolcheck/internal/observability"
	"github.com/edubim/schoolcheck/internal/rules"
)

// squareMesh returns a unit-square floor mesh at the given origin and
// elevation, scaled to side length.
func squareMesh(x, y, z, side float64) model.TriangleMesh {
	return model.TriangleMesh{
		Vertices: []model.Vec3{
			{X: x, Y: y, Z: z},
			{X: x + side, Y: y, Z: z},
			{X: x + side, Y: y + side, Z: z},
			{X: x, Y: y + side, Z: z},
		},
		Faces: []int{0, 1, 2, 0, 2, 3},
	}
}

// addRoom adds a space with a square floor mesh.
func addRoom(m *model.InMemory, id int64, name string, x, y, side float64) {
	space := m.AddEntity(model.KindSpace,
		model.WithID(id),
		model.WithAttr(model.AttrLongName, name),
	)
	m.SetMesh(space, squareMesh(x, y, 0, side))
}

// addChair adds a placed furnishing at a world point.
func addChair(m *model.InMemory, id int64, name string, x, y float64) {
	m.AddEntity(model.KindFurnishing,
		model.WithID(id),
		model.WithAttr(model.AttrName, name),
		model.WithPlacement(&model.PlacementLink{Origin: model.Vec3{X: x, Y: y}}),
	)
}

// schoolModel builds a two-classroom model: 6x6m rooms, three student
// chairs in the first, one in the second, a WC and all metric units.
func schoolModel() *model.InMemory {
	m := model.NewInMemory()
	m.AddEntity(model.KindProject, model.WithAttr(model.AttrName, "Test School"))
	m.AddUnit(model.UnitDef{Measure: model.MeasureLength, SI: true, Name: model.SIMetre})

	addRoom(m, 1, "Classroom 1", 0, 0, 6)
	addRoom(m, 2, "Classroom 2", 10, 0, 6)
	addRoom(m, 3, "WC", 20, 0, 2)

	addChair(m, 101, "Student Chair 1", 1, 1)
	addChair(m, 102, "Student Chair 2", 2, 1)
	addChair(m, 103, "Student Chair 3", 3, 1)
	addChair(m, 104, "Student Chair 4", 11, 1)
	return m
}

func testSettings(t *testing.T) *conf.Settings {
	t.Helper()
	s, err := conf.Load("")
	require.NoError(t, err)
	return s
}

func TestEvaluatePipeline(t *testing.T) {
	t.Parallel()

	e := New(testSettings(t))
	run, err := e.Evaluate(context.Background(), schoolModel())
	require.NoError(t, err)

	require.Len(t, run.Rooms, 3)
	// Scan order is display name, then id.
	assert.Equal(t, "Classroom 1", run.Rooms[0].Name)
	assert.Equal(t, "WC", run.Rooms[2].Name)
	assert.Len(t, run.Rooms[0].Furnishings, 3)
	assert.Len(t, run.Rooms[1].Furnishings, 1)

	// Occupants counted from student chairs.
	assert.Equal(t, 4, run.Occupants)
	assert.NotEqual(t, "", run.ID.String())

	byID := make(map[string][]rules.Result)
	for _, r := range run.Results {
		byID[r.RuleID] = append(byID[r.RuleID], r)
	}

	// 4 occupants x 1.7 = 6.8 m2 required, 72 m2 of classrooms available.
	area := byID["area-classroom"]
	require.Len(t, area, 1)
	assert.Equal(t, rules.StatusOK, area[0].Status)
	assert.InDelta(t, 6.8, area[0].Required, 1e-9)
	assert.InDelta(t, 72.0, area[0].Available, 1e-6)

	// Two classrooms but a single WC.
	wc := byID["wc-count"]
	require.Len(t, wc, 1)
	assert.Equal(t, rules.StatusNotOK, wc[0].Status)
	assert.InDelta(t, 1.0, wc[0].Shortfall, 1e-9)

	// No praying room in the model at all.
	praying := byID["area-praying-room"]
	require.Len(t, praying, 1)
	assert.Equal(t, rules.StatusNoSource, praying[0].Status)

	// Per-room capacity results for both classrooms, both under 24.
	capacity := byID["classroom-capacity"]
	require.Len(t, capacity, 2)
	for _, c := range capacity {
		assert.Equal(t, rules.StatusOK, c.Status)
	}
}

func TestEvaluateOccupantOverride(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	s.Check.Occupants = 100
	run, err := New(s).Evaluate(context.Background(), schoolModel())
	require.NoError(t, err)
	assert.Equal(t, 100, run.Occupants)

	for _, r := range run.Results {
		if r.RuleID == "area-classroom" {
			// 100 x 1.7 = 170 m2 against 72 m2.
			assert.Equal(t, rules.StatusNotOK, r.Status)
			assert.InDelta(t, 98.0, r.Shortfall, 1e-6)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	s.Check.Workers = 4
	m := schoolModel()
	// Enough rooms to make worker scheduling visible if order ever leaked.
	for i := int64(10); i < 40; i++ {
		addRoom(m, i, fmt.Sprintf("Extra Room %02d", i), float64(i)*10, 50, 4)
	}

	e := New(s)
	first, err := e.Evaluate(context.Background(), m)
	require.NoError(t, err)
	second, err := e.Evaluate(context.Background(), m)
	require.NoError(t, err)

	require.Equal(t, len(first.Rooms), len(second.Rooms))
	for i := range first.Rooms {
		assert.Equal(t, first.Rooms[i].EntityID, second.Rooms[i].EntityID)
		assert.Equal(t, first.Rooms[i].Furnishings, second.Rooms[i].Furnishings)
	}
	assert.Equal(t, first.Results, second.Results)
}

func TestEvaluateCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(testSettings(t)).Evaluate(ctx, schoolModel())
	require.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateWithMetrics(t *testing.T) {
	t.Parallel()

	metrics, err := observability.NewMetrics()
	require.NoError(t, err)

	_, err = New(testSettings(t), WithMetrics(metrics)).Evaluate(context.Background(), schoolModel())
	require.NoError(t, err)

	families, err := metrics.Gather()
	require.NoError(t, err)
	values := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if m.GetCounter() != nil {
				values[f.GetName()] += m.GetCounter().GetValue()
			}
		}
	}
	assert.InDelta(t, 3.0, values["schoolcheck_footprints_built_total"], 0)
	assert.InDelta(t, 4.0, values["schoolcheck_furnishings_assigned_total"], 0)
	assert.InDelta(t, 1.0, values["schoolcheck_runs_total"], 0)
}

func TestExtractFurnishingsUnplaced(t *testing.T) {
	t.Parallel()

	m := model.NewInMemory()
	m.AddEntity(model.KindFurnishing,
		model.WithID(7),
		model.WithAttr(model.AttrName, "Student Chair"),
	)

	points := ExtractFurnishings(m)
	require.Len(t, points, 1)
	assert.False(t, points[0].Placed)
	assert.Equal(t, "Student Chair", points[0].Name)
}
