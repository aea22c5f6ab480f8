package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubim/schoolcheck/internal/aggregate"
	"github.com/edubim/schoolcheck/internal/footprint"
	"github.com/edubim/schoolcheck/internal/model"
	"github.com/edubim/schoolcheck/internal/rules"
)

func TestWriteResultsCSV(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	err := WriteResultsCSV(&sb, []rules.Result{
		{
			RuleID: "area-classroom", Code: "2-2-1", Label: "classroom",
			SchoolType: rules.SchoolEbtedaei1, OccupantsUsed: 30,
			Required: 51, Available: 40, Shortfall: 11,
			Unit: rules.UnitSquareMeters, Status: rules.StatusNotOK,
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "rule_id,code,label,school_type,room,occupants,required,available,shortfall,unit,status", lines[0])
	assert.Equal(t, "area-classroom,2-2-1,classroom,ebtedaei dore 1,,30,51,40,11,m2,NOT_OK", lines[1])
}

func TestWriteRoomsCSVScalesArea(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	err := WriteRoomsCSV(&sb, []*footprint.Footprint{
		{EntityID: 4, Name: "Classroom 1", Area: 36e6, ZMin: 0, ZMax: 3000, Furnishings: []int64{1, 2}},
	}, 1e-6)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "4,Classroom 1,36,0,3000,2,false", lines[1])
}

func TestWriteFurnitureCSVSorted(t *testing.T) {
	t.Parallel()

	fm := aggregate.BuildFurnitureMap([]model.FurnishingPoint{
		{Name: "Student Chair 1"},
		{Name: "Student Chair 2"},
		{Name: "Drinking Tap"},
	})

	var sb strings.Builder
	require.NoError(t, WriteFurnitureCSV(&sb, fm))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "drinking tap,Drinking Tap,1", lines[1])
	assert.Equal(t, "student chair,Student Chair,2", lines[2])
}
