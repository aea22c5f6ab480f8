package units

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edubim/schoolcheck/internal/model"
)

func modelWithUnit(u model.UnitDef) *model.InMemory {
	m := model.NewInMemory()
	m.AddEntity(model.KindProject, model.WithAttr(model.AttrName, "Project"))
	m.AddUnit(u)
	return m
}

func TestResolve(t *testing.T) {
	t.Parallel()

	metre := model.UnitDef{Measure: model.MeasureLength, SI: true, Name: "metre"}

	tests := []struct {
		name       string
		model      model.Model
		wantLength float64
	}{
		{
			name:       "plain metre",
			model:      modelWithUnit(metre),
			wantLength: 1.0,
		},
		{
			name: "millimetre",
			model: modelWithUnit(model.UnitDef{
				Measure: model.MeasureLength, SI: true, Name: "metre", Prefix: "milli",
			}),
			wantLength: 0.001,
		},
		{
			name: "centimetre uppercase prefix",
			model: modelWithUnit(model.UnitDef{
				Measure: model.MeasureLength, SI: true, Name: "METRE", Prefix: "CENTI",
			}),
			wantLength: 0.01,
		},
		{
			name: "conversion based foot",
			model: modelWithUnit(model.UnitDef{
				Measure:         model.MeasureLength,
				Name:            "foot",
				ConversionValue: 0.3048,
				ConversionUnit:  &metre,
			}),
			wantLength: 0.3048,
		},
		{
			name: "unknown prefix falls back",
			model: modelWithUnit(model.UnitDef{
				Measure: model.MeasureLength, SI: true, Name: "metre", Prefix: "bogus",
			}),
			wantLength: 1.0,
		},
		{
			name:       "no length unit falls back",
			model:      modelWithUnit(model.UnitDef{Measure: "area", SI: true, Name: "square metre"}),
			wantLength: 1.0,
		},
		{
			name:       "no units at all",
			model:      model.NewInMemory(),
			wantLength: 1.0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scale := Resolve(tt.model, nil)
			assert.InDelta(t, tt.wantLength, scale.Length, 1e-12)
			assert.InDelta(t, tt.wantLength*tt.wantLength, scale.Area, 1e-12)
			assert.Positive(t, scale.Length)
			assert.Positive(t, scale.Area)
		})
	}
}

func TestMillimetreAreaScale(t *testing.T) {
	t.Parallel()

	scale := Resolve(modelWithUnit(model.UnitDef{
		Measure: model.MeasureLength, SI: true, Name: "metre", Prefix: "milli",
	}), nil)
	assert.InDelta(t, 1e-6, scale.Area, 1e-18)
}
