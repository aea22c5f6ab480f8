// Package units derives the model's length-to-meter and area-to-square-meter
// scale factors from its declared unit definitions. Lookup failures fall back
// silently to 1.0 (model units treated as already metric); the factors are
// always strictly positive.
package units

import (
	"log/slog"
	"strings"

	"github.com/edubim/schoolcheck/internal/model"
)

// Scale holds the resolved conversion factors for one model.
type Scale struct {
	Length float64 // model length unit -> meters
	Area   float64 // model area unit -> square meters (Length squared)
}

// siPrefixScale maps SI prefix names to their power-of-ten multiplier.
var siPrefixScale = map[string]float64{
	"EXA":   1e18,
	"PETA":  1e15,
	"TERA":  1e12,
	"GIGA":  1e9,
	"MEGA":  1e6,
	"KILO":  1e3,
	"HECTO": 1e2,
	"DECA":  1e1,
	"DECI":  1e-1,
	"CENTI": 1e-2,
	"MILLI": 1e-3,
	"MICRO": 1e-6,
	"NANO":  1e-9,
	"PICO":  1e-12,
	"FEMTO": 1e-15,
	"ATTO":  1e-18,
}

// Resolve computes the scale factors for a model. Safe to cache for the
// lifetime of one evaluation run.
func Resolve(m model.Model, logger *slog.Logger) Scale {
	length := lengthScale(m)
	if logger != nil {
		logger.Debug("resolved unit scale", "length_scale", length, "area_scale", length*length)
	}
	return Scale{Length: length, Area: length * length}
}

// lengthScale walks the declared units looking for the length unit. An SI
// "metre" with an optional prefix yields the prefix multiplier; a
// conversion-based unit whose component unit is SI metre yields the declared
// conversion value. Anything else falls back to 1.0.
func lengthScale(m model.Model) float64 {
	for _, u := range m.Units() {
		if !strings.EqualFold(u.Measure, model.MeasureLength) {
			continue
		}
		if u.SI && strings.EqualFold(u.Name, model.SIMetre) {
			if u.Prefix == "" {
				return 1.0
			}
			if s, ok := siPrefixScale[strings.ToUpper(u.Prefix)]; ok {
				return s
			}
			return 1.0
		}
		if !u.SI && u.ConversionUnit != nil &&
			u.ConversionUnit.SI && strings.EqualFold(u.ConversionUnit.Name, model.SIMetre) {
			if u.ConversionValue > 0 {
				return u.ConversionValue
			}
		}
	}
	return 1.0
}
