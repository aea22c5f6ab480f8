package rules

import (
	"fmt"
	"math"
)

// judge applies the generic comparison contract: non-strict >= satisfies,
// absence of the source is NO_SOURCE rather than a plain failure, and a
// zero-coefficient rule is NOT_REQUIRED with the available value still
// reported. Shortfall is always max(0, required-available).
func judge(required, available float64, notRequired bool) (Status, float64) {
	switch {
	case notRequired:
		return StatusNotRequired, 0
	case available <= 0 && required > 0:
		return StatusNoSource, required
	case available >= required:
		return StatusOK, 0
	default:
		return StatusNotOK, required - available
	}
}

// Evaluate runs every rule of the set against the aggregated input. The
// ruleset must have passed Validate; an unknown kind here is a programmer
// error and is returned as one.
func (rs *Ruleset) Evaluate(in Input) ([]Result, error) {
	results := make([]Result, 0, len(rs.Rules))
	for i := range rs.Rules {
		r := &rs.Rules[i]
		switch r.Kind {
		case KindPerCapitaArea, KindDualCoefficientArea:
			results = append(results, evalArea(r, in))
		case KindPerUnitCount:
			results = append(results, evalPerUnit(r, in))
		case KindFixedMinimum:
			results = append(results, evalFixedMinimum(r, in))
		case KindRoomCapacity:
			results = append(results, evalCapacity(r, in)...)
		default:
			return nil, fmt.Errorf("rule %q: unknown kind %q", r.ID, r.Kind)
		}
	}
	return results, nil
}

// evalArea covers both per-capita shapes. Required area is occupants times
// the school-type coefficient (times the second coefficient for the dual
// shape); available is the summed area of rooms carrying the rule's label.
func evalArea(r *Rule, in Input) Result {
	coef := r.Coefficients[in.SchoolType]
	if r.Kind == KindDualCoefficientArea {
		coef *= r.SecondCoefficients[in.SchoolType]
	}

	occupants := in.Occupants
	if r.FixedOccupants > 0 {
		occupants = r.FixedOccupants
	}

	required := float64(occupants) * coef
	available := in.AreaByLabel[r.RoomLabel]
	status, shortfall := judge(required, available, coef == 0)

	return Result{
		RuleID:        r.ID,
		Code:          r.Code,
		Label:         r.RoomLabel,
		SchoolType:    in.SchoolType,
		OccupantsUsed: occupants,
		Required:      required,
		Available:     available,
		Status:        status,
		Shortfall:     shortfall,
		Unit:          UnitSquareMeters,
	}
}

// evalPerUnit sizes a facility count against a unit-room count, e.g. one WC
// per classroom or one staff WC per six classrooms (rounded up).
func evalPerUnit(r *Rule, in Input) Result {
	units := in.RoomCount[r.UnitLabel]
	required := float64(units) * r.Ratio
	if r.Ceiling {
		required = math.Ceil(required)
	}
	available := float64(in.RoomCount[r.RoomLabel])
	status, shortfall := judge(required, available, false)

	return Result{
		RuleID:     r.ID,
		Code:       r.Code,
		Label:      r.RoomLabel,
		SchoolType: in.SchoolType,
		Required:   required,
		Available:  available,
		Status:     status,
		Shortfall:  shortfall,
		Unit:       UnitCount,
	}
}

// evalFixedMinimum compares a constant requirement against a room count or a
// seat count.
func evalFixedMinimum(r *Rule, in Input) Result {
	required := r.Minimum
	if len(r.Minimums) > 0 {
		required = r.Minimums[in.SchoolType]
	}

	var available float64
	switch r.Source {
	case SourceSeatCount:
		available = float64(in.SeatCount(r.SeatPhrase))
	default:
		available = float64(in.RoomCount[r.RoomLabel])
	}
	status, shortfall := judge(required, available, required == 0 && len(r.Minimums) > 0)

	return Result{
		RuleID:     r.ID,
		Code:       r.Code,
		Label:      r.RoomLabel,
		SchoolType: in.SchoolType,
		Required:   required,
		Available:  available,
		Status:     status,
		Shortfall:  shortfall,
		Unit:       UnitCount,
	}
}

// evalCapacity emits one result per detected room of the rule's label:
// assigned seats must not exceed the capacity. When no room matches (and
// the fallback label, if any, matches nothing either) a single NO_SOURCE
// record documents the absence.
func evalCapacity(r *Rule, in Input) []Result {
	occ := in.RoomOccupancy(r.RoomLabel, r.SeatPhrase)
	label := r.RoomLabel
	if len(occ) == 0 && r.FallbackRoomLabel != "" {
		occ = in.RoomOccupancy(r.FallbackRoomLabel, r.SeatPhrase)
		label = r.FallbackRoomLabel
	}
	if len(occ) == 0 {
		return []Result{{
			RuleID:     r.ID,
			Code:       r.Code,
			Label:      r.RoomLabel,
			SchoolType: in.SchoolType,
			Status:     StatusNoSource,
			Unit:       UnitCount,
		}}
	}

	results := make([]Result, 0, len(occ))
	for _, room := range occ {
		required := float64(room.Assigned)
		available := float64(r.MaxCapacity)
		status, shortfall := judge(required, available, false)
		results = append(results, Result{
			RuleID:     r.ID,
			Code:       r.Code,
			Label:      label,
			SchoolType: in.SchoolType,
			Room:       room.Name,
			RoomID:     room.EntityID,
			Required:   required,
			Available:  available,
			Status:     status,
			Shortfall:  shortfall,
			Unit:       UnitCount,
		})
	}
	return results
}
