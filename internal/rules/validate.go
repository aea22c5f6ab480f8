package rules

import (
	"github.com/edubim/schoolcheck/internal/errors"
)

// ruleErr builds a rule-config validation error.
func ruleErr(ruleID, format string, args ...any) error {
	return errors.Newf(format, args...).
		Component("rules").
		Category(errors.CategoryRuleConfig).
		Context("rule", ruleID).
		Build()
}

// Validate checks the ruleset for structural errors. These are programmer or
// operator mistakes and must fail loudly before any model is processed;
// everything Validate accepts, Evaluate can run without erroring.
func (rs *Ruleset) Validate() error {
	if len(rs.SchoolTypes) == 0 {
		return errors.Newf("ruleset declares no school types").
			Component("rules").
			Category(errors.CategoryRuleConfig).
			Build()
	}
	seenTypes := make(map[SchoolType]bool, len(rs.SchoolTypes))
	for _, st := range rs.SchoolTypes {
		if st == "" {
			return errors.Newf("empty school type name").
				Component("rules").
				Category(errors.CategoryRuleConfig).
				Build()
		}
		if seenTypes[st] {
			return errors.Newf("duplicate school type %q", st).
				Component("rules").
				Category(errors.CategoryRuleConfig).
				Build()
		}
		seenTypes[st] = true
	}

	seenIDs := make(map[string]bool, len(rs.Rules))
	for i := range rs.Rules {
		r := &rs.Rules[i]
		if r.ID == "" {
			return ruleErr("", "rule %d has no id", i)
		}
		if seenIDs[r.ID] {
			return ruleErr(r.ID, "duplicate rule id %q", r.ID)
		}
		seenIDs[r.ID] = true

		if err := rs.validateRule(r); err != nil {
			return err
		}
	}
	return nil
}

// HasSchoolType reports whether the ruleset declares the school type.
func (rs *Ruleset) HasSchoolType(st SchoolType) bool {
	for _, t := range rs.SchoolTypes {
		if t == st {
			return true
		}
	}
	return false
}

func (rs *Ruleset) validateRule(r *Rule) error {
	switch r.Source {
	case SourceRoomArea, SourceRoomCount:
		if r.RoomLabel == "" {
			return ruleErr(r.ID, "rule %q: source %q needs a room label", r.ID, r.Source)
		}
	case SourceSeatCount:
		if r.SeatPhrase == "" {
			return ruleErr(r.ID, "rule %q: seat-count source needs a seat phrase", r.ID)
		}
	default:
		return ruleErr(r.ID, "rule %q: unknown source %q", r.ID, r.Source)
	}

	switch r.Kind {
	case KindPerCapitaArea:
		return rs.validateCoefficients(r, r.Coefficients, "coefficients")
	case KindDualCoefficientArea:
		if err := rs.validateCoefficients(r, r.Coefficients, "coefficients"); err != nil {
			return err
		}
		return rs.validateCoefficients(r, r.SecondCoefficients, "secondCoefficients")
	case KindPerUnitCount:
		if r.UnitLabel == "" {
			return ruleErr(r.ID, "rule %q: per-unit-count needs a unit label", r.ID)
		}
		if r.Ratio <= 0 {
			return ruleErr(r.ID, "rule %q: per-unit ratio must be positive, got %v", r.ID, r.Ratio)
		}
	case KindFixedMinimum:
		if len(r.Minimums) > 0 {
			return rs.validateCoefficients(r, r.Minimums, "minimums")
		}
		if r.Minimum <= 0 {
			return ruleErr(r.ID, "rule %q: fixed minimum must be positive, got %v", r.ID, r.Minimum)
		}
	case KindRoomCapacity:
		if r.RoomLabel == "" {
			return ruleErr(r.ID, "rule %q: room-capacity needs a room label", r.ID)
		}
		if r.MaxCapacity <= 0 {
			return ruleErr(r.ID, "rule %q: capacity must be positive, got %d", r.ID, r.MaxCapacity)
		}
	default:
		return ruleErr(r.ID, "rule %q: unknown kind %q", r.ID, r.Kind)
	}
	return nil
}

// validateCoefficients requires a non-negative value for every declared
// school type. Zero is allowed (it means NOT_REQUIRED), absence is not:
// missing entries are the index-alignment bugs the per-type maps exist to
// prevent.
func (rs *Ruleset) validateCoefficients(r *Rule, m map[SchoolType]float64, field string) error {
	if len(m) == 0 {
		return ruleErr(r.ID, "rule %q: %s missing", r.ID, field)
	}
	for _, st := range rs.SchoolTypes {
		v, ok := m[st]
		if !ok {
			return ruleErr(r.ID, "rule %q: %s missing school type %q", r.ID, field, st)
		}
		if v < 0 {
			return ruleErr(r.ID, "rule %q: %s for %q is negative", r.ID, field, st)
		}
	}
	for st := range m {
		if !rs.HasSchoolType(st) {
			return ruleErr(r.ID, "rule %q: %s references undeclared school type %q", r.ID, field, st)
		}
	}
	return nil
}
