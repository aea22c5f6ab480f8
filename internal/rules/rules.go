// Package rules holds the declarative building-code rule tables and the
// table-driven evaluator that turns aggregated model quantities into
// structured check results. Rule configuration is validated before any model
// is processed; evaluation itself never fails on missing model data, it
// reports absence through the result status instead.
package rules

import "github.com/edubim/schoolcheck/internal/aggregate"

// Status is the outcome of one check.
type Status string

const (
	StatusOK          Status = "OK"           // available >= required
	StatusNotOK       Status = "NOT_OK"       // available < required
	StatusNoSource    Status = "NO_SOURCE"    // required > 0 but the source is absent from the model
	StatusNotRequired Status = "NOT_REQUIRED" // rule inapplicable for the active school type
)

// SchoolType selects which coefficient column applies to all rules in a run.
// The valid values are declared by the ruleset, not hardcoded.
type SchoolType string

// Kind is the required-quantity shape of a rule.
type Kind string

const (
	// KindPerCapitaArea: required m2 = occupants x coefficient[schoolType].
	KindPerCapitaArea Kind = "per-capita-area"
	// KindDualCoefficientArea: required m2 = occupants x coef1 x coef2.
	KindDualCoefficientArea Kind = "dual-coefficient-area"
	// KindPerUnitCount: required count = unit-room count x ratio, optionally
	// rounded up.
	KindPerUnitCount Kind = "per-unit-count"
	// KindFixedMinimum: required = a constant, per school type or flat.
	KindFixedMinimum Kind = "fixed-minimum"
	// KindRoomCapacity: per detected room, assigned seats must not exceed
	// the capacity; emits one result per room.
	KindRoomCapacity Kind = "room-capacity"
)

// Source is where a rule's available quantity comes from.
type Source string

const (
	SourceRoomArea  Source = "room-area"  // summed footprint area of rooms with the rule's label
	SourceRoomCount Source = "room-count" // count of rooms with the rule's label
	SourceSeatCount Source = "seat-count" // furnishing instances whose display text contains a phrase
)

// Rule is one declarative check. Which fields apply depends on Kind; Validate
// enforces the combinations.
type Rule struct {
	ID   string `yaml:"id"`
	Code string `yaml:"code"` // regulation code, e.g. "2-2-1"
	Kind Kind   `yaml:"kind"`

	// RoomLabel is the standardized room label the rule is about. For
	// area/count sources it selects the rooms; for capacity rules it selects
	// which detected rooms are checked. FallbackRoomLabel, when set, is used
	// if no room matches RoomLabel (laboratory checks fall back to "room").
	RoomLabel         string `yaml:"roomLabel,omitempty"`
	FallbackRoomLabel string `yaml:"fallbackRoomLabel,omitempty"`

	Source     Source `yaml:"source"`
	SeatPhrase string `yaml:"seatPhrase,omitempty"` // phrase for seat-count sources

	// Per-capita coefficients by school type (KindPerCapitaArea and, with
	// SecondCoefficients, KindDualCoefficientArea). A zero coefficient for
	// the active school type means the rule is intentionally inapplicable.
	Coefficients       map[SchoolType]float64 `yaml:"coefficients,omitempty"`
	SecondCoefficients map[SchoolType]float64 `yaml:"secondCoefficients,omitempty"`

	// FixedOccupants overrides the detected occupant count (library sizing
	// uses a fixed 24 regardless of detected students). Zero means "use
	// detected".
	FixedOccupants int `yaml:"fixedOccupants,omitempty"`

	// Per-unit count shape: required = ceil-or-not(unit count x Ratio).
	UnitLabel string  `yaml:"unitLabel,omitempty"`
	Ratio     float64 `yaml:"ratio,omitempty"`
	Ceiling   bool    `yaml:"ceiling,omitempty"`

	// Fixed minimum shape: per-school-type map wins over the flat value.
	Minimums map[SchoolType]float64 `yaml:"minimums,omitempty"`
	Minimum  float64                `yaml:"minimum,omitempty"`

	// Capacity shape.
	MaxCapacity int `yaml:"maxCapacity,omitempty"`
}

// Ruleset is the full rule configuration for a run.
type Ruleset struct {
	SchoolTypes    []SchoolType `yaml:"schoolTypes"`
	OccupantPhrase string       `yaml:"occupantPhrase"` // phrase counting occupants, e.g. "student chair"
	Rules          []Rule       `yaml:"rules"`
}

// Input carries the aggregated model quantities one evaluation reads. All
// maps are keyed by canonical label.
type Input struct {
	SchoolType  SchoolType
	Occupants   int
	AreaByLabel map[string]float64 // m2
	RoomCount   map[string]int
	// SeatCount returns furnishing instances whose display text contains the
	// phrase, case-insensitively.
	SeatCount func(phrase string) int
	// RoomOccupancy returns per-room assigned seat counts for rooms with the
	// given canonical label, counting only furnishings matching seatPhrase,
	// in stable room order.
	RoomOccupancy func(roomLabel, seatPhrase string) []aggregate.Occupancy
}

// Result is one structured check outcome. Output-only, immutable.
type Result struct {
	RuleID     string     `json:"ruleId"`
	Code       string     `json:"code,omitempty"`
	Label      string     `json:"label"`
	SchoolType SchoolType `json:"schoolType"`

	// Room identifies the individual room for per-room capacity results.
	Room   string `json:"room,omitempty"`
	RoomID int64  `json:"roomId,omitempty"`

	OccupantsUsed int     `json:"occupantsUsed,omitempty"`
	Required      float64 `json:"required"`
	Available     float64 `json:"available"`
	Status        Status  `json:"status"`
	Shortfall     float64 `json:"shortfall"`
	Unit          string  `json:"unit"` // "m2" or "count"
}

const (
	UnitSquareMeters = "m2"
	UnitCount        = "count"
)
