package rules

// Default school types. Each selects one coefficient column across every
// rule of the default set.
const (
	SchoolEbtedaei1   SchoolType = "ebtedaei dore 1"
	SchoolEbtedaei2   SchoolType = "ebtedaei dore 2"
	SchoolMotevasete1 SchoolType = "motevasete dore 1"
	SchoolMotevasete2 SchoolType = "motevasete dore 2"
)

// DefaultRuleset returns the built-in rule tables. Callers may replace or
// overlay them through configuration; the tables here mirror the regulation
// codes the project ships with.
func DefaultRuleset() Ruleset {
	return Ruleset{
		SchoolTypes: []SchoolType{
			SchoolEbtedaei1,
			SchoolEbtedaei2,
			SchoolMotevasete1,
			SchoolMotevasete2,
		},
		OccupantPhrase: "student chair",
		Rules: []Rule{
			// Per-capita area checks (code 2-2-1). A zero coefficient marks
			// the rule inapplicable for that school type (workshops are not
			// required in upper secondary).
			{
				ID: "area-classroom", Code: "2-2-1", Kind: KindPerCapitaArea,
				RoomLabel: "classroom", Source: SourceRoomArea,
				Coefficients: map[SchoolType]float64{
					SchoolEbtedaei1: 1.7, SchoolEbtedaei2: 1.85,
					SchoolMotevasete1: 1.8, SchoolMotevasete2: 2.0,
				},
			},
			{
				ID: "area-workshop", Code: "2-2-1", Kind: KindPerCapitaArea,
				RoomLabel: "workshop", Source: SourceRoomArea,
				Coefficients: map[SchoolType]float64{
					SchoolEbtedaei1: 2.5, SchoolEbtedaei2: 2.7,
					SchoolMotevasete1: 3.0, SchoolMotevasete2: 0.0,
				},
			},
			{
				ID: "area-laboratory", Code: "2-2-1", Kind: KindPerCapitaArea,
				RoomLabel: "laboratory", Source: SourceRoomArea,
				Coefficients: map[SchoolType]float64{
					SchoolEbtedaei1: 2.02, SchoolEbtedaei2: 2.02,
					SchoolMotevasete1: 3.2, SchoolMotevasete2: 3.2,
				},
			},
			{
				ID: "area-computer-site", Code: "2-2-1", Kind: KindPerCapitaArea,
				RoomLabel: "computer site", Source: SourceRoomArea,
				Coefficients: map[SchoolType]float64{
					SchoolEbtedaei1: 2.02, SchoolEbtedaei2: 2.02,
					SchoolMotevasete1: 2.55, SchoolMotevasete2: 2.55,
				},
			},
			{
				ID: "area-library", Code: "2-2-1", Kind: KindPerCapitaArea,
				RoomLabel: "library", Source: SourceRoomArea,
				// Library sizing always assumes 24 students.
				FixedOccupants: 24,
				Coefficients: map[SchoolType]float64{
					SchoolEbtedaei1: 1.6, SchoolEbtedaei2: 1.8,
					SchoolMotevasete1: 2.0, SchoolMotevasete2: 2.0,
				},
			},

			// Praying room area (code 2-1-3-2) uses two stacked coefficients.
			{
				ID: "area-praying-room", Code: "2-1-3-2", Kind: KindDualCoefficientArea,
				RoomLabel: "praying room", Source: SourceRoomArea,
				Coefficients: map[SchoolType]float64{
					SchoolEbtedaei1: 0.5, SchoolEbtedaei2: 0.667,
					SchoolMotevasete1: 0.667, SchoolMotevasete2: 0.667,
				},
				SecondCoefficients: map[SchoolType]float64{
					SchoolEbtedaei1: 0.8, SchoolEbtedaei2: 0.8,
					SchoolMotevasete1: 0.9, SchoolMotevasete2: 0.9,
				},
			},

			// Fixture counts.
			{
				ID: "wc-count", Code: "2-1-4", Kind: KindPerUnitCount,
				RoomLabel: "wc", UnitLabel: "classroom",
				Source: SourceRoomCount, Ratio: 1,
			},
			{
				ID: "staff-wc-count", Code: "2-1-5", Kind: KindPerUnitCount,
				RoomLabel: "staff wc", UnitLabel: "classroom",
				Source: SourceRoomCount, Ratio: 1.0 / 6.0, Ceiling: true,
			},
			{
				ID: "disabled-wc", Code: "2-1-6", Kind: KindFixedMinimum,
				RoomLabel: "wc for disabled", Source: SourceRoomCount,
				Minimum: 1,
			},

			// Meeting room seats (code 2-1-3-3): fixed minimum per school
			// type, counted from furnishings.
			{
				ID: "meeting-room-seats", Code: "2-1-3-3", Kind: KindFixedMinimum,
				RoomLabel: "meeting room", Source: SourceSeatCount,
				SeatPhrase: "meeting room chair",
				Minimums: map[SchoolType]float64{
					SchoolEbtedaei1: 72, SchoolEbtedaei2: 72,
					SchoolMotevasete1: 108, SchoolMotevasete2: 108,
				},
			},

			// Room capacity checks (codes 2-1-1 and 2-1-2): per detected
			// room, assigned chairs must not exceed the capacity.
			{
				ID: "classroom-capacity", Code: "2-1-1", Kind: KindRoomCapacity,
				RoomLabel: "classroom", Source: SourceSeatCount,
				SeatPhrase: "student chair", MaxCapacity: 24,
			},
			{
				ID: "laboratory-capacity", Code: "2-1-2", Kind: KindRoomCapacity,
				RoomLabel: "laboratory", FallbackRoomLabel: "room",
				Source: SourceSeatCount, SeatPhrase: "laboratory chair",
				MaxCapacity: 24,
			},
		},
	}
}
