// Package export renders evaluation output as CSV, mirroring the report
// download the original tooling offered. Columns are stable; downstream
// spreadsheets depend on the order.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/edubim/schoolcheck/internal/aggregate"
	"github.com/edubim/schoolcheck/internal/errors"
	"github.com/edubim/schoolcheck/internal/footprint"
	"github.com/edubim/schoolcheck/internal/rules"
)

func csvErr(err error, what string) error {
	return errors.New(err).
		Component("export").
		Category(errors.CategoryExport).
		Context("output", what).
		Build()
}

// WriteResultsCSV writes one row per check result.
func WriteResultsCSV(w io.Writer, results []rules.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"rule_id", "code", "label", "school_type", "room",
		"occupants", "required", "available", "shortfall", "unit", "status",
	}); err != nil {
		return csvErr(err, "results")
	}
	for i := range results {
		r := &results[i]
		if err := cw.Write([]string{
			r.RuleID,
			r.Code,
			r.Label,
			string(r.SchoolType),
			r.Room,
			strconv.Itoa(r.OccupantsUsed),
			formatFloat(r.Required),
			formatFloat(r.Available),
			formatFloat(r.Shortfall),
			r.Unit,
			string(r.Status),
		}); err != nil {
			return csvErr(err, "results")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return csvErr(err, "results")
	}
	return nil
}

// WriteRoomsCSV writes one row per room footprint. Areas are reported in
// square meters via areaScale.
func WriteRoomsCSV(w io.Writer, rooms []*footprint.Footprint, areaScale float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"entity_id", "name", "area_m2", "z_min", "z_max", "assigned", "hull_fallback",
	}); err != nil {
		return csvErr(err, "rooms")
	}
	for _, r := range rooms {
		if err := cw.Write([]string{
			strconv.FormatInt(r.EntityID, 10),
			r.Name,
			formatFloat(r.Area * areaScale),
			formatFloat(r.ZMin),
			formatFloat(r.ZMax),
			strconv.Itoa(len(r.Furnishings)),
			strconv.FormatBool(r.UsedHull),
		}); err != nil {
			return csvErr(err, "rooms")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return csvErr(err, "rooms")
	}
	return nil
}

// WriteFurnitureCSV writes one row per canonical furnishing group, sorted by
// canonical label.
func WriteFurnitureCSV(w io.Writer, fm aggregate.FurnitureMap) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"label", "display", "count"}); err != nil {
		return csvErr(err, "furniture")
	}
	for _, key := range fm.Labels() {
		g := fm[key]
		if err := cw.Write([]string{key, g.Display, strconv.Itoa(g.Count)}); err != nil {
			return csvErr(err, "furniture")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return csvErr(err, "furniture")
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
