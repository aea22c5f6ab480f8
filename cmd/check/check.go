// Package check implements the check subcommand: run the full rule battery
// over a model snapshot and report the results.
package check

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/edubim/schoolcheck/internal/conf"
	"github.com/edubim/schoolcheck/internal/engine"
	"github.com/edubim/schoolcheck/internal/export"
	"github.com/edubim/schoolcheck/internal/logging"
	"github.com/edubim/schoolcheck/internal/model"
	"github.com/edubim/schoolcheck/internal/observability"
	"github.com/edubim/schoolcheck/internal/rules"
)

// Command creates the check command for evaluating a model snapshot.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		format  string
		output  string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "check [snapshot.json]",
		Short: "Evaluate a building model against the rule tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.LoadSnapshot(args[0])
			if err != nil {
				return err
			}

			opts := []engine.Option{engine.WithLogger(logging.ForService("engine"))}
			var obs *observability.Metrics
			if metrics {
				obs, err = observability.NewMetrics()
				if err != nil {
					return err
				}
				opts = append(opts, engine.WithMetrics(obs))
			}

			run, err := engine.New(settings, opts...).Evaluate(cmd.Context(), m)
			if err != nil {
				return err
			}

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				if err := export.WriteResultsCSV(f, run.Results); err != nil {
					return err
				}
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(run.Results); err != nil {
					return err
				}
			case "csv":
				if err := export.WriteResultsCSV(cmd.OutOrStdout(), run.Results); err != nil {
					return err
				}
			case "table":
				printTable(cmd, run)
			default:
				return fmt.Errorf("unknown output format %q", format)
			}

			if obs != nil {
				return printMetrics(cmd, obs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, csv, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Also write results CSV to this path")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Print run metrics after the results")

	return cmd
}

func printTable(cmd *cobra.Command, run *engine.Run) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "school type: %s   occupants: %d   rooms: %d   furnishings: %d\n\n",
		run.SchoolType, run.Occupants, len(run.Rooms), len(run.Furnishings))

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tLABEL\tROOM\tREQUIRED\tAVAILABLE\tSHORTFALL\tSTATUS")
	for i := range run.Results {
		r := &run.Results[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%s\n",
			r.Code, r.Label, r.Room, r.Required, r.Available, r.Shortfall, r.Status)
	}
	_ = w.Flush()

	notOK := 0
	for i := range run.Results {
		if run.Results[i].Status == rules.StatusNotOK {
			notOK++
		}
	}
	fmt.Fprintf(out, "\n%d checks, %d failing\n", len(run.Results), notOK)
}

// printMetrics writes the run's metrics in Prometheus text format.
func printMetrics(cmd *cobra.Command, obs *observability.Metrics) error {
	families, err := obs.Gather()
	if err != nil {
		return err
	}
	out := cmd.ErrOrStderr()
	enc := expfmt.NewEncoder(out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, f := range families {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
