// Package rooms implements the rooms subcommand: dump the detected room
// footprints of a model snapshot.
package rooms

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edubim/schoolcheck/internal/conf"
	"github.com/edubim/schoolcheck/internal/engine"
	"github.com/edubim/schoolcheck/internal/export"
	"github.com/edubim/schoolcheck/internal/logging"
	"github.com/edubim/schoolcheck/internal/model"
)

// Command creates the rooms command for inspecting detected footprints.
func Command(settings *conf.Settings) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rooms [snapshot.json]",
		Short: "List detected room footprints with areas and occupancy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.LoadSnapshot(args[0])
			if err != nil {
				return err
			}

			e := engine.New(settings, engine.WithLogger(logging.ForService("engine")))
			run, err := e.Inspect(cmd.Context(), m)
			if err != nil {
				return err
			}

			switch format {
			case "csv":
				return export.WriteRoomsCSV(cmd.OutOrStdout(), run.Rooms, run.Scale.Area)
			case "table":
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tAREA m2\tZ MIN\tZ MAX\tASSIGNED")
				for _, r := range run.Rooms {
					fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f\t%d\n",
						r.EntityID, r.Name, r.Area*run.Scale.Area, r.ZMin, r.ZMax, len(r.Furnishings))
				}
				return w.Flush()
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, csv")

	return cmd
}
