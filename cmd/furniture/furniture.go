// Package furniture implements the furniture subcommand: dump the canonical
// furnishing aggregate of a model snapshot.
package furniture

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edubim/schoolcheck/internal/aggregate"
	"github.com/edubim/schoolcheck/internal/conf"
	"github.com/edubim/schoolcheck/internal/engine"
	"github.com/edubim/schoolcheck/internal/export"
	"github.com/edubim/schoolcheck/internal/model"
)

// Command creates the furniture command for inspecting furnishing groups.
func Command(settings *conf.Settings) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "furniture [snapshot.json]",
		Short: "List canonical furnishing groups and counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.LoadSnapshot(args[0])
			if err != nil {
				return err
			}

			fm := aggregate.BuildFurnitureMap(engine.ExtractFurnishings(m))

			switch format {
			case "csv":
				return export.WriteFurnitureCSV(cmd.OutOrStdout(), fm)
			case "table":
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
				fmt.Fprintln(w, "LABEL\tCOUNT")
				for _, key := range fm.Labels() {
					fmt.Fprintf(w, "%s\t%d\n", fm[key].Display, fm[key].Count)
				}
				fmt.Fprintf(w, "\noccupants (%s)\t%d\n", settings.Ruleset.OccupantPhrase,
					fm.ContainsCount(settings.Ruleset.OccupantPhrase))
				return w.Flush()
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, csv")

	return cmd
}
