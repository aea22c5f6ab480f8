package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/edubim/schoolcheck/cmd/check"
	"github.com/edubim/schoolcheck/cmd/furniture"
	"github.com/edubim/schoolcheck/cmd/rooms"
	"github.com/edubim/schoolcheck/internal/conf"
	"github.com/edubim/schoolcheck/internal/logging"
)

// RootCommand creates and returns the root command. Settings are loaded in
// the persistent pre-run so that every subcommand sees the same validated
// configuration with command-line overrides applied.
func RootCommand(settings *conf.Settings) *cobra.Command {
	var (
		configPath string
		schoolType string
		occupants  int
		zTolerance float64
		workers    int
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:   "schoolcheck",
		Short: "School building code compliance checks",
		Long: `schoolcheck evaluates a school building model against the national
school design regulations: per-student room areas, fixture counts,
meeting room seats and per-room capacities.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to config file (default: built-in)")
	pf.StringVar(&schoolType, "school-type", "", "School type to evaluate against")
	pf.IntVar(&occupants, "occupants", -1, "Occupant count override (0 = count from model)")
	pf.Float64Var(&zTolerance, "z-tolerance", -1, "Max distance between furnishing Z and room elevation, in model length units (0 = exact match)")
	pf.IntVar(&workers, "workers", -1, "Footprint worker count (0 = one per CPU)")
	pf.BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		check.Command(settings),
		rooms.Command(settings),
		furniture.Command(settings),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := conf.Load(configPath)
		if err != nil {
			return err
		}

		// Command-line flags take precedence over the config file.
		if cmd.Flags().Changed("school-type") {
			loaded.Check.SchoolType = schoolType
		}
		if cmd.Flags().Changed("occupants") {
			loaded.Check.Occupants = occupants
		}
		if cmd.Flags().Changed("z-tolerance") {
			loaded.Check.ZTolerance = zTolerance
		}
		if cmd.Flags().Changed("workers") {
			loaded.Check.Workers = workers
		}
		if debug {
			loaded.Debug = true
			logging.SetLevel(slog.LevelDebug)
		}

		if err := loaded.Validate(); err != nil {
			return err
		}
		*settings = *loaded
		return nil
	}

	return rootCmd
}
