package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanCmd(env *cliEnv) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove expired .log files",
		Long: `Remove the .log files in the log file's directory that were last modified
more than --retention-days days ago. Subdirectories are not scanned. If the
directory does not exist it is created and nothing is removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := env.setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			log := a.loggers.ForOperation("cli", "clean")
			out := cmd.OutOrStdout()
			if dryRun {
				expired, err := a.fileLogger.ExpiredFiles()
				if err != nil {
					return err
				}
				for _, path := range expired {
					fmt.Fprintf(out, "would remove %s\n", path)
				}
				log.WithField("expired", len(expired)).Info("Dry run completed")
				fmt.Fprintf(out, "%d expired log file(s)\n", len(expired))
				return nil
			}

			result, err := a.fileLogger.RemoveOldFiles()
			if err != nil {
				log.WithError(err).Error("Clean failed")
			}
			if result != nil {
				if result.CreatedDir {
					fmt.Fprintf(out, "created log directory %s\n", result.Dir)
				}
				for _, path := range result.Removed {
					fmt.Fprintf(out, "removed %s\n", path)
				}
				fmt.Fprintf(out, "%d log file(s) removed\n", len(result.Removed))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list expired files without removing them")

	return cmd
}
