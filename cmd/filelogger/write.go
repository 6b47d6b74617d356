package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnnynv/filelogger/pkg/filelog"
)

func newWriteCmd(env *cliEnv) *cobra.Command {
	var (
		component string
		severity  string
	)

	cmd := &cobra.Command{
		Use:   "write MESSAGE...",
		Short: "Append a message to the log file",
		Long: `Append one formatted line to the log file. The arguments are joined with
spaces to form the message.

Examples:
  filelogger write --log-path /var/log/app/app.log "service started"
  filelogger write -s warning -c db "slow query"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sev, err := filelog.ParseSeverity(severity)
			if err != nil {
				return err
			}

			a, err := env.setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.fileLogger.Write(strings.Join(args, " "), component, sev); err != nil {
				a.diagnostics.WithError(err).WithField("path", a.fileLogger.LogPath()).Error("Write failed")
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&component, "component", "c", "", "component label (default is the configured default component)")
	cmd.Flags().StringVarP(&severity, "severity", "s", "information", "severity (information, success, warning, error)")

	return cmd
}
