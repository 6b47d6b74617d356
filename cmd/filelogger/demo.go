package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnnynv/filelogger/pkg/filelog"
)

func newDemoCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Write a sample session covering every severity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := env.setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			fl := a.fileLogger
			name := fl.DefaultComponent()
			banner := strings.Repeat("=", 60)

			steps := []struct {
				message  string
				severity filelog.Severity
			}{
				{banner, filelog.Information},
				{fmt.Sprintf("Starting application %q", name), filelog.Information},
				{"Version : " + Version, filelog.Information},
				{"LOG SUCCESS", filelog.Success},
				{"LOG WARNING", filelog.Warning},
				{"LOG ERROR", filelog.Error},
				{fmt.Sprintf("Closing application %q", name), filelog.Information},
				{banner, filelog.Information},
			}
			for _, step := range steps {
				if err := fl.WriteLogSeverity(step.message, step.severity); err != nil {
					return err
				}
			}
			a.diagnostics.WithField("lines", len(steps)).Debug("Demo session written")
			return nil
		},
	}
}
