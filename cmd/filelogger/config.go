package main

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/johnnynv/filelogger/internal/config"
	"github.com/johnnynv/filelogger/pkg/logger"
)

func newConfigCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration",
	}

	cmd.AddCommand(newConfigShowCmd(env), newConfigValidateCmd(env))

	return cmd
}

func newConfigShowCmd(env *cliEnv) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults, flags and FL_* environment variables are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := env.loadConfig()
			if err != nil {
				return err
			}
			cfg := manager.Get()
			out := cmd.OutOrStdout()

			switch output {
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal configuration: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal configuration: %w", err)
				}
				fmt.Fprint(out, string(data))
			default:
				fmt.Fprintf(out, "Log path:        %s\n", cfg.Log.Path)
				fmt.Fprintf(out, "Retention days:  %d\n", cfg.Log.Retention(config.DefaultRetentionDays))
				fmt.Fprintf(out, "Console echo:    %t (color %s)\n", cfg.Log.Console, cfg.Log.Color)
				fmt.Fprintf(out, "Component:       %s\n", displayOr(cfg.Log.Component, "<program name>"))
				fmt.Fprintf(out, "Append lock:     %t\n", cfg.Log.Lock)
				fmt.Fprintf(out, "Janitor every:   %s\n", cfg.Janitor.Interval)
				fmt.Fprintf(out, "Diagnostics:     %s/%s -> %s\n", cfg.Diagnostics.Level, cfg.Diagnostics.Format, cfg.Diagnostics.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}

func newConfigValidateCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := env.configPath()
			if len(args) > 0 {
				configFile = args[0]
			}

			manager := config.NewManager(logger.Discard())
			out := cmd.OutOrStdout()

			if err := manager.Validate(configFile); err != nil {
				var verrs config.ValidationErrors
				if errors.As(err, &verrs) {
					for _, verr := range verrs {
						fmt.Fprintf(out, "  - %s: %s\n", verr.Field, verr.Message)
					}
					return fmt.Errorf("configuration %s has %d error(s)", configFile, len(verrs))
				}
				return err
			}

			fmt.Fprintf(out, "Configuration %s is valid\n", configFile)
			return nil
		},
	}
}

func displayOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
