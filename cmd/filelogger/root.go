package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/johnnynv/filelogger/internal/config"
	"github.com/johnnynv/filelogger/pkg/filelog"
	"github.com/johnnynv/filelogger/pkg/logger"
	"github.com/johnnynv/filelogger/pkg/types"
	"github.com/johnnynv/filelogger/pkg/utils"
)

const defaultConfigFile = "filelogger.yaml"

// flagKeys maps persistent flags to viper keys. The env name of a key is
// FL_ followed by the key upper-cased with dots replaced, e.g. FL_LOG_PATH.
var flagKeys = map[string]string{
	"log-path":          "log.path",
	"retention-days":    "log.retention_days",
	"console":           "log.console",
	"color":             "log.color",
	"default-component": "log.component",
	"lock":              "log.lock",
	"log-level":         "diagnostics.level",
	"log-format":        "diagnostics.format",
}

// NewRootCmd builds the command tree with its own viper instance so that
// several trees can coexist in tests.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "filelogger",
		Short: "filelogger - append-only file logger",
		Long: `filelogger appends formatted lines to a log file, optionally echoes them
to the console in colour, and removes .log files older than a retention period.

Every setting can come from a YAML file (--config), a flag, or an FL_*
environment variable, in increasing order of precedence for flags.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is $FL_CONFIG or ./"+defaultConfigFile+" when present)")
	flags.String("log-path", "", "log file path")
	flags.Uint("retention-days", config.DefaultRetentionDays, "days a .log file is kept by clean")
	flags.Bool("console", false, "echo messages to the console")
	flags.String("color", "auto", "console colour (auto, always, never)")
	flags.String("default-component", "", "component label used when none is given (default is the program name)")
	flags.Bool("lock", false, "hold a cross-process lock while appending")
	flags.String("log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	flags.String("log-format", "text", "diagnostic log format (json, text)")

	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding --%s to %s: %v", flag, key, err))
		}
	}
	v.SetEnvPrefix("FL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	env := &cliEnv{viper: v, configFile: &configFile}

	cmd.AddCommand(
		newWriteCmd(env),
		newCleanCmd(env),
		newJanitorCmd(env),
		newDemoCmd(env),
		newConfigCmd(env),
		newVersionCmd(),
	)

	return cmd
}

// cliEnv carries the state shared by subcommands
type cliEnv struct {
	viper      *viper.Viper
	configFile *string
}

// app is everything a subcommand needs once configuration is resolved
type app struct {
	config      *types.Config
	configMgr   *config.Manager
	loggers     *logger.Manager
	diagnostics *logger.Entry
	fileLogger  *filelog.FileLogger
}

func (a *app) Close() {
	if a.loggers != nil {
		a.loggers.Close()
	}
}

// overrides applies flags and FL_* environment variables on top of the file
func (e *cliEnv) overrides() config.Override {
	v := e.viper
	return func(c *types.Config) {
		if v.IsSet("log.path") {
			c.Log.Path = v.GetString("log.path")
		}
		if v.IsSet("log.retention_days") {
			days := v.GetUint("log.retention_days")
			c.Log.RetentionDays = &days
		}
		if v.IsSet("log.console") {
			c.Log.Console = v.GetBool("log.console")
		}
		if v.IsSet("log.color") {
			c.Log.Color = v.GetString("log.color")
		}
		if v.IsSet("log.component") {
			c.Log.Component = v.GetString("log.component")
		}
		if v.IsSet("log.lock") {
			c.Log.Lock = v.GetBool("log.lock")
		}
		if v.IsSet("diagnostics.level") {
			c.Diagnostics.Level = v.GetString("diagnostics.level")
		}
		if v.IsSet("diagnostics.format") {
			c.Diagnostics.Format = v.GetString("diagnostics.format")
		}
	}
}

// configPath returns the config file to read and whether it was named
// explicitly by --config or FL_CONFIG
func (e *cliEnv) configPath() (string, bool) {
	if *e.configFile != "" {
		return *e.configFile, true
	}
	path := utils.GetEnvWithDefault("FL_CONFIG", defaultConfigFile)
	return path, path != defaultConfigFile
}

// loadConfig resolves configuration before the diagnostic logger exists.
// An explicitly named file must exist; the default one is optional.
func (e *cliEnv) loadConfig() (*config.Manager, error) {
	manager := config.NewManager(logger.GetDefaultLogger())

	path, explicit := e.configPath()
	if explicit {
		if err := manager.Load(path, e.overrides()); err != nil {
			return nil, err
		}
		return manager, nil
	}
	if err := manager.LoadWithDefaults(path, e.overrides()); err != nil {
		return nil, err
	}
	return manager, nil
}

// setup loads configuration and builds the diagnostic and file loggers.
// Console echo goes to the command's output.
func (e *cliEnv) setup(cmd *cobra.Command) (*app, error) {
	configMgr, err := e.loadConfig()
	if err != nil {
		return nil, err
	}

	loggers, err := logger.NewManager(configMgr.GetLoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger manager: %w", err)
	}

	a := &app{
		config:      configMgr.Get(),
		configMgr:   configMgr,
		loggers:     loggers,
		diagnostics: loggers.ForComponent("cli"),
	}

	fl, err := configMgr.NewFileLogger(
		loggers.ForComponent("filelog"),
		filelog.WithConsoleWriter(cmd.OutOrStdout()),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	a.fileLogger = fl

	return a, nil
}
