package config

import (
	"fmt"
	"sync"

	"github.com/johnnynv/filelogger/pkg/filelog"
	"github.com/johnnynv/filelogger/pkg/logger"
	"github.com/johnnynv/filelogger/pkg/types"
)

// Override mutates a loaded configuration before it is validated, e.g. to
// apply command line flags
type Override func(*types.Config)

// Manager manages application configuration
type Manager struct {
	config    *types.Config
	loader    *Loader
	validator *Validator
	logger    *logger.Logger
	mu        sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(logger *logger.Logger) *Manager {
	return &Manager{
		loader:    NewLoader(),
		validator: NewValidator(),
		logger:    logger,
	}
}

// Load loads configuration from file, applies overrides and validates it.
// The file must exist.
func (m *Manager) Load(configPath string, overrides ...Override) error {
	m.logger.WithComponent("config").
		WithField("path", configPath).
		Debug("Loading configuration")

	config, err := m.loader.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	return m.set(config, overrides)
}

// LoadWithDefaults is like Load but falls back to defaults when the file
// is missing
func (m *Manager) LoadWithDefaults(configPath string, overrides ...Override) error {
	m.logger.WithComponent("config").
		WithField("path", configPath).
		Debug("Loading configuration with defaults")

	config, err := m.loader.LoadWithDefaults(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration with defaults: %w", err)
	}

	return m.set(config, overrides)
}

func (m *Manager) set(config *types.Config, overrides []Override) error {
	for _, override := range overrides {
		override(config)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validator.Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config

	m.logger.WithComponent("config").
		WithField("log_path", config.Log.Path).
		Debug("Configuration loaded")

	return nil
}

// Get returns a copy of the current configuration (thread-safe)
func (m *Manager) Get() *types.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return nil
	}

	configCopy := *m.config
	return &configCopy
}

// Validate validates a configuration file without loading it
func (m *Manager) Validate(configPath string) error {
	config, err := m.loader.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration for validation: %w", err)
	}

	return NewValidator().Validate(config)
}

// GetLoggerConfig returns the diagnostic logger configuration
func (m *Manager) GetLoggerConfig() logger.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return logger.DefaultConfig()
	}

	diag := m.config.Diagnostics
	return logger.Config{
		Level:  diag.Level,
		Format: diag.Format,
		Output: diag.Output,
		File: logger.FileConfig{
			MaxSize:    diag.File.MaxSize,
			MaxBackups: diag.File.MaxBackups,
			MaxAge:     diag.File.MaxAge,
			Compress:   diag.File.Compress,
		},
	}
}

// NewFileLogger builds the file logger described by the loaded configuration.
// extra options are applied last.
func (m *Manager) NewFileLogger(log *logger.Entry, extra ...filelog.Option) (*filelog.FileLogger, error) {
	cfg := m.Get()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	opts := []filelog.Option{
		filelog.WithRetentionDays(cfg.Log.Retention(DefaultRetentionDays)),
		filelog.WithConsole(cfg.Log.Console),
		filelog.WithFileLock(cfg.Log.Lock),
		filelog.WithLogger(log),
	}
	if cfg.Log.Component != "" {
		opts = append(opts, filelog.WithDefaultComponent(cfg.Log.Component))
	}
	switch cfg.Log.Color {
	case "always":
		opts = append(opts, filelog.WithConsoleColor(true))
	case "never":
		opts = append(opts, filelog.WithConsoleColor(false))
	}

	return filelog.New(cfg.Log.Path, append(opts, extra...)...)
}
