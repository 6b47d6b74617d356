package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/johnnynv/filelogger/pkg/types"
	"github.com/johnnynv/filelogger/pkg/utils"
)

// DefaultRetentionDays is applied when log.retention_days is absent
const DefaultRetentionDays uint = 60

// Loader handles configuration loading and processing
type Loader struct {
	envExpander *utils.EnvExpander
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromFile loads configuration from a YAML file
func (l *Loader) LoadFromFile(filePath string) (*types.Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found: %s: %w", filePath, err)
		}
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer file.Close()

	return l.LoadFromReader(file)
}

// LoadFromReader loads configuration from an io.Reader
func (l *Loader) LoadFromReader(reader io.Reader) (*types.Config, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	return l.LoadFromBytes(content)
}

// LoadFromBytes loads configuration from byte slice
func (l *Loader) LoadFromBytes(content []byte) (*types.Config, error) {
	// Parse YAML into raw map first so ${VAR} references can be expanded
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(content, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if rawConfig == nil {
		rawConfig = map[string]interface{}{}
	}

	securityConfig, err := l.extractSecurityConfig(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to extract security configuration: %w", err)
	}

	l.envExpander = utils.NewEnvExpander(securityConfig.AllowedEnvVars)

	expandedConfig, err := l.envExpander.ExpandMap(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	// Marshal back to YAML and unmarshal into typed structure
	expandedBytes, err := yaml.Marshal(expandedConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expanded configuration: %w", err)
	}

	var config types.Config
	if err := yaml.Unmarshal(expandedBytes, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	l.applyDefaults(&config)

	return &config, nil
}

// extractSecurityConfig reads the env var allow-list before expansion
func (l *Loader) extractSecurityConfig(rawConfig map[string]interface{}) (*types.SecurityConfig, error) {
	securityConfig := &types.SecurityConfig{
		AllowedEnvVars: utils.DefaultAllowedEnvVars,
	}

	if securityRaw, exists := rawConfig["security"]; exists {
		securityBytes, err := yaml.Marshal(securityRaw)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(securityBytes, securityConfig); err != nil {
			return nil, err
		}
	}

	return securityConfig, nil
}

// applyDefaults applies default values to configuration
func (l *Loader) applyDefaults(config *types.Config) {
	if config.App.Name == "" {
		config.App.Name = "filelogger"
	}

	if config.Log.RetentionDays == nil {
		days := DefaultRetentionDays
		config.Log.RetentionDays = &days
	}
	if config.Log.Color == "" {
		config.Log.Color = "auto"
	}

	if config.Janitor.Interval == 0 {
		config.Janitor.Interval = 24 * time.Hour
	}

	if config.Diagnostics.Level == "" {
		config.Diagnostics.Level = "warn"
	}
	if config.Diagnostics.Format == "" {
		config.Diagnostics.Format = "text"
	}
	if config.Diagnostics.Output == "" {
		config.Diagnostics.Output = "stderr"
	}
	if config.Diagnostics.File.MaxSize == 0 {
		config.Diagnostics.File.MaxSize = 10
	}
	if config.Diagnostics.File.MaxBackups == 0 {
		config.Diagnostics.File.MaxBackups = 3
	}
	if config.Diagnostics.File.MaxAge == 0 {
		config.Diagnostics.File.MaxAge = 30
	}

	if len(config.Security.AllowedEnvVars) == 0 {
		config.Security.AllowedEnvVars = utils.DefaultAllowedEnvVars
	}
}

// LoadWithDefaults loads configuration with fallback to defaults when the
// file does not exist. Any other read or parse failure is returned.
func (l *Loader) LoadWithDefaults(filePath string) (*types.Config, error) {
	if filePath != "" {
		config, err := l.LoadFromFile(filePath)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	defaultConfig := &types.Config{}
	l.applyDefaults(defaultConfig)

	return defaultConfig, nil
}
