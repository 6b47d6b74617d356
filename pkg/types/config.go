package types

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	App         AppConfig         `yaml:"app" json:"app"`
	Log         LogConfig         `yaml:"log" json:"log"`
	Janitor     JanitorConfig     `yaml:"janitor" json:"janitor"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics" json:"diagnostics"`
	Security    SecurityConfig    `yaml:"security" json:"security"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name string `yaml:"name" json:"name"`
}

// LogConfig configures the file logger
type LogConfig struct {
	Path          string `yaml:"path" json:"path"`
	RetentionDays *uint  `yaml:"retention_days" json:"retention_days"` // nil means the default
	Console       bool   `yaml:"console" json:"console"`
	Color         string `yaml:"color" json:"color"`                   // auto, always, never
	Component     string `yaml:"component" json:"component,omitempty"` // default component label
	Lock          bool   `yaml:"lock" json:"lock"`                     // cross-process append lock
}

// Retention returns the configured retention period, or def when unset
func (c LogConfig) Retention(def uint) uint {
	if c.RetentionDays == nil {
		return def
	}
	return *c.RetentionDays
}

// JanitorConfig configures periodic removal of expired log files
type JanitorConfig struct {
	Interval time.Duration `yaml:"interval" json:"interval"`
}

// DiagnosticsConfig configures the tool's own diagnostic logger
type DiagnosticsConfig struct {
	Level  string        `yaml:"level" json:"level"`
	Format string        `yaml:"format" json:"format"`
	Output string        `yaml:"output" json:"output"`
	File   LogFileConfig `yaml:"file" json:"file,omitempty"`
}

// LogFileConfig represents diagnostic log file settings
type LogFileConfig struct {
	MaxSize    int  `yaml:"max_size" json:"max_size"`       // MB
	MaxBackups int  `yaml:"max_backups" json:"max_backups"` // number of backup files
	MaxAge     int  `yaml:"max_age" json:"max_age"`         // days
	Compress   bool `yaml:"compress" json:"compress"`       // compress old files
}

// SecurityConfig restricts which environment variables may be expanded
type SecurityConfig struct {
	AllowedEnvVars []string `yaml:"allowed_env_vars" json:"allowed_env_vars"`
}
