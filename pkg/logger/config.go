package logger

// Config represents diagnostic logger configuration
type Config struct {
	Level  string     `yaml:"level" json:"level"`         // debug, info, warn, error
	Format string     `yaml:"format" json:"format"`       // json, text
	Output string     `yaml:"output" json:"output"`       // stdout, stderr, discard, file path
	File   FileConfig `yaml:"file" json:"file,omitempty"` // settings for a file output
}

// FileConfig represents diagnostic log file settings
type FileConfig struct {
	MaxSize    int  `yaml:"max_size" json:"max_size"`       // MB
	MaxBackups int  `yaml:"max_backups" json:"max_backups"` // number of backup files
	MaxAge     int  `yaml:"max_age" json:"max_age"`         // days
	Compress   bool `yaml:"compress" json:"compress"`       // compress old files
}

// DefaultConfig returns default logger configuration. Diagnostics go to
// stderr so they never mix with console echo on stdout.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "text",
		Output: "stderr",
		File: FileConfig{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   false,
		},
	}
}
