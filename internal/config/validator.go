package config

import (
	"fmt"
	"strings"

	"github.com/johnnynv/filelogger/pkg/types"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Validator validates configuration
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration
func (v *Validator) Validate(config *types.Config) error {
	v.errors = v.errors[:0]

	v.validateApp(&config.App)
	v.validateLog(&config.Log)
	v.validateJanitor(&config.Janitor)
	v.validateDiagnostics(&config.Diagnostics)

	if len(v.errors) > 0 {
		return v.errors
	}

	return nil
}

func (v *Validator) validateApp(app *types.AppConfig) {
	if app.Name == "" {
		v.addError("app.name", app.Name, "application name is required")
	}
}

func (v *Validator) validateLog(log *types.LogConfig) {
	if strings.TrimSpace(log.Path) == "" {
		v.addError("log.path", log.Path, "log file path is required")
	}

	if log.Color != "" && !v.contains([]string{"auto", "always", "never"}, log.Color) {
		v.addError("log.color", log.Color, "must be one of auto, always, never")
	}
}

func (v *Validator) validateJanitor(janitor *types.JanitorConfig) {
	if janitor.Interval < 0 {
		v.addError("janitor.interval", janitor.Interval.String(), "interval must not be negative")
	}
}

func (v *Validator) validateDiagnostics(diag *types.DiagnosticsConfig) {
	if diag.Level != "" && !v.contains([]string{"debug", "info", "warn", "error"}, diag.Level) {
		v.addError("diagnostics.level", diag.Level, "invalid log level")
	}

	if diag.Format != "" && !v.contains([]string{"json", "text"}, diag.Format) {
		v.addError("diagnostics.format", diag.Format, "invalid log format")
	}

	if diag.File.MaxSize < 0 {
		v.addError("diagnostics.file.max_size", fmt.Sprint(diag.File.MaxSize), "must not be negative")
	}
	if diag.File.MaxBackups < 0 {
		v.addError("diagnostics.file.max_backups", fmt.Sprint(diag.File.MaxBackups), "must not be negative")
	}
	if diag.File.MaxAge < 0 {
		v.addError("diagnostics.file.max_age", fmt.Sprint(diag.File.MaxAge), "must not be negative")
	}
}

func (v *Validator) addError(field, value, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

func (v *Validator) contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
