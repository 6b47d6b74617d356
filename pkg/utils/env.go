package utils

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultAllowedEnvVars are the variables a configuration file may reference
// when it does not declare its own allow-list
var DefaultAllowedEnvVars = []string{
	"HOME",
	"USER",
	"TMPDIR",
	"XDG_*",
	"FL_*",
}

// EnvExpander expands ${VAR} references in configuration values
type EnvExpander struct {
	allowedVars []string
	pattern     *regexp.Regexp
}

// NewEnvExpander creates an expander limited to allowedVars. Entries may use a
// leading or trailing "*" wildcard.
func NewEnvExpander(allowedVars []string) *EnvExpander {
	return &EnvExpander{
		allowedVars: allowedVars,
		pattern:     regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`),
	}
}

// ExpandString expands environment variables in a string. References to
// variables that are not allowed or not set are left untouched.
func (e *EnvExpander) ExpandString(s string) string {
	return e.pattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := e.pattern.FindStringSubmatch(match)[1]
		if !e.IsAllowed(varName) {
			return match
		}
		if value, ok := os.LookupEnv(varName); ok && value != "" {
			return value
		}
		return match
	})
}

// ExpandMap expands environment variables in all string values of a map
func (e *EnvExpander) ExpandMap(m map[string]interface{}) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(m))
	for key, value := range m {
		expanded, err := e.expandValue(value)
		if err != nil {
			return nil, fmt.Errorf("failed to expand value for key %s: %w", key, err)
		}
		result[key] = expanded
	}
	return result, nil
}

func (e *EnvExpander) expandValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return e.ExpandString(v), nil
	case map[string]interface{}:
		return e.ExpandMap(v)
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			expanded, err := e.expandValue(item)
			if err != nil {
				return nil, err
			}
			result[i] = expanded
		}
		return result, nil
	default:
		return value, nil
	}
}

// IsAllowed reports whether varName may be expanded
func (e *EnvExpander) IsAllowed(varName string) bool {
	for _, allowed := range e.allowedVars {
		if matchPattern(allowed, varName) {
			return true
		}
	}
	return false
}

// matchPattern supports exact names and "PREFIX_*" / "*_SUFFIX" wildcards
func matchPattern(pattern, varName string) bool {
	switch {
	case pattern == varName:
		return true
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(varName, strings.TrimSuffix(pattern, "*"))
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(varName, strings.TrimPrefix(pattern, "*"))
	}
	return false
}

// GetEnvWithDefault returns environment variable value or default if not set
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
