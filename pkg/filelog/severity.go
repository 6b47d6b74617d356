package filelog

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Severity classifies a log entry. The order is for display only; entries are
// never filtered by severity.
type Severity uint8

const (
	Information Severity = iota
	Success
	Warning
	Error
)

// labelWidth is the fixed width of the severity column in the log file.
const labelWidth = 11

// severityInfo is the explicit label/colour mapping for each severity.
// A nil colour means the console's default foreground colour.
var severityInfo = map[Severity]struct {
	label string
	color []color.Attribute
}{
	Information: {label: "INFORMATION"},
	Success:     {label: "SUCCESS", color: []color.Attribute{color.FgGreen}},
	Warning:     {label: "WARNING", color: []color.Attribute{color.FgYellow}},
	Error:       {label: "ERROR", color: []color.Attribute{color.FgRed}},
}

// Severities returns every known severity in display order.
func Severities() []Severity {
	return []Severity{Information, Success, Warning, Error}
}

// String returns the upper-case label, e.g. "WARNING".
func (s Severity) String() string {
	if info, ok := severityInfo[s]; ok {
		return info.label
	}
	return "UNKNOWN"
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	_, ok := severityInfo[s]
	return ok
}

// paddedLabel returns the label right-padded to the severity column width.
func (s Severity) paddedLabel() string {
	label := s.String()
	if len(label) >= labelWidth {
		return label
	}
	return label + strings.Repeat(" ", labelWidth-len(label))
}

// colorAttributes returns the console colour for s, nil for the default colour.
func (s Severity) colorAttributes() []color.Attribute {
	return severityInfo[s].color
}

// ParseSeverity parses a severity label case-insensitively. Short forms
// ("info", "warn", "err") are accepted.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "information", "info", "":
		return Information, nil
	case "success":
		return Success, nil
	case "warning", "warn":
		return Warning, nil
	case "error", "err":
		return Error, nil
	}
	return Information, &ConfigurationError{
		Field:   "severity",
		Message: fmt.Sprintf("unknown severity %q", s),
	}
}
