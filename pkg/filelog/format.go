package filelog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// TimestampLayout is the layout of the timestamp field, microsecond precision.
const TimestampLayout = "01-02-2006 15:04:05.000000"

// Entry is a single log record. It only exists while a line is being
// formatted or after a line has been parsed back.
type Entry struct {
	Severity  Severity
	Message   string
	Component string
	Time      time.Time
	PID       int
}

// Line breaks inside a field are written as \n and \r so that every entry
// stays on one physical line. Backslashes are doubled to keep that reversible.
var (
	fieldEscaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	fieldUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r")
)

// FormatLine renders e as a log file line, without the line terminator:
//
//	SUCCESS     : LOG SUCCES $$<MyApp><06-01-2024 14:32:05.123456><thread=4821>
//
// Backslashes, CR and LF in the message and component are escaped.
func FormatLine(e Entry) string {
	return fmt.Sprintf("%s : %s $$<%s><%s><thread=%d>",
		e.Severity.paddedLabel(),
		fieldEscaper.Replace(e.Message),
		fieldEscaper.Replace(e.Component),
		e.Time.Format(TimestampLayout),
		e.PID,
	)
}

var linePattern = regexp.MustCompile(
	`^(.{11}) : (.*) \$\$<(.*)><(\d{2}-\d{2}-\d{4} \d{2}:\d{2}:\d{2}\.\d{6})><thread=(\d+)>$`,
)

// ParseLine parses a line produced by FormatLine and undoes its escaping.
// The timestamp is read in the local time zone, the same zone it was
// written in.
func ParseLine(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, errors.Wrapf(ErrMalformedLine, "%q", line)
	}

	label := strings.TrimRight(m[1], " ")
	severity, ok := severityByLabel(label)
	if !ok {
		return Entry{}, errors.Wrapf(ErrMalformedLine, "unknown severity label %q", label)
	}

	ts, err := time.ParseInLocation(TimestampLayout, m[4], time.Local)
	if err != nil {
		return Entry{}, errors.Wrapf(ErrMalformedLine, "timestamp %q: %v", m[4], err)
	}

	pid, err := strconv.Atoi(m[5])
	if err != nil {
		return Entry{}, errors.Wrapf(ErrMalformedLine, "pid %q: %v", m[5], err)
	}

	return Entry{
		Severity:  severity,
		Message:   fieldUnescaper.Replace(m[2]),
		Component: fieldUnescaper.Replace(m[3]),
		Time:      ts,
		PID:       pid,
	}, nil
}

func severityByLabel(label string) (Severity, bool) {
	for _, s := range Severities() {
		if s.String() == label {
			return s, true
		}
	}
	return Information, false
}
