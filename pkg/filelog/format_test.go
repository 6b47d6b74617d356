package filelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine_Example(t *testing.T) {
	ts := time.Date(2024, time.June, 1, 14, 32, 5, 123456000, time.Local)
	line := FormatLine(Entry{
		Severity:  Success,
		Message:   "LOG SUCCES",
		Component: "MyApp",
		Time:      ts,
		PID:       4821,
	})
	assert.Equal(t, "SUCCESS     : LOG SUCCES $$<MyApp><06-01-2024 14:32:05.123456><thread=4821>", line)
}

func TestFormatLine_LabelWidth(t *testing.T) {
	for _, s := range Severities() {
		t.Run(s.String(), func(t *testing.T) {
			line := FormatLine(Entry{Severity: s, Message: "m", Component: "c", Time: time.Now(), PID: 1})
			assert.Equal(t, " : ", line[labelWidth:labelWidth+3])
			assert.Len(t, s.paddedLabel(), labelWidth)
		})
	}
}

func TestFormatLine_MicrosecondTruncation(t *testing.T) {
	ts := time.Date(2024, time.December, 31, 23, 59, 59, 999999999, time.Local)
	line := FormatLine(Entry{Severity: Information, Message: "x", Component: "c", Time: ts, PID: 7})
	assert.Contains(t, line, "<12-31-2024 23:59:59.999999>")
}

func TestFormatLine_EscapesLineBreaks(t *testing.T) {
	ts := time.Date(2024, time.June, 1, 14, 32, 5, 0, time.Local)
	line := FormatLine(Entry{Severity: Error, Message: "a\nb\r\\c", Component: "x\ny", Time: ts, PID: 1})

	assert.NotContains(t, line, "\n")
	assert.NotContains(t, line, "\r")
	assert.Equal(t, `ERROR       : a\nb\r\\c $$<x\ny><06-01-2024 14:32:05.000000><thread=1>`, line)
}

func TestParseLine_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		component string
		severity  Severity
	}{
		{"information", "boot", "MyApp", Information},
		{"success", "LOG SUCCES", "worker", Success},
		{"warning with separators", "disk at 91% : check <mount>", "monitor", Warning},
		{"error with dollar signs", "cost $$ exceeded $$<budget>", "billing", Error},
		{"unicode", "Démarrage de l'application", "Programme", Information},
		{"empty component", "no component", "", Success},
		{"multi-line message", "line1\nline2\r\nline3\n", "svc", Warning},
		{"literal backslashes", `C:\logs\new\app.log ends with \`, `db\n`, Information},
	}

	ts := time.Date(2025, time.March, 9, 8, 7, 6, 543210000, time.Local)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Entry{Severity: tt.severity, Message: tt.message, Component: tt.component, Time: ts, PID: 4242}

			out, err := ParseLine(FormatLine(in) + "\n")
			require.NoError(t, err)

			assert.Equal(t, in.Severity, out.Severity)
			assert.Equal(t, in.Message, out.Message)
			assert.Equal(t, in.Component, out.Component)
			assert.Equal(t, in.PID, out.PID)
			assert.True(t, ts.Equal(out.Time), "got %v", out.Time)
		})
	}
}

func TestParseLine_Malformed(t *testing.T) {
	lines := []string{
		"",
		"just some text",
		"INFORMATION : missing suffix",
		"DEBUG       : msg $$<c><01-02-2024 10:00:00.000000><thread=1>",
		"INFORMATION : msg $$<c><2024-01-02 10:00:00><thread=1>",
		"INFORMATION : msg $$<c><13-45-2024 10:00:00.000000><thread=1>",
	}
	for _, line := range lines {
		_, err := ParseLine(line)
		assert.ErrorIs(t, err, ErrMalformedLine, "line %q", line)
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"INFORMATION", Information},
		{"info", Information},
		{"", Information},
		{"Success", Success},
		{"warn", Warning},
		{"WARNING", Warning},
		{"err", Error},
		{"error", Error},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSeverity("fatal")
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSeverity_Unknown(t *testing.T) {
	s := Severity(42)
	assert.False(t, s.Valid())
	assert.Equal(t, "UNKNOWN", s.String())
	assert.Nil(t, s.colorAttributes())
}
