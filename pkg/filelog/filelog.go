// Package filelog writes formatted log lines to a single append-only text
// file, optionally echoes them to a console, and prunes expired .log files
// from the log directory.
//
// Every write opens, appends to and closes the file; no handle is held
// between calls. There is no application-level locking of the file unless
// WithFileLock is used, so concurrent writers from several processes rely on
// the platform's O_APPEND semantics.
package filelog

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/johnnynv/filelogger/pkg/logger"
)

// DefaultRetentionDays is the retention period used when none is given.
const DefaultRetentionDays uint = 60

// FileLogger appends formatted entries to one log file.
type FileLogger struct {
	mu            sync.RWMutex
	path          string
	retentionDays uint
	lock          *appendLock

	// fixed at construction
	pid              int
	defaultComponent string
	useLock          bool
	console          *console
	log              *logger.Entry
	now              func() time.Time
}

type options struct {
	retentionDays    uint
	consoleEnabled   bool
	consoleWriter    io.Writer
	consoleColor     *bool
	defaultComponent string
	useLock          bool
	log              *logger.Entry
	now              func() time.Time
}

// Option configures a FileLogger.
type Option func(*options)

// WithRetentionDays sets how many days a .log file is kept by RemoveOldFiles.
func WithRetentionDays(days uint) Option {
	return func(o *options) { o.retentionDays = days }
}

// WithConsole enables or disables echoing raw messages to the console.
func WithConsole(enabled bool) Option {
	return func(o *options) { o.consoleEnabled = enabled }
}

// WithConsoleWriter sets the console echo destination (default os.Stdout).
func WithConsoleWriter(w io.Writer) Option {
	return func(o *options) { o.consoleWriter = w }
}

// WithConsoleColor forces colours on or off instead of detecting a terminal.
func WithConsoleColor(enabled bool) Option {
	return func(o *options) { o.consoleColor = &enabled }
}

// WithDefaultComponent overrides the component used when a caller gives none.
func WithDefaultComponent(component string) Option {
	return func(o *options) { o.defaultComponent = component }
}

// WithFileLock holds an exclusive cross-process lock on "<path>.lock"
// around every append.
func WithFileLock(enabled bool) Option {
	return func(o *options) { o.useLock = enabled }
}

// WithLogger sets the diagnostic logger. It never receives log file content.
func WithLogger(entry *logger.Entry) Option {
	return func(o *options) { o.log = entry }
}

// WithClock replaces time.Now for timestamps and retention checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a FileLogger writing to logPath. The process id and the default
// component are captured once here and reused for every entry.
func New(logPath string, opts ...Option) (*FileLogger, error) {
	if err := validatePath(logPath); err != nil {
		return nil, err
	}

	o := options{
		retentionDays:    DefaultRetentionDays,
		consoleWriter:    os.Stdout,
		defaultComponent: programName(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Discard().WithComponent("filelog")
	}

	l := &FileLogger{
		path:             logPath,
		retentionDays:    o.retentionDays,
		pid:              os.Getpid(),
		defaultComponent: o.defaultComponent,
		useLock:          o.useLock,
		log:              o.log,
		now:              o.now,
	}
	if o.useLock {
		l.lock = newAppendLock(logPath)
	}
	if o.consoleEnabled {
		useColor := supportsColor(o.consoleWriter)
		if o.consoleColor != nil {
			useColor = *o.consoleColor
		}
		l.console = newConsole(o.consoleWriter, useColor)
	}

	l.log.WithFields(logger.Fields{
		"path":           logPath,
		"retention_days": o.retentionDays,
		"console":        o.consoleEnabled,
		"lock":           o.useLock,
	}).Debug("File logger created")

	return l, nil
}

func validatePath(logPath string) error {
	if strings.TrimSpace(logPath) == "" {
		return &ConfigurationError{
			Field:   "log path",
			Message: "must not be empty",
			Err:     ErrEmptyPath,
		}
	}
	return nil
}

// programName returns the executable's base name without extension.
func programName() string {
	if len(os.Args) == 0 {
		return "filelogger"
	}
	name := filepath.Base(os.Args[0])
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "filelogger"
	}
	return name
}

// LogPath returns the current log file path.
func (l *FileLogger) LogPath() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.path
}

// SetLogPath changes the log file path used by later writes and cleanups.
func (l *FileLogger) SetLogPath(logPath string) error {
	if err := validatePath(logPath); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.path = logPath
	if l.useLock {
		l.lock = newAppendLock(logPath)
	}
	return nil
}

// RetentionDays returns the retention period in days.
func (l *FileLogger) RetentionDays() uint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.retentionDays
}

// SetRetentionDays changes the retention period used by RemoveOldFiles.
func (l *FileLogger) SetRetentionDays(days uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.retentionDays = days
}

// ConsoleEnabled reports whether messages are echoed to the console.
func (l *FileLogger) ConsoleEnabled() bool { return l.console != nil }

// DefaultComponent returns the component used when a write names none.
func (l *FileLogger) DefaultComponent() string { return l.defaultComponent }

// PID returns the process id written into every entry.
func (l *FileLogger) PID() int { return l.pid }

// WriteLog logs message as Information under the default component.
func (l *FileLogger) WriteLog(message string) error {
	return l.Write(message, l.defaultComponent, Information)
}

// WriteLogComponent logs message as Information under component.
func (l *FileLogger) WriteLogComponent(message, component string) error {
	return l.Write(message, component, Information)
}

// WriteLogSeverity logs message with severity under the default component.
func (l *FileLogger) WriteLogSeverity(message string, severity Severity) error {
	return l.Write(message, l.defaultComponent, severity)
}

// Info logs message as Information under the default component.
func (l *FileLogger) Info(message string) error { return l.WriteLogSeverity(message, Information) }

// Success logs message as Success under the default component.
func (l *FileLogger) Success(message string) error { return l.WriteLogSeverity(message, Success) }

// Warning logs message as Warning under the default component.
func (l *FileLogger) Warning(message string) error { return l.WriteLogSeverity(message, Warning) }

// Error logs message as Error under the default component.
func (l *FileLogger) Error(message string) error { return l.WriteLogSeverity(message, Error) }

// Write appends one formatted line to the log file, creating the parent
// directory if needed, then echoes the raw message to the console when
// enabled. A failed append is returned as an *IOError and is not retried;
// the message is not echoed in that case.
func (l *FileLogger) Write(message, component string, severity Severity) error {
	if message == "" {
		return &ConfigurationError{Field: "message", Message: "must not be empty", Err: ErrEmptyMessage}
	}
	if !severity.Valid() {
		return &ConfigurationError{Field: "severity", Message: "unknown severity value"}
	}
	if component == "" {
		component = l.defaultComponent
	}

	l.mu.RLock()
	path, lock := l.path, l.lock
	l.mu.RUnlock()
	if err := validatePath(path); err != nil {
		return err
	}

	line := FormatLine(Entry{
		Severity:  severity,
		Message:   message,
		Component: component,
		Time:      l.now(),
		PID:       l.pid,
	})

	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	appendFn := func() error { return appendLine(path, line) }
	var err error
	if lock != nil {
		err = lock.withLock(appendFn)
	} else {
		err = appendFn()
	}
	if err != nil {
		l.log.WithError(err).WithField("path", path).Debug("Log append failed")
		return err
	}

	if l.console != nil {
		if err := l.console.print(severity, message); err != nil {
			l.log.WithError(err).Warn("Console echo failed")
		}
	}
	return nil
}

// ensureDir creates dir and any missing parents.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return newIOError("mkdir", dir, err)
	}
	return nil
}

// appendLine opens path for appending, writes line and a newline, and closes it.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return newIOError("open", path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return newIOError("write", path, err)
	}
	if err := f.Close(); err != nil {
		return newIOError("close", path, err)
	}
	return nil
}
