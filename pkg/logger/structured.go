package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Fields type, used to pass to `WithFields`.
type Fields map[string]interface{}

// Entry wraps logrus.Entry to provide consistent interface
type Entry struct {
	*logrus.Entry
}

// WithFields adds multiple fields to log entries
func (l *Logger) WithFields(fields Fields) *Entry {
	return &Entry{l.Logger.WithFields(logrus.Fields(fields))}
}

// WithField adds a single field to log entries
func (l *Logger) WithField(key string, value interface{}) *Entry {
	return &Entry{l.Logger.WithField(key, value)}
}

// WithComponent adds component field to log entries
func (l *Logger) WithComponent(component string) *Entry {
	return l.WithField("component", component)
}

// WithError adds error field to log entries
func (l *Logger) WithError(err error) *Entry {
	return l.WithField("error", err.Error())
}

// Entry methods for chaining additional fields
func (e *Entry) WithField(key string, value interface{}) *Entry {
	return &Entry{e.Entry.WithField(key, value)}
}

func (e *Entry) WithFields(fields Fields) *Entry {
	return &Entry{e.Entry.WithFields(logrus.Fields(fields))}
}

func (e *Entry) WithComponent(component string) *Entry {
	return e.WithField("component", component)
}

func (e *Entry) WithOperation(operation string) *Entry {
	return e.WithField("operation", operation)
}

func (e *Entry) WithError(err error) *Entry {
	return e.WithField("error", err.Error())
}

// createFileWriter creates a size-capped file writer for diagnostics
func createFileWriter(config Config) (io.Writer, error) {
	path, err := filepath.Abs(config.Output)
	if err != nil {
		return nil, err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.File.MaxSize,
		MaxBackups: config.File.MaxBackups,
		MaxAge:     config.File.MaxAge,
		Compress:   config.File.Compress,
	}, nil
}

// getWriter returns the appropriate writer based on configuration
func getWriter(config Config) (io.Writer, error) {
	switch config.Output {
	case "stdout":
		return os.Stdout, nil
	case "stderr", "":
		return os.Stderr, nil
	case "discard":
		return io.Discard, nil
	default:
		return createFileWriter(config)
	}
}
