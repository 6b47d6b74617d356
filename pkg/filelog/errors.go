package filelog

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrEmptyPath is reported when the log file path is empty.
	ErrEmptyPath = errors.New("log path is empty")

	// ErrEmptyMessage is reported when WriteLog is called without a message.
	ErrEmptyMessage = errors.New("log message is empty")

	// ErrMalformedLine is returned by ParseLine for lines it cannot split.
	ErrMalformedLine = errors.New("malformed log line")
)

// ConfigurationError reports an invalid logger configuration or argument.
type ConfigurationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IOError reports a file system failure while writing or cleaning up logs.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func newIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: errors.WithStack(err)}
}

// CleanupError aggregates the per-file failures of a RemoveOldFiles run.
// Files that failed to delete do not prevent the others from being removed.
type CleanupError struct {
	Failures []*IOError
}

func (e *CleanupError) Error() string {
	if len(e.Failures) == 1 {
		return "removing old log files: " + e.Failures[0].Error()
	}
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("removing old log files: %d failures: %s", len(e.Failures), strings.Join(msgs, "; "))
}

func (e *CleanupError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
