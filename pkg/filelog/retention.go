package filelog

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/johnnynv/filelogger/pkg/logger"
)

// logExtension is the only extension RemoveOldFiles ever deletes.
const logExtension = ".log"

// CleanupResult describes one RemoveOldFiles run.
type CleanupResult struct {
	Dir        string
	Removed    []string
	CreatedDir bool
}

// RemoveOldFiles deletes the .log files in the log file's directory whose
// modification time is more than RetentionDays days in the past. Only the
// directory itself is scanned, not its subdirectories.
//
// If the directory does not exist it is created and nothing is deleted.
// Deletion is best effort: a file that cannot be removed is recorded in a
// *CleanupError and the remaining files are still processed.
func (l *FileLogger) RemoveOldFiles() (*CleanupResult, error) {
	dir, created, expired, err := l.scan()
	result := &CleanupResult{Dir: dir, CreatedDir: created}
	if err != nil || created {
		return result, err
	}

	var failures []*IOError
	for _, path := range expired {
		if err := os.Remove(path); err != nil {
			failures = append(failures, newIOError("remove", path, err))
			continue
		}
		result.Removed = append(result.Removed, path)
	}

	entry := l.log.WithFields(logger.Fields{
		"operation": "remove_old_files",
		"dir":       dir,
		"removed":   len(result.Removed),
		"failed":    len(failures),
	})
	if len(failures) > 0 {
		entry.Warn("Some expired log files could not be removed")
		return result, &CleanupError{Failures: failures}
	}
	entry.Debug("Expired log files removed")
	return result, nil
}

// ExpiredFiles returns the files RemoveOldFiles would delete, without deleting
// them. Like RemoveOldFiles it creates a missing log directory.
func (l *FileLogger) ExpiredFiles() ([]string, error) {
	_, _, expired, err := l.scan()
	return expired, err
}

// scan resolves the log directory, creating it when missing, and lists the
// expired .log files in it.
func (l *FileLogger) scan() (dir string, created bool, expired []string, err error) {
	l.mu.RLock()
	path, retention := l.path, l.retentionDays
	l.mu.RUnlock()
	if err := validatePath(path); err != nil {
		return "", false, nil, err
	}

	dir = filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return dir, false, nil, newIOError("stat", dir, err)
		}
		if err := ensureDir(dir); err != nil {
			return dir, false, nil, err
		}
		l.log.WithField("dir", dir).Debug("Log directory created")
		return dir, true, nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return dir, false, nil, newIOError("readdir", dir, err)
	}

	now := l.now()
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != logExtension {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed since ReadDir
			continue
		}
		if isExpired(now, info.ModTime(), retention) {
			expired = append(expired, filepath.Join(dir, e.Name()))
		}
	}
	return dir, false, expired, nil
}

// isExpired reports whether a file modified at modTime is strictly older
// than retentionDays at now. Age is compared in fractional days.
func isExpired(now, modTime time.Time, retentionDays uint) bool {
	ageDays := now.Sub(modTime).Hours() / 24
	return ageDays > float64(retentionDays)
}
