package filelog

import (
	"context"
	"time"

	"github.com/johnnynv/filelogger/pkg/logger"
)

// Janitor runs RemoveOldFiles on a fixed interval. FileLogger never schedules
// cleanups itself.
type Janitor struct {
	logger   *FileLogger
	interval time.Duration
	onRun    func(*CleanupResult, error)
}

// NewJanitor creates a Janitor sweeping fl every interval.
func NewJanitor(fl *FileLogger, interval time.Duration) *Janitor {
	return &Janitor{logger: fl, interval: interval}
}

// OnRun registers a callback invoked after every sweep.
func (j *Janitor) OnRun(fn func(*CleanupResult, error)) *Janitor {
	j.onRun = fn
	return j
}

// Run sweeps once immediately and then on every tick until ctx is done.
// Failed sweeps are logged and do not stop the loop. Run returns ctx.Err().
func (j *Janitor) Run(ctx context.Context) error {
	j.sweep()

	if j.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *Janitor) sweep() {
	result, err := j.logger.RemoveOldFiles()
	if err != nil {
		j.logger.log.WithError(err).WithField("operation", "janitor_sweep").Error("Log cleanup failed")
	} else {
		j.logger.log.WithFields(logger.Fields{
			"operation": "janitor_sweep",
			"removed":   len(result.Removed),
		}).Debug("Log cleanup completed")
	}
	if j.onRun != nil {
		j.onRun(result, err)
	}
}
