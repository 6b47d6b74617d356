package filelog

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJanitor_SweepsImmediatelyAndOnTick(t *testing.T) {
	dir := t.TempDir()
	l, err := New(filepath.Join(dir, "app.log"), WithRetentionDays(1))
	require.NoError(t, err)
	ageFile(t, filepath.Join(dir, "old.log"), 3)

	var runs atomic.Int32
	firstRun := make(chan *CleanupResult, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	j := NewJanitor(l, 10*time.Millisecond).OnRun(func(r *CleanupResult, err error) {
		assert.NoError(t, err)
		if runs.Add(1) == 1 {
			firstRun <- r
		}
	})

	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	select {
	case r := <-firstRun:
		assert.Equal(t, []string{filepath.Join(dir, "old.log")}, r.Removed)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not sweep")
	}

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestJanitor_ZeroIntervalSweepsOnce(t *testing.T) {
	l, err := New(filepath.Join(t.TempDir(), "app.log"))
	require.NoError(t, err)

	var runs atomic.Int32
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = NewJanitor(l, 0).OnRun(func(*CleanupResult, error) { runs.Add(1) }).Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), runs.Load())
}

func TestJanitor_KeepsRunningAfterFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, writeEmpty(blocker))

	l, err := New(filepath.Join(blocker, "app.log"))
	require.NoError(t, err)

	var failures atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go NewJanitor(l, 5*time.Millisecond).OnRun(func(_ *CleanupResult, err error) {
		if err != nil {
			failures.Add(1)
		}
	}).Run(ctx)

	assert.Eventually(t, func() bool { return failures.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}
