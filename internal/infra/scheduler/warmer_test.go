package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewWarmerDisabledWithoutSchedule(t *testing.T) {
	w, err := NewWarmer("  ", time.Second, func(context.Context) (int, error) { return 0, nil }, newTestLogger())
	require.NoError(t, err)
	require.False(t, w.Enabled())
	w.Start()
	w.Stop()
}

func TestNewWarmerRejectsBadSchedule(t *testing.T) {
	_, err := NewWarmer("every now and then", time.Second, func(context.Context) (int, error) { return 0, nil }, newTestLogger())
	require.Error(t, err)
}

func TestRunOnceAppliesTimeout(t *testing.T) {
	var hadDeadline bool
	w, err := NewWarmer("@every 30m", time.Minute, func(ctx context.Context) (int, error) {
		_, hadDeadline = ctx.Deadline()
		return 3, nil
	}, newTestLogger())
	require.NoError(t, err)
	require.True(t, w.Enabled())

	w.RunOnce()
	require.True(t, hadDeadline)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
