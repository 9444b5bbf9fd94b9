package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOverdueSweeper_RunsImmediatelyOnStart(t *testing.T) {
	var calls atomic.Int32
	sweeper := NewOverdueSweeper(time.Hour, func(ctx context.Context, now time.Time) (int, error) {
		calls.Add(1)
		return 2, nil
	}, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))
	defer sweeper.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestOverdueSweeper_SweepsOnInterval(t *testing.T) {
	var calls atomic.Int32
	sweeper := NewOverdueSweeper(20*time.Millisecond, func(ctx context.Context, now time.Time) (int, error) {
		calls.Add(1)
		return 0, nil
	}, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))
	defer sweeper.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestOverdueSweeper_SweepErrorDoesNotStopLoop(t *testing.T) {
	var calls atomic.Int32
	sweeper := NewOverdueSweeper(20*time.Millisecond, func(ctx context.Context, now time.Time) (int, error) {
		calls.Add(1)
		return 0, errors.New("db unavailable")
	}, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))
	defer sweeper.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestOverdueSweeper_StopWaitsForLoop(t *testing.T) {
	sweeper := NewOverdueSweeper(time.Hour, func(ctx context.Context, now time.Time) (int, error) {
		return 0, nil
	}, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))
	require.NoError(t, sweeper.Stop(context.Background()))

	// second stop is a no-op
	require.NoError(t, sweeper.Stop(context.Background()))
}

func TestOverdueSweeper_DoubleStartIsNoOp(t *testing.T) {
	var calls atomic.Int32
	sweeper := NewOverdueSweeper(time.Hour, func(ctx context.Context, now time.Time) (int, error) {
		calls.Add(1)
		return 0, nil
	}, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))
	require.NoError(t, sweeper.Start(context.Background()))
	require.NoError(t, sweeper.Stop(context.Background()))

	assert.EqualValues(t, 1, calls.Load())
}
