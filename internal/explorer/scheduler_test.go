package explorer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(nil, 0)
	assert.Equal(t, DefaultInterval, s.Interval())
	assert.False(t, s.Running())
}

func TestScheduler_TicksEveryInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScheduler(clock, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ticks := make(chan struct{}, 8)
	require.True(t, s.Start(func() { ticks <- struct{}{} }))

	for range 3 {
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(time.Second)
		select {
		case <-ticks:
		case <-ctx.Done():
			t.Fatal("timed out waiting for tick")
		}
	}

	assert.True(t, s.Stop())
	s.Wait()
	assert.False(t, s.Running())
}

func TestScheduler_StartWhileRunningIsNoop(t *testing.T) {
	s := NewScheduler(clockwork.NewFakeClock(), time.Second)

	require.True(t, s.Start(func() {}))
	assert.False(t, s.Start(func() {}))

	s.Stop()
	s.Wait()
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := NewScheduler(clockwork.NewFakeClock(), time.Second)

	assert.False(t, s.Stop())

	s.Start(func() {})
	assert.True(t, s.Stop())
	assert.False(t, s.Stop())
	s.Wait()
}

func TestScheduler_NoTickBeforeInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScheduler(clock, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count atomic.Int32
	s.Start(func() { count.Add(1) })
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(999 * time.Millisecond)
	s.Stop()
	s.Wait()

	assert.Zero(t, count.Load())
}

func TestScheduler_StopCancelsPendingTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScheduler(clock, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count atomic.Int32
	s.Start(func() { count.Add(1) })
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	s.Stop()
	s.Wait()
	clock.Advance(time.Second)

	assert.Zero(t, count.Load())
}

func TestScheduler_RestartAfterStop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScheduler(clock, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.Start(func() {})
	s.Stop()
	s.Wait()

	ticks := make(chan struct{}, 1)
	require.True(t, s.Start(func() { ticks <- struct{}{} }))
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)

	select {
	case <-ticks:
	case <-ctx.Done():
		t.Fatal("timed out waiting for tick after restart")
	}
	s.Stop()
	s.Wait()
}
