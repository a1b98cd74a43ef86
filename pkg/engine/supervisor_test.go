package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShutdownCancelsAndCleansOnce(t *testing.T) {
	var cleanups int
	ctx, sup := NewSupervisor(context.Background(), func() { cleanups++ })

	sup.Shutdown()
	sup.Shutdown() // re-entrant no-op
	sup.Shutdown()

	require.Error(t, ctx.Err())
	require.Equal(t, 1, cleanups)
}

func TestWaitReturnsWhenFinished(t *testing.T) {
	_, sup := NewSupervisor(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		sup.Finished()
	}()

	require.True(t, sup.Wait(time.Second))
	require.True(t, sup.Wait(time.Second), "waiting after the drain stays satisfied")
}

func TestWaitTimesOutWhileRunning(t *testing.T) {
	_, sup := NewSupervisor(context.Background())
	require.False(t, sup.Wait(20*time.Millisecond))
}

func TestFinishedIsIdempotent(t *testing.T) {
	_, sup := NewSupervisor(context.Background())
	sup.Finished()
	sup.Finished()
	require.True(t, sup.Wait(time.Second))
}
