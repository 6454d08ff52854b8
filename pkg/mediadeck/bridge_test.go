package mediadeck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAsyncBridgeSubmitReturnsResult(t *testing.T) {
	b := NewAsyncBridge(nopLogger())
	defer b.Stop()

	result, err := b.Submit(func() (interface{}, error) {
		return 42, nil
	}, time.Second)

	require.NoError(t, err)
	require.Equal(t, 42, result)
}

func TestAsyncBridgeSubmitTimesOut(t *testing.T) {
	b := NewAsyncBridge(nopLogger())
	defer b.Stop()

	release := make(chan struct{})
	defer close(release)

	_, err := b.Submit(func() (interface{}, error) {
		<-release
		return nil, nil
	}, 20*time.Millisecond)

	require.ErrorIs(t, err, ErrBridgeTimeout)
}

func TestAsyncBridgeDiscardsLateResult(t *testing.T) {
	b := NewAsyncBridge(nopLogger())
	defer b.Stop()

	// First operation outlives its bounded wait; the worker must still pick
	// up the next one and its stale result must not leak into it.
	_, err := b.Submit(func() (interface{}, error) {
		time.Sleep(60 * time.Millisecond)
		return "stale", nil
	}, 10*time.Millisecond)
	require.ErrorIs(t, err, ErrBridgeTimeout)

	result, err := b.Submit(func() (interface{}, error) {
		return "fresh", nil
	}, time.Second)

	require.NoError(t, err)
	require.Equal(t, "fresh", result)
}

func TestAsyncBridgeConvertsPanicToError(t *testing.T) {
	b := NewAsyncBridge(nopLogger())
	defer b.Stop()

	_, err := b.Submit(func() (interface{}, error) {
		panic("session handle went away")
	}, time.Second)

	require.Error(t, err)
	require.Contains(t, err.Error(), "panicked")

	// Worker survived the panic.
	result, err := b.Submit(func() (interface{}, error) {
		return "ok", nil
	}, time.Second)

	require.NoError(t, err)
	require.Equal(t, "ok", result)
}

func TestAsyncBridgeStopDuringConcurrentSubmits(t *testing.T) {
	b := NewAsyncBridge(nopLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			// Outcome varies with shutdown timing; only safety matters here.
			b.Submit(func() (interface{}, error) {
				return nil, nil
			}, 10*time.Millisecond)
		}
	}()

	b.Stop()
	b.Stop() // idempotent
	<-done

	_, err := b.Submit(func() (interface{}, error) {
		return nil, nil
	}, time.Second)
	require.ErrorIs(t, err, ErrBridgeStopped)
}

func TestAsyncBridgeSubmitAfterStop(t *testing.T) {
	b := NewAsyncBridge(nopLogger())
	b.Stop()

	_, err := b.Submit(func() (interface{}, error) {
		return nil, nil
	}, time.Second)

	require.ErrorIs(t, err, ErrBridgeStopped)
}
