package mediadeck

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	// bridgeQueueSize bounds how many operations can be pending on the worker.
	// The UI loop issues one call at a time, so anything beyond a handful
	// means the OS API has stopped responding.
	bridgeQueueSize = 8

	// bridgeStopTimeout bounds how long Stop waits for the worker to drain.
	bridgeStopTimeout = 500 * time.Millisecond
)

// ErrBridgeTimeout is returned by Submit when the bounded wait expires before
// the operation completes. The operation itself keeps running on the worker;
// its eventual result is discarded.
var ErrBridgeTimeout = errors.New("bridge: operation timed out")

// ErrBridgeStopped is returned by Submit after the bridge has been stopped.
var ErrBridgeStopped = errors.New("bridge: already stopped")

type bridgeTask struct {
	op func() (interface{}, error)

	// Buffered so a worker finishing after the caller gave up never blocks;
	// the stale completion is simply dropped with the channel.
	result chan bridgeResult
}

type bridgeResult struct {
	value interface{}
	err   error
}

// AsyncBridge runs operations against the OS media API on a single dedicated
// worker goroutine, so the synchronous poll loop never blocks on OS I/O
// beyond a bounded wait. All submitted operations execute sequentially, which
// also serializes access to the locator's cached manager handle.
type AsyncBridge struct {
	logger *zap.SugaredLogger

	tasks       chan bridgeTask
	stopChannel chan struct{}
	doneChannel chan struct{}

	// Submit is reachable from the poll loop and the tray handler at once.
	stopped atomic.Bool
}

// NewAsyncBridge creates the bridge and starts its worker goroutine.
func NewAsyncBridge(logger *zap.SugaredLogger) *AsyncBridge {
	logger = logger.Named("bridge")

	b := &AsyncBridge{
		logger:      logger,
		tasks:       make(chan bridgeTask, bridgeQueueSize),
		stopChannel: make(chan struct{}),
		doneChannel: make(chan struct{}),
	}

	go b.workerLoop()

	logger.Debug("Created async bridge instance")
	return b
}

// Submit runs op on the worker and waits up to timeout for its result.
// On timeout the operation is not canceled - callers must be idempotent
// toward retries, since a retried operation may run twice.
func (b *AsyncBridge) Submit(op func() (interface{}, error), timeout time.Duration) (interface{}, error) {
	if b.stopped.Load() {
		return nil, ErrBridgeStopped
	}

	task := bridgeTask{
		op:     op,
		result: make(chan bridgeResult, 1),
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case b.tasks <- task:
	case <-timer.C:
		b.logger.Warnw("Task queue full past timeout, dropping operation", "timeout", timeout)
		return nil, ErrBridgeTimeout
	}

	select {
	case res := <-task.result:
		return res.value, res.err
	case <-timer.C:
		return nil, ErrBridgeTimeout
	}
}

// Stop signals the worker to exit and joins it with a bounded wait.
// Pending queued operations may be dropped.
func (b *AsyncBridge) Stop() {
	if b.stopped.Swap(true) {
		return
	}

	close(b.stopChannel)

	select {
	case <-b.doneChannel:
		b.logger.Debug("Bridge worker stopped cleanly")
	case <-time.After(bridgeStopTimeout):
		b.logger.Warn("Bridge worker did not stop in time, abandoning")
	}
}

func (b *AsyncBridge) workerLoop() {
	defer close(b.doneChannel)

	// The OS media API is apartment-threaded; all calls must come from the
	// same OS thread that initialized the runtime.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-b.stopChannel:
			return
		case task := <-b.tasks:
			task.result <- b.runTask(task)
		}
	}
}

// runTask executes one operation, converting panics from the OS API surface
// into plain errors so a misbehaving provider can never kill the worker.
func (b *AsyncBridge) runTask(task bridgeTask) (res bridgeResult) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorw("Recovered from panic in bridge operation", "panic", r)
			res = bridgeResult{err: fmt.Errorf("bridge operation panicked: %v", r)}
		}
	}()

	value, err := task.op()
	return bridgeResult{value: value, err: err}
}
