// Package mediadeck provides a desktop now-playing widget core that mirrors
// and controls the operating system's media sessions.
package mediadeck

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/retr0680/mediadeck/pkg/mediadeck/util"
)

const (
	// EnvNoTray disables the tray icon when set.
	EnvNoTray = "MEDIADECK_NO_TRAY_ICON"
)

// dispatchResult carries a dispatcher outcome across the bridge.
type dispatchResult struct {
	ok      bool
	message string
}

// Deck manages the main application components.
type Deck struct {
	logger     *zap.SugaredLogger
	notifier   Notifier
	config     *CanonicalConfig
	bridge     *AsyncBridge
	locator    *sessionLocator
	dispatcher *commandDispatcher
	fetcher    *snapshotFetcher
	automation *automationEngine

	stopChannel     chan bool
	pollStopChannel chan struct{}

	// snapshotLock guards both the last snapshot and the consumer list;
	// subscriptions may arrive while the poll loop is publishing.
	snapshotLock      sync.Mutex
	lastSnapshot      Snapshot
	snapshotConsumers []chan Snapshot

	version string
	verbose bool
}

// NewDeck creates a new Deck instance.
func NewDeck(logger *zap.SugaredLogger, verbose bool) (*Deck, error) {
	logger = logger.Named("mediadeck")

	notifier, err := NewToastNotifier(logger)
	if err != nil {
		logger.Errorw("Failed to create notifier", "error", err)
		return nil, fmt.Errorf("create notifier: %w", err)
	}

	config, err := NewConfig(logger, notifier)
	if err != nil {
		logger.Errorw("Failed to create configuration", "error", err)
		return nil, fmt.Errorf("create configuration: %w", err)
	}

	provider, err := newSessionProvider(logger)
	if err != nil {
		logger.Errorw("Failed to initialize session provider", "error", err)
		return nil, fmt.Errorf("initialize session provider: %w", err)
	}

	d := &Deck{
		logger:          logger,
		notifier:        notifier,
		config:          config,
		stopChannel:     make(chan bool),
		pollStopChannel: make(chan struct{}),
		verbose:         verbose,
		lastSnapshot:    emptySnapshot(),
	}

	d.bridge = NewAsyncBridge(logger)
	d.locator = newSessionLocator(logger, provider, config)
	d.dispatcher = newCommandDispatcher(logger, d.locator)
	decoder := newThumbnailDecoder(logger, config)
	d.fetcher = newSnapshotFetcher(logger, d.locator, decoder)
	d.automation = newAutomationEngine(logger, config, d.dispatchOnBridge)

	logger.Debug("Deck instance created successfully")
	return d, nil
}

// Initialize prepares components and starts running the application.
func (d *Deck) Initialize() error {
	d.logger.Debug("Initializing mediadeck")

	if err := d.config.Load(); err != nil {
		d.logger.Errorw("Failed to load configuration", "error", err)
		return fmt.Errorf("load configuration: %w", err)
	}

	d.setupInterruptHandler()

	if os.Getenv(EnvNoTray) != "" {
		d.logger.Debug("Running without tray icon")
		d.run()
	} else {
		d.initializeTray(d.run)
	}

	return nil
}

// SetVersion sets the application version for display in the tray menu.
func (d *Deck) SetVersion(version string) {
	d.version = version
}

// Verbose indicates whether the application runs in verbose mode.
func (d *Deck) Verbose() bool {
	return d.verbose
}

// Poll performs one now-playing query over the bridge and returns the
// resulting snapshot. On timeout or failure the most recent successful
// snapshot is returned instead - the poll loop's next tick will retry.
func (d *Deck) Poll() Snapshot {
	result, err := d.bridge.Submit(func() (interface{}, error) {
		return d.fetcher.Fetch(), nil
	}, d.config.QueryTimeout)

	if err != nil {
		d.logger.Debugw("Now-playing query failed, keeping last snapshot", "error", err)
		return d.LastSnapshot()
	}

	snapshot := result.(Snapshot)

	d.snapshotLock.Lock()
	d.lastSnapshot = snapshot
	d.snapshotLock.Unlock()

	return snapshot
}

// LastSnapshot returns the most recent successful snapshot.
func (d *Deck) LastSnapshot() Snapshot {
	d.snapshotLock.Lock()
	defer d.snapshotLock.Unlock()
	return d.lastSnapshot
}

// Dispatch routes one user transport action through the bridge, applying the
// automation override rules around it. Never returns an error: failures are
// reported in the (succeeded, message) result.
func (d *Deck) Dispatch(action Action) (bool, string) {
	if !KnownAction(action) {
		return false, fmt.Sprintf("Unknown action: %s", action)
	}

	playAfter := d.automation.BeforeUserAction(action, d.LastSnapshot().IsPlaying)

	ok, message := d.dispatchOnBridge(action)
	d.logger.Debugw("Dispatched user action", "action", action, "ok", ok, "message", message)

	// A user skip that canceled a pending delay resumes playback right away.
	if playAfter {
		d.automation.ResumePlayback()
	}

	return ok, message
}

// ToggleAutomation flips delay mode and returns the new enabled state.
func (d *Deck) ToggleAutomation() bool {
	return d.automation.Toggle()
}

// AutomationProgress returns the remaining time until auto-resume. The
// second result is false when no resume timer is pending.
func (d *Deck) AutomationProgress() (time.Duration, bool) {
	return d.automation.Progress()
}

// SubscribeToSnapshots allows the UI layer to receive each poll's snapshot.
// Sends are non-blocking; a slow consumer just misses intermediate frames.
func (d *Deck) SubscribeToSnapshots() chan Snapshot {
	ch := make(chan Snapshot, 1)

	d.snapshotLock.Lock()
	d.snapshotConsumers = append(d.snapshotConsumers, ch)
	d.snapshotLock.Unlock()

	return ch
}

func (d *Deck) dispatchOnBridge(action Action) (bool, string) {
	result, err := d.bridge.Submit(func() (interface{}, error) {
		ok, message := d.dispatcher.Dispatch(action)
		return dispatchResult{ok: ok, message: message}, nil
	}, d.config.CommandTimeout)

	if err != nil {
		return false, fmt.Sprintf("%v", err)
	}

	res := result.(dispatchResult)
	return res.ok, res.message
}

func (d *Deck) setupInterruptHandler() {
	interruptChannel := util.SetupCloseHandler()

	go func() {
		signal := <-interruptChannel
		d.logger.Debugw("Interrupt received", "signal", signal)
		d.signalStop()
	}()
}

func (d *Deck) run() {
	d.logger.Info("Run loop starting")

	go d.config.WatchConfigFileChanges()
	go d.pollLoop()

	<-d.stopChannel
	d.logger.Debug("Stop signal received")

	if err := d.stop(); err != nil {
		d.logger.Warnw("Error during shutdown", "error", err)
		os.Exit(1)
	}

	os.Exit(0)
}

// pollLoop drives the fixed-rate query cycle: fetch a snapshot, feed the
// automation engine, fan the snapshot out to subscribers.
func (d *Deck) pollLoop() {
	defer d.recoverFromPanic()

	configReloadedChannel := d.config.SubscribeToChanges()

	// Initial query before the first tick so the UI isn't stuck on
	// "Nothing playing" for a full interval, and so the automation engine
	// has a baseline track key.
	snapshot := d.Poll()
	d.automation.OnPoll(snapshot.TrackKey())
	d.publishSnapshot(snapshot)

	ticker := time.NewTicker(d.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			snapshot := d.Poll()
			d.automation.OnPoll(snapshot.TrackKey())
			d.publishSnapshot(snapshot)

		case <-configReloadedChannel:
			d.logger.Info("Config reloaded, applying new poll interval")
			ticker.Reset(d.config.PollInterval)

		case <-d.pollStopChannel:
			d.logger.Debug("Poll loop stopped")
			return
		}
	}
}

func (d *Deck) publishSnapshot(snapshot Snapshot) {
	d.snapshotLock.Lock()
	consumers := d.snapshotConsumers
	d.snapshotLock.Unlock()

	for _, consumer := range consumers {
		select {
		case consumer <- snapshot:
		default:
		}
	}
}

func (d *Deck) signalStop() {
	d.logger.Debug("Sending stop signal")
	d.stopChannel <- true
}

func (d *Deck) stop() error {
	d.logger.Info("Shutting down mediadeck")

	close(d.pollStopChannel)
	d.config.StopWatchingConfigFile()
	d.bridge.Stop()
	d.locator.Release()

	d.stopTray()
	d.logger.Sync()
	return nil
}
