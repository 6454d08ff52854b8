package mediadeck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDeck wires a Deck around a scripted manager, skipping the platform
// provider and the tray.
func newTestDeck(t *testing.T, manager SessionManager) *Deck {
	t.Helper()

	logger := nopLogger()
	config := &CanonicalConfig{
		PollInterval:   time.Second,
		QueryTimeout:   time.Second,
		CommandTimeout: time.Second,
	}

	d := &Deck{
		logger:          logger,
		config:          config,
		stopChannel:     make(chan bool),
		pollStopChannel: make(chan struct{}),
		lastSnapshot:    emptySnapshot(),
	}

	d.bridge = NewAsyncBridge(logger)
	t.Cleanup(d.bridge.Stop)

	d.locator = locatorFor(manager)
	d.dispatcher = newCommandDispatcher(logger, d.locator)
	d.fetcher = newSnapshotFetcher(logger, d.locator, newThumbnailDecoder(logger, config))
	d.automation = newAutomationEngine(logger, config, d.dispatchOnBridge)

	return d
}

func TestDeckDispatchUnknownAction(t *testing.T) {
	d := newTestDeck(t, &fakeManager{})

	ok, message := d.Dispatch(Action("bogus"))

	assert.False(t, ok)
	assert.Equal(t, "Unknown action: bogus", message)
}

func TestDeckDispatchRoutesThroughBridge(t *testing.T) {
	session := &fakeSession{
		info:       PlaybackInfo{ToggleEnabled: true},
		commandAck: true,
	}
	d := newTestDeck(t, &fakeManager{current: session})

	ok, message := d.Dispatch(ActionPlayPause)

	assert.True(t, ok)
	assert.Equal(t, "Toggled Play/Pause", message)
}

func TestDeckPollUpdatesLastSnapshot(t *testing.T) {
	session := &fakeSession{
		sourceApp: "player.exe",
		props:     MediaProperties{Title: "Song", Artist: "Artist"},
		info:      PlaybackInfo{Status: StatusPlaying, ToggleEnabled: true},
	}
	d := newTestDeck(t, &fakeManager{current: session})

	snapshot := d.Poll()

	assert.Equal(t, "Song", snapshot.Title)
	assert.True(t, snapshot.IsPlaying)
	assert.Equal(t, snapshot, d.LastSnapshot())
}

func TestDeckPollKeepsLastSnapshotOnTimeout(t *testing.T) {
	d := newTestDeck(t, &slowManager{delay: 200 * time.Millisecond})
	d.config.QueryTimeout = 10 * time.Millisecond

	snapshot := d.Poll()

	assert.Equal(t, emptySnapshot(), snapshot)
	assert.Equal(t, emptySnapshot(), d.LastSnapshot())
}

func TestDeckSnapshotSubscription(t *testing.T) {
	session := &fakeSession{props: MediaProperties{Title: "Song"}}
	d := newTestDeck(t, &fakeManager{current: session})

	consumer := d.SubscribeToSnapshots()

	snapshot := d.Poll()
	d.publishSnapshot(snapshot)

	select {
	case received := <-consumer:
		assert.Equal(t, "Song", received.Title)
	default:
		t.Fatal("expected a published snapshot")
	}

	// A slow consumer misses frames instead of blocking the poll loop.
	d.publishSnapshot(snapshot)
	d.publishSnapshot(snapshot)
}

func TestDeckSubscribeWhilePublishing(t *testing.T) {
	d := newTestDeck(t, &fakeManager{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			d.publishSnapshot(emptySnapshot())
		}
	}()

	for i := 0; i < 20; i++ {
		d.SubscribeToSnapshots()
	}
	<-done
}

func TestDeckToggleAutomation(t *testing.T) {
	d := newTestDeck(t, &fakeManager{})

	require.True(t, d.ToggleAutomation())
	require.False(t, d.ToggleAutomation())
}

// slowManager simulates an OS query that outlives the bounded wait.
type slowManager struct {
	fakeManager
	delay time.Duration
}

func (m *slowManager) CurrentSession() (MediaSession, error) {
	time.Sleep(m.delay)
	return nil, nil
}
