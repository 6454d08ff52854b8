package mediadeck

import "io"

// PlaybackStatus mirrors the playback state reported by the OS media session.
type PlaybackStatus int

const (
	StatusClosed PlaybackStatus = iota
	StatusOpened
	StatusChanging
	StatusStopped
	StatusPlaying
	StatusPaused
)

// String returns a human-readable playback status name.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusClosed:
		return "closed"
	case StatusOpened:
		return "opened"
	case StatusChanging:
		return "changing"
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	}
	return "unknown"
}

// Capabilities holds the transport controls a session advertises. Absence of
// a signal defaults to allowed, so queries that fail upstream should fill
// these with true rather than lock the user out of the controls.
type Capabilities struct {
	PlayPause bool
	Next      bool
	Prev      bool
}

// PlaybackInfo is one read of a session's transport state.
type PlaybackInfo struct {
	Status PlaybackStatus

	// Raw capability flags as advertised by the session.
	PlayEnabled     bool
	PauseEnabled    bool
	ToggleEnabled   bool
	NextEnabled     bool
	PreviousEnabled bool
}

// MediaProperties is one read of a session's track metadata.
type MediaProperties struct {
	Title       string
	Artist      string
	AlbumArtist string

	// HasThumbnail reports whether the session exposes a thumbnail
	// reference at all.
	HasThumbnail bool
}

// MediaSession is one media-producing application's playback context.
//
// Handles are borrowed and possibly stale - the underlying app may stop or
// change state between polls, so callers re-acquire a session every cycle
// and treat every method as fallible.
type MediaSession interface {
	// SourceAppID returns the owning application's identifier
	// (e.g. "Spotify.exe" or a browser app user model ID).
	SourceAppID() (string, error)

	// PlaybackInfo returns the session's current transport state and
	// capability flags.
	PlaybackInfo() (PlaybackInfo, error)

	// MediaProperties returns the session's current track metadata.
	MediaProperties() (MediaProperties, error)

	// OpenThumbnail opens the session's thumbnail stream for reading.
	// Returns (nil, nil) when the session exposes no thumbnail reference.
	OpenThumbnail() (io.ReadCloser, error)

	// Transport commands. The bool result is the OS acknowledgment - false
	// means the session refused the command without raising an error.
	Play() (bool, error)
	Pause() (bool, error)
	TogglePlayPause() (bool, error)
	SkipNext() (bool, error)
	SkipPrevious() (bool, error)

	// Release frees any resources held by the session handle.
	Release()
}

// SessionManager is the OS registry of live media sessions.
type SessionManager interface {
	// CurrentSession returns the OS's own notion of the "current" session,
	// or nil if it has none.
	CurrentSession() (MediaSession, error)

	// Sessions enumerates all live sessions.
	Sessions() ([]MediaSession, error)

	// Release frees the manager handle.
	Release()
}

// SessionProvider acquires manager handles from the OS media-session API.
// Exactly one live manager exists per process; the locator owns it and
// replaces (never mutates) it on failure or explicit refresh.
type SessionProvider interface {
	AcquireManager() (SessionManager, error)
}
