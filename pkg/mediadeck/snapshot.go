package mediadeck

import (
	"fmt"

	"go.uber.org/zap"
)

const unknownTitlePlaceholder = "Unknown Title"

// Snapshot is one consistent read of session metadata, capabilities, status
// and cover at a point in time. Produced fresh every poll, never mutated,
// superseded wholesale by the next poll's snapshot.
type Snapshot struct {
	Title        string
	Artist       string
	Source       string
	Capabilities Capabilities
	IsPlaying    bool
	Cover        *DecodedImage
	HasThumbnail bool
}

// TrackKey derives the change-detection identity for this snapshot. It
// carries no equality guarantee beyond "different key means the track or
// session changed between polls".
func (s Snapshot) TrackKey() string {
	return fmt.Sprintf("%s|%s|%s", s.Title, s.Artist, s.Source)
}

// emptySnapshot is what the UI shows when no media session exists.
func emptySnapshot() Snapshot {
	return Snapshot{
		Title: "Nothing playing",
	}
}

// snapshotFetcher assembles immutable now-playing snapshots from the
// currently selected session. Every sub-query degrades independently so a
// transient metadata failure never aborts the overall fetch.
type snapshotFetcher struct {
	logger  *zap.SugaredLogger
	locator *sessionLocator
	decoder *thumbnailDecoder
}

func newSnapshotFetcher(logger *zap.SugaredLogger, locator *sessionLocator, decoder *thumbnailDecoder) *snapshotFetcher {
	f := &snapshotFetcher{
		logger:  logger.Named("snapshot"),
		locator: locator,
		decoder: decoder,
	}

	f.logger.Debug("Created snapshot fetcher instance")
	return f
}

// Fetch queries the selected session and assembles a snapshot. Never fails:
// an empty session set yields the "Nothing playing" snapshot and partial
// query failures fill conservative defaults.
func (f *snapshotFetcher) Fetch() Snapshot {
	session := f.locator.Select()
	if session == nil {
		return emptySnapshot()
	}

	snapshot := Snapshot{}

	props, err := session.MediaProperties()
	if err != nil {
		f.logger.Debugw("Failed to query media properties", "error", err)
		snapshot.Title = unknownTitlePlaceholder
	} else {
		snapshot.Title = props.Title
		if snapshot.Title == "" {
			snapshot.Title = unknownTitlePlaceholder
		}

		snapshot.Artist = props.Artist
		if snapshot.Artist == "" {
			snapshot.Artist = props.AlbumArtist
		}

		snapshot.HasThumbnail = props.HasThumbnail
	}

	if source, err := session.SourceAppID(); err != nil {
		f.logger.Debugw("Failed to query source app ID", "error", err)
	} else {
		snapshot.Source = source
	}

	info, err := session.PlaybackInfo()
	if err != nil {
		// Conservative default: keep all controls enabled rather than lock
		// the user out over a transient query failure.
		f.logger.Debugw("Failed to query playback info", "error", err)
		snapshot.Capabilities = Capabilities{PlayPause: true, Next: true, Prev: true}
		snapshot.IsPlaying = false
	} else {
		snapshot.IsPlaying = info.Status == StatusPlaying
		snapshot.Capabilities = Capabilities{
			PlayPause: info.ToggleEnabled || info.PlayEnabled || info.PauseEnabled,
			Next:      info.NextEnabled,
			Prev:      info.PreviousEnabled,
		}
	}

	snapshot.Cover = f.fetchCover(session)

	return snapshot
}

// fetchCover opens and decodes the session thumbnail. Failures of any kind
// degrade to no cover.
func (f *snapshotFetcher) fetchCover(session MediaSession) *DecodedImage {
	stream, err := session.OpenThumbnail()
	if err != nil {
		f.logger.Debugw("Failed to open thumbnail stream", "error", err)
		return nil
	}

	return f.decoder.DecodeStream(stream)
}
