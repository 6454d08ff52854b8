package mediadeck

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetcherFor(session MediaSession) *snapshotFetcher {
	locator := locatorFor(&fakeManager{current: session})
	decoder := newThumbnailDecoder(nopLogger(), nil)
	return newSnapshotFetcher(nopLogger(), locator, decoder)
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFetchWithoutSessions(t *testing.T) {
	fetcher := newSnapshotFetcher(nopLogger(),
		locatorFor(&fakeManager{}),
		newThumbnailDecoder(nopLogger(), nil))

	snapshot := fetcher.Fetch()

	assert.Equal(t, "Nothing playing", snapshot.Title)
	assert.Empty(t, snapshot.Artist)
	assert.False(t, snapshot.IsPlaying)
	assert.Nil(t, snapshot.Cover)
}

func TestFetchPopulatesSnapshot(t *testing.T) {
	session := &fakeSession{
		sourceApp: "Spotify.exe",
		props: MediaProperties{
			Title:        "Paranoid Android",
			Artist:       "Radiohead",
			HasThumbnail: true,
		},
		info: PlaybackInfo{
			Status:        StatusPlaying,
			ToggleEnabled: true,
			NextEnabled:   true,
		},
		thumbnail: encodePNG(t, 4, 4),
	}

	snapshot := fetcherFor(session).Fetch()

	assert.Equal(t, "Paranoid Android", snapshot.Title)
	assert.Equal(t, "Radiohead", snapshot.Artist)
	assert.Equal(t, "Spotify.exe", snapshot.Source)
	assert.True(t, snapshot.IsPlaying)
	assert.True(t, snapshot.HasThumbnail)
	assert.Equal(t, Capabilities{PlayPause: true, Next: true, Prev: false}, snapshot.Capabilities)

	require.NotNil(t, snapshot.Cover)
	assert.Equal(t, 4, snapshot.Cover.Width)
	assert.Equal(t, 4, snapshot.Cover.Height)
}

func TestFetchFallsBackToAlbumArtist(t *testing.T) {
	session := &fakeSession{
		props: MediaProperties{Title: "Intro", AlbumArtist: "The xx"},
	}

	snapshot := fetcherFor(session).Fetch()

	assert.Equal(t, "The xx", snapshot.Artist)
}

func TestFetchDefaultsTitleWhenMetadataFails(t *testing.T) {
	session := &fakeSession{
		propsErr: errors.New("metadata query failed"),
		info:     PlaybackInfo{Status: StatusPlaying},
	}

	snapshot := fetcherFor(session).Fetch()

	assert.Equal(t, "Unknown Title", snapshot.Title)
	assert.True(t, snapshot.IsPlaying)
}

func TestFetchDefaultsTitleWhenEmpty(t *testing.T) {
	session := &fakeSession{props: MediaProperties{Title: ""}}

	snapshot := fetcherFor(session).Fetch()

	assert.Equal(t, "Unknown Title", snapshot.Title)
}

func TestFetchKeepsControlsOnCapabilityFailure(t *testing.T) {
	session := &fakeSession{
		props:   MediaProperties{Title: "Song"},
		infoErr: errors.New("capability query failed"),
	}

	snapshot := fetcherFor(session).Fetch()

	assert.Equal(t, Capabilities{PlayPause: true, Next: true, Prev: true}, snapshot.Capabilities)
	assert.False(t, snapshot.IsPlaying)
}

func TestFetchDegradesToNoCover(t *testing.T) {
	session := &fakeSession{
		props:    MediaProperties{Title: "Song", HasThumbnail: true},
		thumbErr: errors.New("stream unavailable"),
	}

	snapshot := fetcherFor(session).Fetch()

	assert.Nil(t, snapshot.Cover)
	assert.True(t, snapshot.HasThumbnail)
}

func TestTrackKeyChangesWithIdentity(t *testing.T) {
	base := Snapshot{Title: "Song", Artist: "Artist", Source: "app.exe"}

	sameTrack := Snapshot{Title: "Song", Artist: "Artist", Source: "app.exe", IsPlaying: true}
	assert.Equal(t, base.TrackKey(), sameTrack.TrackKey())

	differentTitle := Snapshot{Title: "Other", Artist: "Artist", Source: "app.exe"}
	assert.NotEqual(t, base.TrackKey(), differentTitle.TrackKey())

	differentSource := Snapshot{Title: "Song", Artist: "Artist", Source: "other.exe"}
	assert.NotEqual(t, base.TrackKey(), differentSource.TrackKey())
}
