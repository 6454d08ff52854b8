package mediadeck

import (
	"bytes"
	"errors"
	"io"

	"go.uber.org/zap"
)

func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// fakeSession is a scriptable MediaSession that records which transport
// commands were invoked on it.
type fakeSession struct {
	sourceApp string
	sourceErr error

	info    PlaybackInfo
	infoErr error

	props    MediaProperties
	propsErr error

	thumbnail []byte
	thumbErr  error

	commandAck bool
	commandErr error

	calls    []string
	released bool
}

func (s *fakeSession) SourceAppID() (string, error) {
	return s.sourceApp, s.sourceErr
}

func (s *fakeSession) PlaybackInfo() (PlaybackInfo, error) {
	return s.info, s.infoErr
}

func (s *fakeSession) MediaProperties() (MediaProperties, error) {
	return s.props, s.propsErr
}

func (s *fakeSession) OpenThumbnail() (io.ReadCloser, error) {
	if s.thumbErr != nil {
		return nil, s.thumbErr
	}
	if s.thumbnail == nil {
		return nil, nil
	}
	return io.NopCloser(bytes.NewReader(s.thumbnail)), nil
}

func (s *fakeSession) command(name string) (bool, error) {
	s.calls = append(s.calls, name)
	return s.commandAck, s.commandErr
}

func (s *fakeSession) Play() (bool, error)            { return s.command("play") }
func (s *fakeSession) Pause() (bool, error)           { return s.command("pause") }
func (s *fakeSession) TogglePlayPause() (bool, error) { return s.command("toggle") }
func (s *fakeSession) SkipNext() (bool, error)        { return s.command("next") }
func (s *fakeSession) SkipPrevious() (bool, error)    { return s.command("prev") }

func (s *fakeSession) Release() { s.released = true }

// fakeManager is a scriptable SessionManager.
type fakeManager struct {
	current     MediaSession
	currentErr  error
	sessions    []MediaSession
	sessionsErr error

	released bool
}

func (m *fakeManager) CurrentSession() (MediaSession, error) {
	return m.current, m.currentErr
}

func (m *fakeManager) Sessions() ([]MediaSession, error) {
	return m.sessions, m.sessionsErr
}

func (m *fakeManager) Release() { m.released = true }

// fakeProvider hands out managers from a queue, so tests can script the
// result of each successive acquisition.
type fakeProvider struct {
	queue        []SessionManager
	err          error
	acquisitions int
}

func (p *fakeProvider) AcquireManager() (SessionManager, error) {
	p.acquisitions++

	if p.err != nil {
		return nil, p.err
	}
	if len(p.queue) == 0 {
		return nil, errors.New("no more managers scripted")
	}

	manager := p.queue[0]
	p.queue = p.queue[1:]
	return manager, nil
}

// locatorFor builds a locator whose provider serves the given managers in order.
func locatorFor(managers ...SessionManager) *sessionLocator {
	return newSessionLocator(nopLogger(), &fakeProvider{queue: managers}, nil)
}

// fakeNotifier records notifications instead of showing toasts.
type fakeNotifier struct {
	titles []string
}

func (n *fakeNotifier) Notify(title, message string) {
	n.titles = append(n.titles, title)
}
