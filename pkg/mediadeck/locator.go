package mediadeck

import (
	"fmt"
	"strings"
	"sync"

	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	"github.com/retr0680/mediadeck/pkg/mediadeck/util"
)

// sessionLocator owns the one cached manager handle per process and picks the
// best candidate session among possibly many concurrent media apps.
type sessionLocator struct {
	logger   *zap.SugaredLogger
	provider SessionProvider
	config   *CanonicalConfig

	lock    sync.Mutex
	manager SessionManager
}

func newSessionLocator(logger *zap.SugaredLogger, provider SessionProvider, config *CanonicalConfig) *sessionLocator {
	l := &sessionLocator{
		logger:   logger.Named("locator"),
		provider: provider,
		config:   config,
	}

	l.logger.Debug("Created session locator instance")
	return l
}

// Select returns the best live session, or nil when nothing is playing.
// Selection failures are swallowed rather than raised: "no session" is a
// normal steady state for the widget, not an error. On any failure the cached
// manager handle is discarded and re-acquired exactly once before giving up
// for this cycle.
func (l *sessionLocator) Select() MediaSession {
	l.lock.Lock()
	defer l.lock.Unlock()

	session, err := l.trySelect()
	if err == nil {
		return session
	}

	l.logger.Debugw("Session selection failed, re-acquiring manager and retrying once", "error", err)
	l.dropManagerLocked()

	session, err = l.trySelect()
	if err != nil {
		l.logger.Warnw("Session selection failed after manager re-acquisition", "error", err)
		return nil
	}

	return session
}

// Refresh unconditionally discards and re-acquires the manager handle.
func (l *sessionLocator) Refresh() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.dropManagerLocked()

	if err := l.ensureManagerLocked(); err != nil {
		l.logger.Warnw("Failed to re-acquire session manager on refresh", "error", err)
		return fmt.Errorf("re-acquire session manager: %w", err)
	}

	l.logger.Debug("Session manager refreshed")
	return nil
}

// Release drops the cached manager handle.
func (l *sessionLocator) Release() {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.dropManagerLocked()
}

func (l *sessionLocator) trySelect() (MediaSession, error) {
	if err := l.ensureManagerLocked(); err != nil {
		return nil, err
	}

	current, err := l.manager.CurrentSession()
	if err != nil {
		return nil, fmt.Errorf("query current session: %w", err)
	}
	if current != nil {
		return current, nil
	}

	sessions, err := l.manager.Sessions()
	if err != nil {
		return nil, fmt.Errorf("enumerate sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	if l.config != nil && l.config.PreferForeground {
		if session := l.matchForegroundSession(sessions); session != nil {
			return session, nil
		}
	}

	// First playing session wins; a failed status query on one candidate
	// just moves us along to the next.
	for _, session := range sessions {
		info, err := session.PlaybackInfo()
		if err != nil {
			continue
		}
		if info.Status == StatusPlaying {
			return session, nil
		}
	}

	return sessions[0], nil
}

func (l *sessionLocator) ensureManagerLocked() error {
	if l.manager != nil {
		return nil
	}

	manager, err := l.provider.AcquireManager()
	if err != nil {
		return fmt.Errorf("acquire session manager: %w", err)
	}

	l.manager = manager
	l.logger.Debug("Acquired session manager handle")
	return nil
}

func (l *sessionLocator) dropManagerLocked() {
	if l.manager != nil {
		l.manager.Release()
		l.manager = nil
	}
}

// matchForegroundSession prefers a session owned by the process of the
// current foreground window. Best-effort: any failure falls back to the
// regular selection order.
func (l *sessionLocator) matchForegroundSession(sessions []MediaSession) MediaSession {
	processNames, err := util.GetCurrentWindowProcessNames()
	if err != nil || len(processNames) == 0 {
		return nil
	}

	for i := range processNames {
		processNames[i] = strings.ToLower(processNames[i])
	}
	processNames = funk.UniqString(processNames)

	for _, session := range sessions {
		sourceApp, err := session.SourceAppID()
		if err != nil {
			continue
		}

		sourceApp = strings.ToLower(sourceApp)
		for _, name := range processNames {
			if sourceApp == name || strings.HasPrefix(sourceApp, strings.TrimSuffix(name, ".exe")) {
				l.logger.Debugw("Matched session to foreground window", "sourceApp", sourceApp)
				return session
			}
		}
	}

	return nil
}
