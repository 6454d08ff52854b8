//go:build !windows

package mediadeck

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// unsupportedSessionProvider stands in on platforms without a system media
// transport controls API. Construction succeeds so the rest of the app can
// run and show its empty state; acquisition always fails and the locator
// degrades to "no session".
type unsupportedSessionProvider struct {
	logger *zap.SugaredLogger
}

func newSessionProvider(logger *zap.SugaredLogger) (SessionProvider, error) {
	logger = logger.Named("smtc")
	logger.Warnw("Media sessions are not supported on this platform", "os", runtime.GOOS)

	return &unsupportedSessionProvider{logger: logger}, nil
}

func (p *unsupportedSessionProvider) AcquireManager() (SessionManager, error) {
	return nil, fmt.Errorf("media sessions are not supported on %s", runtime.GOOS)
}
