package mediadeck

import (
	"fmt"

	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

// Action is one transport command from the widget's vocabulary.
type Action string

const (
	ActionPlay      Action = "play"
	ActionPause     Action = "pause"
	ActionPlayPause Action = "play_pause"
	ActionNext      Action = "next"
	ActionPrev      Action = "prev"
	ActionRefresh   Action = "refresh"
)

var knownActions = []string{
	string(ActionPlay),
	string(ActionPause),
	string(ActionPlayPause),
	string(ActionNext),
	string(ActionPrev),
	string(ActionRefresh),
}

// KnownAction reports whether the given action belongs to the dispatch vocabulary.
func KnownAction(action Action) bool {
	return funk.ContainsString(knownActions, string(action))
}

// commandDispatcher translates the action vocabulary into session calls,
// respecting advertised capability flags. It never raises past its boundary:
// every failure, including panics from the OS API surface, becomes a
// (false, reason) result.
type commandDispatcher struct {
	logger  *zap.SugaredLogger
	locator *sessionLocator
}

func newCommandDispatcher(logger *zap.SugaredLogger, locator *sessionLocator) *commandDispatcher {
	d := &commandDispatcher{
		logger:  logger.Named("dispatch"),
		locator: locator,
	}

	d.logger.Debug("Created command dispatcher instance")
	return d
}

// Dispatch performs one action against the best current session.
func (d *commandDispatcher) Dispatch(action Action) (succeeded bool, message string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorw("Recovered from panic during dispatch", "action", action, "panic", r)
			succeeded, message = false, fmt.Sprintf("%v", r)
		}
	}()

	if action == ActionRefresh {
		if err := d.locator.Refresh(); err != nil {
			return false, fmt.Sprintf("%T: %v", err, err)
		}
		return true, "Refreshed sessions"
	}

	session := d.locator.Select()
	if session == nil {
		return false, "No media sessions detected"
	}

	switch action {
	case ActionPlayPause:
		return d.dispatchPlayPause(session)

	case ActionPlay:
		return resultMessage(session.Play())("Play", "Play failed")

	case ActionPause:
		return resultMessage(session.Pause())("Pause", "Pause failed")

	case ActionNext:
		info, err := session.PlaybackInfo()
		if err == nil && !info.NextEnabled {
			return false, "Next not supported for this content"
		}
		return resultMessage(session.SkipNext())("Next", "Skip next failed")

	case ActionPrev:
		info, err := session.PlaybackInfo()
		if err == nil && !info.PreviousEnabled {
			return false, "Previous not supported for this content"
		}
		return resultMessage(session.SkipPrevious())("Previous", "Skip previous failed")

	default:
		return false, fmt.Sprintf("Unknown action: %s", action)
	}
}

// dispatchPlayPause prefers the session's combined toggle when it advertises
// one, otherwise branches on the capability flags and current status.
func (d *commandDispatcher) dispatchPlayPause(session MediaSession) (bool, string) {
	info, err := session.PlaybackInfo()
	if err != nil {
		// Capability query failed; be permissive and attempt the toggle.
		return resultMessage(session.TogglePlayPause())("Toggled Play/Pause", "Toggle Play/Pause failed")
	}

	if info.ToggleEnabled {
		return resultMessage(session.TogglePlayPause())("Toggled Play/Pause", "Toggle Play/Pause failed")
	}

	if !info.PlayEnabled && !info.PauseEnabled {
		return false, "Play/Pause not supported by this app/content"
	}

	if info.Status == StatusPlaying && info.PauseEnabled {
		return resultMessage(session.Pause())("Pause", "Pause failed")
	}
	if info.PlayEnabled {
		return resultMessage(session.Play())("Play", "Play failed")
	}

	return false, "Play/Pause currently disabled"
}

// resultMessage folds an (acknowledged, error) command result into the
// dispatcher's (bool, message) contract.
func resultMessage(ok bool, err error) func(okMsg, failMsg string) (bool, string) {
	return func(okMsg, failMsg string) (bool, string) {
		if err != nil {
			return false, fmt.Sprintf("%T: %v", err, err)
		}
		if !ok {
			return false, failMsg
		}
		return true, okMsg
	}
}
