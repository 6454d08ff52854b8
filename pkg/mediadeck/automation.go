package mediadeck

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// AutomationState is the full state of the delay-mode automation, kept as one
// explicit value so the transition rules below stay pure and testable.
//
// Invariant: ResumeAt is non-zero if and only if the automation is Armed
// (playback was auto-paused and a resume timer is pending).
type AutomationState struct {
	Enabled bool

	// LastTrackKey is the key observed on the previous poll; Primed is false
	// until the first poll establishes a baseline.
	LastTrackKey string
	Primed       bool

	ResumeAt time.Time

	// IgnoreNextChange suppresses the pause/arm logic for exactly one
	// detected track change, so a user-initiated skip is not mistaken for an
	// external track change.
	IgnoreNextChange bool
}

// Armed reports whether a resume timer is pending.
func (st AutomationState) Armed() bool {
	return !st.ResumeAt.IsZero()
}

// advanceOnPoll evaluates one poll tick against the state machine and
// returns the new state plus any transport commands to issue (best-effort).
func advanceOnPoll(st AutomationState, trackKey string, now time.Time, delay time.Duration) (AutomationState, []Action) {
	var commands []Action

	if !st.Primed {
		st.Primed = true
		st.LastTrackKey = trackKey
	} else if trackKey != st.LastTrackKey {
		if st.Enabled && !st.IgnoreNextChange {
			// External track change: pause and arm the resume timer. The
			// timer arms even if the pause later fails downstream.
			commands = append(commands, ActionPause)
			st.ResumeAt = now.Add(delay)
		}

		// The override flag covers exactly one change.
		st.IgnoreNextChange = false
		st.LastTrackKey = trackKey
	}

	if st.Enabled && st.Armed() && !now.Before(st.ResumeAt) {
		commands = append(commands, ActionPlay)
		st.ResumeAt = time.Time{}
	}

	return st, commands
}

// advanceOnSkip applies the override rules for a user-issued next/prev.
// Must run before the skip command is dispatched. The returned playAfter
// tells the caller to issue an immediate play once the skip completes - the
// user does not want to wait out a pending delay on a track they chose.
func advanceOnSkip(st AutomationState) (AutomationState, bool) {
	if !st.Enabled {
		return st, false
	}

	playAfter := st.Armed()
	st.IgnoreNextChange = true
	st.ResumeAt = time.Time{}

	return st, playAfter
}

// advanceOnPlayPause cancels a pending resume timer when the user manually
// resumes paused playback, so the manual action is not overridden later.
func advanceOnPlayPause(st AutomationState, isPlaying bool) AutomationState {
	if st.Enabled && st.Armed() && !isPlaying {
		st.ResumeAt = time.Time{}
	}
	return st
}

// advanceOnToggle flips delay mode. Both directions reset the timer and the
// override flag; enabling never arms by itself - arming only happens on the
// next detected track change.
func advanceOnToggle(st AutomationState) AutomationState {
	st.Enabled = !st.Enabled
	st.ResumeAt = time.Time{}
	st.IgnoreNextChange = false
	return st
}

// automationEngine drives the delay-mode state machine off poll ticks and
// user actions, issuing best-effort pause/play commands through its sink.
type automationEngine struct {
	logger   *zap.SugaredLogger
	config   *CanonicalConfig
	dispatch func(Action) (bool, string)
	now      func() time.Time

	lock  sync.Mutex
	state AutomationState
}

func newAutomationEngine(logger *zap.SugaredLogger, config *CanonicalConfig, dispatch func(Action) (bool, string)) *automationEngine {
	e := &automationEngine{
		logger:   logger.Named("automation"),
		config:   config,
		dispatch: dispatch,
		now:      time.Now,
	}

	e.logger.Debug("Created automation engine instance")
	return e
}

func (e *automationEngine) delay() time.Duration {
	if e.config != nil && e.config.AutomationDelay > 0 {
		return e.config.AutomationDelay
	}
	return defaultAutomationDelay
}

// OnPoll feeds one fresh track key into the state machine and executes
// whatever commands the transition emits. Command failures are logged only.
func (e *automationEngine) OnPoll(trackKey string) {
	e.lock.Lock()
	state, commands := advanceOnPoll(e.state, trackKey, e.now(), e.delay())
	e.state = state
	e.lock.Unlock()

	for _, command := range commands {
		ok, message := e.dispatch(command)
		if !ok {
			e.logger.Warnw("Automation command failed", "command", command, "message", message)
		} else {
			e.logger.Debugw("Automation command issued", "command", command, "message", message)
		}
	}
}

// BeforeUserAction applies the override rules for a user transport action
// prior to dispatching it. Returns true when the caller should follow a
// completed skip with ResumePlayback.
func (e *automationEngine) BeforeUserAction(action Action, isPlaying bool) (playAfter bool) {
	e.lock.Lock()
	defer e.lock.Unlock()

	switch action {
	case ActionNext, ActionPrev:
		e.state, playAfter = advanceOnSkip(e.state)
	case ActionPlayPause:
		e.state = advanceOnPlayPause(e.state, isPlaying)
	}

	return playAfter
}

// ResumePlayback issues the immediate play that follows a user skip which
// canceled a pending timer.
func (e *automationEngine) ResumePlayback() {
	ok, message := e.dispatch(ActionPlay)
	if !ok {
		e.logger.Warnw("Resume after user skip failed", "message", message)
	}
}

// Toggle flips delay mode and returns the new enabled state.
func (e *automationEngine) Toggle() bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.state = advanceOnToggle(e.state)
	e.logger.Infow("Delay mode toggled", "enabled", e.state.Enabled)

	return e.state.Enabled
}

// Enabled reports whether delay mode is active.
func (e *automationEngine) Enabled() bool {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.state.Enabled
}

// Progress returns the remaining time until auto-resume while Armed.
func (e *automationEngine) Progress() (time.Duration, bool) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if !e.state.Enabled || !e.state.Armed() {
		return 0, false
	}

	remaining := e.state.ResumeAt.Sub(e.now())
	if remaining < 0 {
		remaining = 0
	}

	return remaining, true
}
