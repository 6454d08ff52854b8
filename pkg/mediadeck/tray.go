package mediadeck

import (
	"fmt"
	"time"

	"github.com/getlantern/systray"
	"go.uber.org/zap"

	"github.com/retr0680/mediadeck/pkg/mediadeck/icon"
	"github.com/retr0680/mediadeck/pkg/mediadeck/util"
)

const (
	editConfigTitle   = "Edit configuration"
	editConfigTooltip = "Open config file with your editor"

	refreshSessionsTitle   = "Re-scan media sessions"
	refreshSessionsTooltip = "Manually refresh media sessions if something's stuck"

	delayModeTitle   = "Delay mode"
	delayModeTooltip = "Pause on track change and auto-resume after the configured delay"

	quitTitle   = "Quit"
	quitTooltip = "Stop mediadeck and quit"

	// How often the delay-mode countdown in the menu refreshes.
	trayCountdownInterval = time.Second
)

func (d *Deck) initializeTray(onDone func()) {
	logger := d.logger.Named("tray")

	onReady := func() {
		logger.Debug("Tray instance ready")

		systray.SetTemplateIcon(icon.DeckLogo, icon.DeckLogo)
		systray.SetTitle("mediadeck")
		systray.SetTooltip("mediadeck")

		editConfig := systray.AddMenuItem(editConfigTitle, editConfigTooltip)
		refreshSessions := systray.AddMenuItem(refreshSessionsTitle, refreshSessionsTooltip)
		delayMode := systray.AddMenuItemCheckbox(delayModeTitle, delayModeTooltip, false)

		if d.version != "" {
			systray.AddSeparator()
			versionInfo := systray.AddMenuItem(d.version, "")
			versionInfo.Disable()
		}

		systray.AddSeparator()
		quit := systray.AddMenuItem(quitTitle, quitTooltip)

		go d.handleTrayActions(logger, editConfig, refreshSessions, delayMode, quit)

		onDone()
	}

	onExit := func() {
		logger.Debug("Tray exited")
	}

	logger.Debug("Running in tray")
	systray.Run(onReady, onExit)
}

func (d *Deck) handleTrayActions(logger *zap.SugaredLogger, editConfig, refreshSessions, delayMode, quit *systray.MenuItem) {
	countdown := time.NewTicker(trayCountdownInterval)
	defer countdown.Stop()

	for {
		select {
		case <-quit.ClickedCh:
			logger.Info("Quit menu item clicked, stopping")
			d.signalStop()

		case <-editConfig.ClickedCh:
			logger.Info("Edit config menu item clicked, opening config for editing")

			if err := util.OpenExternal(logger, getEditor(), userConfigFilepath); err != nil {
				logger.Warnw("Failed to open config file for editing", "error", err)
			}

		case <-refreshSessions.ClickedCh:
			logger.Info("Refresh sessions menu item clicked, re-acquiring session manager")
			ok, message := d.Dispatch(ActionRefresh)
			logger.Debugw("Refresh dispatched", "ok", ok, "message", message)

		case <-delayMode.ClickedCh:
			enabled := d.ToggleAutomation()
			logger.Infow("Delay mode menu item clicked", "enabled", enabled)

			if enabled {
				delayMode.Check()
			} else {
				delayMode.Uncheck()
				delayMode.SetTitle(delayModeTitle)
			}

		case <-countdown.C:
			if remaining, armed := d.AutomationProgress(); armed {
				delayMode.SetTitle(fmt.Sprintf("%s (resume in %s)", delayModeTitle, util.FormatMinSec(remaining)))
			} else if d.automation.Enabled() {
				delayMode.SetTitle(delayModeTitle)
			}
		}
	}
}

func getEditor() string {
	if util.Windows() {
		return "notepad.exe"
	}
	return "xdg-open"
}

func (d *Deck) stopTray() {
	d.logger.Debug("Quitting tray")
	systray.Quit()
}
