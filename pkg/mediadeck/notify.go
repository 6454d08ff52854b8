package mediadeck

import (
	"os"
	"path/filepath"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"github.com/retr0680/mediadeck/pkg/mediadeck/icon"
	"github.com/retr0680/mediadeck/pkg/mediadeck/util"
)

// Notifier provides a generic interface for sending notifications.
type Notifier interface {
	Notify(title string, message string)
}

// ToastNotifier sends desktop toast notifications.
type ToastNotifier struct {
	logger *zap.SugaredLogger
}

// NewToastNotifier creates a new instance of ToastNotifier.
func NewToastNotifier(logger *zap.SugaredLogger) (*ToastNotifier, error) {
	logger = logger.Named("notifier")
	logger.Debug("Created toast notifier instance")

	return &ToastNotifier{logger: logger}, nil
}

// Notify sends a toast notification. If the notification icon is missing, it creates it dynamically.
func (tn *ToastNotifier) Notify(title, message string) {
	appIconPath := filepath.Join(os.TempDir(), "mediadeck.ico")

	if err := tn.ensureIconFile(appIconPath); err != nil {
		tn.logger.Errorw("Failed to prepare toast notification icon", "error", err)
		return
	}

	tn.logger.Infow("Sending toast notification", "title", title, "message", message)

	if err := beeep.Notify(title, message, appIconPath); err != nil {
		tn.logger.Errorw("Failed to send toast notification", "error", err)
	}
}

// ensureIconFile checks if the icon file exists, and creates it if necessary.
func (tn *ToastNotifier) ensureIconFile(path string) error {
	if util.FileExists(path) {
		return nil
	}

	tn.logger.Debugw("Icon file missing, creating", "path", path)

	if err := os.WriteFile(path, icon.DeckLogo, 0644); err != nil {
		return err
	}

	tn.logger.Debugw("Successfully created toast notification icon", "path", path)
	return nil
}
