package mediadeck

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/retr0680/mediadeck/pkg/mediadeck/util"
)

const (
	crashlogFilename        = "mediadeck-crash-%s.log"
	crashlogTimestampFormat = "2006.01.02-15.04.05"
	crashMessageTemplate    = `-----------------------------------------------------------------
                      mediadeck crashlog
-----------------------------------------------------------------
Unfortunately, mediadeck has crashed. This really shouldn't happen!
If you've just encountered this, please open an issue and attach
this error log.
-----------------------------------------------------------------
Time: %s
Panic occurred: %s
Stack trace:
%s
-----------------------------------------------------------------
`
)

// recoverFromPanic handles application panics, logs the error, and attempts to shut down gracefully.
func (d *Deck) recoverFromPanic() {
	if r := recover(); r != nil {
		d.handlePanic(r)
	}
}

// handlePanic logs the panic details, writes a crash log file, and notifies the user.
func (d *Deck) handlePanic(recoverValue interface{}) {
	now := time.Now()
	crashlogPath := filepath.Join(LogDirectory, fmt.Sprintf(crashlogFilename, now.Format(crashlogTimestampFormat)))

	crashLogContent := d.createCrashLogContent(now, recoverValue)

	if err := util.EnsureDirExists(LogDirectory); err != nil {
		panic(fmt.Errorf("create log directory: %w", err))
	}

	if err := os.WriteFile(crashlogPath, crashLogContent, 0644); err != nil {
		panic(fmt.Errorf("write crash log: %w", err))
	}

	d.logger.Errorw("Application panic encountered",
		"crashlogPath", crashlogPath,
		"error", recoverValue)

	d.notifier.Notify("Unexpected crash occurred",
		fmt.Sprintf("Details logged to: %s", crashlogPath))

	d.signalStop()

	d.logger.Errorw("Exiting due to panic", "exitCode", 1)
	os.Exit(1)
}

// createCrashLogContent generates the formatted crash log content.
func (d *Deck) createCrashLogContent(timestamp time.Time, recoverValue interface{}) []byte {
	return []byte(fmt.Sprintf(crashMessageTemplate,
		timestamp.Format(crashlogTimestampFormat),
		recoverValue,
		debug.Stack(),
	))
}
