//go:build !windows

package util

import (
	"fmt"
	"runtime"
)

// getCurrentWindowProcessNames returns the process names of the current foreground window.
// Only implemented for Windows; other platforms report an error the caller degrades on.
func getCurrentWindowProcessNames() ([]string, error) {
	return nil, fmt.Errorf("getCurrentWindowProcessNames is only supported on Windows, current OS: %s", runtime.GOOS)
}
