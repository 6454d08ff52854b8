//go:build windows

package util

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
	"github.com/mitchellh/go-ps"
)

const (
	// Cooldown duration to avoid frequent calls to GetCurrentWindowProcessNames.
	getCurrentWindowInternalCooldown = time.Millisecond * 350
)

var (
	// Cache the result and the last call timestamp to avoid frequent API calls.
	lastGetCurrentWindowResult []string
	lastGetCurrentWindowCall   = time.Now()
)

// getCurrentWindowProcessNames retrieves the process names of the currently focused window and its
// child windows (if applicable), considering UWP apps and processes running in container apps.
func getCurrentWindowProcessNames() ([]string, error) {
	now := time.Now()
	if lastGetCurrentWindowCall.Add(getCurrentWindowInternalCooldown).After(now) {
		return lastGetCurrentWindowResult, nil
	}

	lastGetCurrentWindowCall = now

	var result []string

	// Callback function for enumerating child windows of the foreground window.
	enumChildWindowsCallback := func(childHWND *uintptr, lParam *uintptr) uintptr {
		ownerPID := (*uint32)(unsafe.Pointer(lParam))

		var childPID uint32
		win.GetWindowThreadProcessId((win.HWND)(unsafe.Pointer(childHWND)), &childPID)

		if childPID != *ownerPID {
			processName, err := getProcessNameByPID(childPID)
			if err != nil {
				return 1 // Continue enumerating child windows
			}
			result = append(result, processName)
		}

		return 1
	}

	hwnd := win.GetForegroundWindow()
	var ownerPID uint32
	win.GetWindowThreadProcessId(hwnd, &ownerPID)

	// PID 0 is the system idle process; nothing useful to resolve.
	if ownerPID == 0 {
		return nil, nil
	}

	processName, err := getProcessNameByPID(ownerPID)
	if err != nil {
		return nil, fmt.Errorf("get parent process for PID %d: %w", ownerPID, err)
	}
	result = append(result, processName)

	win.EnumChildWindows(hwnd, syscall.NewCallback(enumChildWindowsCallback), (uintptr)(unsafe.Pointer(&ownerPID)))

	lastGetCurrentWindowResult = result
	return result, nil
}

// getProcessNameByPID retrieves the process name of the process corresponding to the provided PID.
func getProcessNameByPID(pid uint32) (string, error) {
	process, err := ps.FindProcess(int(pid))
	if err != nil {
		return "", fmt.Errorf("find process for PID %d: %w", pid, err)
	}
	if process == nil {
		return "", fmt.Errorf("no process found for PID %d", pid)
	}
	return process.Executable(), nil
}
