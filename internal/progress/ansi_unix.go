//go:build !windows
// +build !windows

package progress

import "os"

// enableANSIOnWindows is a no-op on non-Windows platforms where ANSI
// escape sequences work natively.
func enableANSIOnWindows(f *os.File) {
}
