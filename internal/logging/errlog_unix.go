//go:build !windows

package logging

import "os"

// shareLogFile opens the log to every user so servers running under other
// accounts can append to it. The umask would otherwise strip group/other
// write.
func shareLogFile(path string) {
	_ = os.Chmod(path, 0o666)
}
