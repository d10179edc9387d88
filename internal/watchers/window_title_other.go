//go:build !windows

package watchers

// ActiveWindowTitle returns "" on platforms without a foreground-window
// accessor; the window watcher then never dispatches
func ActiveWindowTitle() string {
	return ""
}
