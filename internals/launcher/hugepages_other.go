//go:build !linux && !windows

package launcher

const hugePagesName = "Huge Pages"

func (l *Launcher) hugePagesSupported() bool {
	return false
}
