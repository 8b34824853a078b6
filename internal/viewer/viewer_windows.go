//go:build windows

package viewer

func newPlatformOpener() Opener {
	return NewWindowsOpener()
}
