//go:build linux

package viewer

func newPlatformOpener() Opener {
	return NewLinuxOpener()
}
