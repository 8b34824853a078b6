//go:build darwin

package viewer

func newPlatformOpener() Opener {
	return NewMacOpener()
}
