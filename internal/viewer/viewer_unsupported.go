//go:build !linux && !windows && !darwin

package viewer

import "fmt"

// UnsupportedOpener is a fallback for unsupported platforms
type UnsupportedOpener struct{}

func newPlatformOpener() Opener {
	return &UnsupportedOpener{}
}

// Open returns an error for unsupported platforms
func (o *UnsupportedOpener) Open(path string) error {
	return fmt.Errorf("opening images not supported on this platform")
}
