package viewer

import (
	"os/exec"

	"github.com/pkg/errors"
)

// Opener hands a file to the desktop's default application
type Opener interface {
	Open(path string) error
}

// NewOpener creates the opener for the platform the binary was built for
func NewOpener() Opener {
	return newPlatformOpener()
}

// starter launches a command without waiting for it
type starter func(cmd *exec.Cmd) error

// startDetached starts cmd and releases the process handle. The child keeps
// running after we return.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// command runs name with args followed by the file path
type command struct {
	name  string
	args  []string
	start starter
}

func (c command) open(path string) error {
	args := append(append([]string(nil), c.args...), path)
	cmd := exec.Command(c.name, args...)

	start := c.start
	if start == nil {
		start = startDetached
	}

	if err := start(cmd); err != nil {
		return errors.Wrapf(err, "start %s %s", c.name, path)
	}
	return nil
}

// WindowsOpener uses the shell's start builtin
type WindowsOpener struct{ command }

// NewWindowsOpener creates an opener running cmd /C start
func NewWindowsOpener() *WindowsOpener {
	return &WindowsOpener{command{name: "cmd", args: []string{"/C", "start"}}}
}

// Open launches the default viewer for path
func (o *WindowsOpener) Open(path string) error { return o.open(path) }

// LinuxOpener uses xdg-open
type LinuxOpener struct{ command }

// NewLinuxOpener creates an opener running xdg-open
func NewLinuxOpener() *LinuxOpener {
	return &LinuxOpener{command{name: "xdg-open"}}
}

// Open launches the default viewer for path
func (o *LinuxOpener) Open(path string) error { return o.open(path) }

// MacOpener uses open(1)
type MacOpener struct{ command }

// NewMacOpener creates an opener running open
func NewMacOpener() *MacOpener {
	return &MacOpener{command{name: "open"}}
}

// Open launches the default viewer for path
func (o *MacOpener) Open(path string) error { return o.open(path) }
