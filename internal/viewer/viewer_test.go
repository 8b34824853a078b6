package viewer

import (
	"errors"
	"os/exec"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"
)

type recorder struct {
	cmds []*exec.Cmd
	err  error
}

func (r *recorder) start(cmd *exec.Cmd) error {
	r.cmds = append(r.cmds, cmd)
	return r.err
}

func TestOpenersSpawnOneProcess(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *command
		wantBase string
		wantArgs []string
	}{
		{"windows", &NewWindowsOpener().command, "cmd", []string{"/C", "start", "cpu_usage.png"}},
		{"linux", &NewLinuxOpener().command, "xdg-open", []string{"cpu_usage.png"}},
		{"mac", &NewMacOpener().command, "open", []string{"cpu_usage.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			tt.cmd.start = rec.start

			if err := tt.cmd.open("cpu_usage.png"); err != nil {
				t.Fatalf("open() error = %v", err)
			}

			if len(rec.cmds) != 1 {
				t.Fatalf("spawned %d processes, want 1", len(rec.cmds))
			}
			got := rec.cmds[0]
			if base := filepath.Base(got.Args[0]); base != tt.wantBase {
				t.Errorf("program = %q, want %q", base, tt.wantBase)
			}
			if !reflect.DeepEqual(got.Args[1:], tt.wantArgs) {
				t.Errorf("args = %q, want %q", got.Args[1:], tt.wantArgs)
			}
			if got.Args[len(got.Args)-1] != "cpu_usage.png" {
				t.Errorf("path is not the final argument: %q", got.Args)
			}
		})
	}
}

func TestOpenDoesNotMutateBaseArgs(t *testing.T) {
	o := NewWindowsOpener()
	rec := &recorder{}
	o.start = rec.start

	_ = o.Open("a.png")
	_ = o.Open("b.png")

	if !reflect.DeepEqual(o.args, []string{"/C", "start"}) {
		t.Errorf("base args changed to %q", o.args)
	}
	if last := rec.cmds[1].Args; last[len(last)-1] != "b.png" || len(last) != 4 {
		t.Errorf("second invocation args = %q", last)
	}
}

func TestOpenStartFailure(t *testing.T) {
	o := NewLinuxOpener()
	o.start = (&recorder{err: errors.New("no such file")}).start

	if err := o.Open("cpu_usage.png"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestOpenDoesNotWait(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("sleep is not available on windows")
	}
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not found")
	}

	c := command{name: "sleep"}
	start := time.Now()
	if err := c.open("5"); err != nil {
		t.Fatalf("open() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("open blocked for %v", elapsed)
	}
}

func TestNewOpenerMatchesPlatform(t *testing.T) {
	o := NewOpener()

	var ok bool
	switch runtime.GOOS {
	case "linux":
		_, ok = o.(*LinuxOpener)
	case "windows":
		_, ok = o.(*WindowsOpener)
	case "darwin":
		_, ok = o.(*MacOpener)
	default:
		t.Skipf("no viewer for %s", runtime.GOOS)
	}
	if !ok {
		t.Errorf("NewOpener() = %T on %s", o, runtime.GOOS)
	}
}
