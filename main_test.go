package main

import (
	"io"
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCmdRejectsArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"positional", []string{"extra"}},
		{"several", []string{"cpu_usage.png", "now"}},
		{"unknown flag", []string{"--interval=1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			ran := false
			cmd.RunE = nil
			cmd.Run = func(*cobra.Command, []string) { ran = true }
			cmd.SetArgs(tt.args)
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)

			if err := cmd.Execute(); err == nil {
				t.Fatalf("Execute(%q) succeeded, want error", tt.args)
			}
			if ran {
				t.Error("command ran despite invalid arguments")
			}
		})
	}
}

func TestRootCmdHelp(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--help"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute(--help) error = %v", err)
	}
}
