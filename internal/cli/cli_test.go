package cli

import (
	"bytes"
	"strings"
	"testing"
)

// TestRootHelp verifies every command is listed in the root usage.
func TestRootHelp(t *testing.T) {
	for _, arg := range []string{"--help", "-h", "help"} {
		var out, err bytes.Buffer
		if code := Run([]string{arg}, &out, &err); code != ExitOK {
			t.Fatalf("%s: expected exit %d, got %d", arg, ExitOK, code)
		}
		if err.Len() != 0 {
			t.Fatalf("%s: expected no stderr output, got %q", arg, err.String())
		}
		output := out.String()
		if !strings.Contains(output, "feedbackbot <command> [options]") {
			t.Fatalf("%s: expected usage header, got %q", arg, output)
		}
		for _, name := range []string{"run", "validate", "questions", "init"} {
			if !strings.Contains(output, "  "+name+" ") {
				t.Fatalf("%s: expected command %q in output", arg, name)
			}
		}
	}
}

// TestNoArgsShowsUsage verifies a bare invocation is a usage error.
func TestNoArgsShowsUsage(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run(nil, &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

// TestUnknownCommand verifies unknown commands print usage to stderr.
func TestUnknownCommand(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run([]string{"survey"}, &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(err.String(), "Unknown command: survey") || !strings.Contains(err.String(), "Usage:") {
		t.Fatalf("expected unknown command error with usage, got %q", err.String())
	}
}

// TestCommandHelp verifies per-command help lists its usage lines.
func TestCommandHelp(t *testing.T) {
	for _, cmd := range commands {
		var out, err bytes.Buffer
		if code := Run([]string{cmd.Name, "--help"}, &out, &err); code != ExitOK {
			t.Fatalf("%s: expected exit %d, got %d", cmd.Name, ExitOK, code)
		}
		if err.Len() != 0 {
			t.Fatalf("%s: expected no stderr output, got %q", cmd.Name, err.String())
		}
		for _, line := range append(cmd.Usage, cmd.Summary) {
			if !strings.Contains(out.String(), line) {
				t.Fatalf("%s: expected %q in help output", cmd.Name, line)
			}
		}
	}
}

// TestUnknownFlag verifies flag errors exit with a usage code.
func TestUnknownFlag(t *testing.T) {
	for _, cmd := range commands {
		var out, err bytes.Buffer
		if code := Run([]string{cmd.Name, "--bogus"}, &out, &err); code != ExitUsage {
			t.Fatalf("%s: expected exit %d, got %d", cmd.Name, ExitUsage, code)
		}
		if !strings.Contains(err.String(), "invalid arguments") {
			t.Fatalf("%s: expected flag error, got %q", cmd.Name, err.String())
		}
	}
}
