package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestRoot_ShowsHelpWithoutArguments(t *testing.T) {
	out, err := execute(t)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, sub := range []string{"generate", "check", "params", "init"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing subcommand %q", sub)
		}
	}
}

func TestRoot_UnknownFlagIsUsageError(t *testing.T) {
	_, err := execute(t, "generate", "--frobnicate")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	// The flag error carries the command's usage text for orientation.
	if !strings.Contains(err.Error(), "Usage:") {
		t.Fatalf("message should embed usage: %v", err)
	}
}

func TestRoot_UnknownSubcommand(t *testing.T) {
	if _, err := execute(t, "frobnicate"); err == nil {
		t.Fatalf("expected error for unknown subcommand")
	}
}
