// ABOUTME: Tests for version command
// ABOUTME: Verifies version info display and SetVersion functionality
package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestVersionCmd_Output(t *testing.T) {
	original := versionInfo
	defer func() { versionInfo = original }()

	SetVersion("1.2.3", "abc123", "2026-01-31")

	cmd := NewVersionCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{"habits 1.2.3", "Commit: abc123", "Built:  2026-01-31"} {
		if !strings.Contains(output.String(), expected) {
			t.Errorf("Output should contain %q, got:\n%s", expected, output.String())
		}
	}
}
