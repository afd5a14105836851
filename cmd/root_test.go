package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestExecute_Version verifies --version prints a version string.
func TestExecute_Version(t *testing.T) {
	err := Execute(context.Background(), []string{"--version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_Help verifies --help returns without error.
func TestExecute_Help(t *testing.T) {
	err := Execute(context.Background(), []string{"--help"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_DryRun verifies --dry-run validates and exits cleanly.
func TestExecute_DryRun(t *testing.T) {
	err := Execute(context.Background(), []string{
		"-H", "127.0.0.1", "-p", "5001", "--dry-run",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_DryRunInvalid verifies --dry-run still catches bad configs.
func TestExecute_DryRunInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero interval", []string{"-i", "0s", "--dry-run"}},
		{"port out of range", []string{"-p", "70000", "--dry-run"}},
		{"empty payload", []string{"--payload", "", "--dry-run"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Execute(context.Background(), tt.args); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// TestExecute_InvalidFlags verifies unknown flags produce an error.
func TestExecute_InvalidFlags(t *testing.T) {
	err := Execute(context.Background(), []string{"--nonexistent-flag"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

// TestExecute_ConfigFile verifies -C loads the INI file before flags.
func TestExecute_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gocast.ini")
	content := "[server]\nhost = 127.0.0.1\nport = 6001\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Execute(context.Background(), []string{"-C", path, "--dry-run"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_ConfigFileMissing verifies a bad -C path is an error.
func TestExecute_ConfigFileMissing(t *testing.T) {
	err := Execute(context.Background(), []string{"-C", "/does/not/exist.ini", "--dry-run"})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "exist.ini") {
		t.Errorf("error should name the file: %v", err)
	}
}

// TestScanConfigPath covers the pre-parse extraction of -C/--config.
func TestScanConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"none", []string{"-p", "5001"}, ""},
		{"short", []string{"-C", "a.ini"}, "a.ini"},
		{"long", []string{"--config", "b.ini"}, "b.ini"},
		{"long equals", []string{"--config=c.ini"}, "c.ini"},
		{"short equals", []string{"-C=d.ini"}, "d.ini"},
		{"dangling", []string{"--config"}, ""},
		{"mixed", []string{"-v", "--config", "e.ini", "-p", "1"}, "e.ini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanConfigPath(tt.args); got != tt.want {
				t.Errorf("scanConfigPath(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
