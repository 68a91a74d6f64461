package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/initializ/agentcheck/internal/settings"
)

func writeTestAgentYAML(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// withSettings overrides the resolved settings for the duration of a test.
func withSettings(t *testing.T, mutate func(s *settings.Settings)) {
	t.Helper()
	old := opts
	s := settings.Defaults()
	s.Color = "never"
	if mutate != nil {
		mutate(&s)
	}
	opts = &s
	t.Cleanup(func() { opts = old })
}

// setFlags sets flags on cmd and restores their defaults after the test.
func setFlags(t *testing.T, cmd *cobra.Command, values map[string]string) {
	t.Helper()
	for name, v := range values {
		if err := cmd.Flags().Set(name, v); err != nil {
			t.Fatalf("setting --%s: %v", name, err)
		}
	}
	t.Cleanup(func() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	})
}

func captureOutput(t *testing.T, cmd *cobra.Command) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	t.Cleanup(func() { cmd.SetOut(nil) })
	return &buf
}

func exitCodeOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	return exitErr.Code
}

const validAgentYAML = `version: "1.0.0"
name: test-agent
model:
  id: gpt-4o
  options:
    temperature: 0.2
instructions: Be helpful.
tools:
  - type: code_interpreter
    options:
      file_ids: []
`

const invalidAgentYAML = `version: "1.0"
name: test-agent
model:
  id: gpt-4o
  options:
    temperature: 1.5
instructions: Be helpful.
color: blue
`

const warningAgentYAML = `version: "1.0.0"
name: test-agent
model:
  id: gpt-4o
instructions: null
`
