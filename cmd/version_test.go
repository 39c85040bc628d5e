package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionOutput(t *testing.T) {
	SetVersion("1.2.3")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	out := buf.String()
	for _, field := range []string{"shopctl 1.2.3", "go version:", "platform:"} {
		if !strings.Contains(out, field) {
			t.Errorf("version output missing %q. Got:\n%s", field, out)
		}
	}
}
