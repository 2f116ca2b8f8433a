package config

import (
	"fmt"
	"os"
	"testing"
)

// TestMain runs before all tests in the config package.
// It refuses to run against any environment other than test.
func TestMain(m *testing.M) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		_ = os.Setenv("GO_ENV", "test")
		env = "test"
	}
	if env != "test" {
		fmt.Fprintf(os.Stderr, "\n"+
			"SAFETY CHECK FAILED: config tests must run with GO_ENV=test (current: %q)\n"+
			"  GO_ENV=test go test ./...\n\n", env)
		os.Exit(1)
	}

	os.Exit(m.Run())
}
