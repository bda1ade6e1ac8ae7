//go:build blackbox

package blackbox

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var bankerBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "banker-blackbox-*")
	if err != nil {
		panic(err)
	}

	bankerBin = filepath.Join(tmp, "banker")

	// Build the binary once for all tests.
	cmd := exec.Command("go", "build", "-o", bankerBin, "./cmd/banker")
	cmd.Dir = filepath.Join("..", "..")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

// run executes banker in dir with stdin and returns the combined output.
func run(t *testing.T, dir, stdin string, args ...string) string {
	t.Helper()

	cmd := exec.Command(bankerBin, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()
	if err != nil {
		// CombinedOutput merges stdout/stderr; still useful in failures.
		t.Fatalf("command failed: %v\nargs: %v\noutput:\n%s", err, args, string(out))
	}
	return string(out)
}
