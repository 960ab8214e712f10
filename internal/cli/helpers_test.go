package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testConfig disables the warm-up and styling so commands run fast and
// print plain text.
const testConfig = `warmup: enabled: false
ui: color: false
`

// executeRoot runs the root command with args against an isolated config.
func executeRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfgPath := filepath.Join(t.TempDir(), "config.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o644))

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
