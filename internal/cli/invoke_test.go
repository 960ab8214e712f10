package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calcbench/internal/report"
)

func TestInvokeCommand_Text(t *testing.T) {
	out, _, err := executeRoot(t, "", "invoke", "add,2,3")
	require.NoError(t, err)

	assert.Contains(t, out, "The answer is: 5\n")
	assert.Contains(t, out, "Execution time: ")
	assert.Contains(t, out, " microseconds\n")
}

func TestInvokeCommand_TextRange(t *testing.T) {
	out, _, err := executeRoot(t, "", "invoke", "fib,1-20")
	require.NoError(t, err)

	assert.Contains(t, out, "Preparing 20 executions... done.\n")
	assert.Contains(t, out, "Running 20 executions... done.\n")
	assert.Contains(t, out, "Total execution time: ")
	assert.NotContains(t, out, "The answer is:")
}

func TestInvokeCommand_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		line string
		code int
	}{
		{"unknown", "nosuch,1", ExitCommandError},
		{"malformed", "add,1", ExitCommandError},
		{"bad_literal", "add,1,x", ExitCommandError},
		{"calculation_failed", "factorial,30", ExitFailure},
		{"range_over_limit", "isprime,0-2147483647", ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeRoot(t, "", "invoke", tt.line)
			require.Error(t, err)
			assert.Equal(t, tt.code, GetExitCode(err))
			assert.Contains(t, out, "Invalid input.")
		})
	}
}

func TestInvokeCommand_JSON(t *testing.T) {
	out, _, err := executeRoot(t, "", "--format", "json", "invoke", "simplify,6/8")
	require.NoError(t, err)

	var resp struct {
		Status  string         `json:"status"`
		Data    report.Summary `json:"data"`
		TraceID string         `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, "simplify", resp.Data.Calculation)
	assert.Equal(t, 1, resp.Data.Executions)
	require.Len(t, resp.Data.Results, 1)
	assert.Equal(t, "3/4", resp.Data.Results[0].Result)
	assert.Empty(t, resp.Data.TotalMillis)
}

func TestInvokeCommand_JSONError(t *testing.T) {
	out, _, err := executeRoot(t, "", "--format", "json", "invoke", "add,1,abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_NUMERIC_LITERAL", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, `"abc"`)
}

func TestInvokeCommand_MissingLine(t *testing.T) {
	_, _, err := executeRoot(t, "", "invoke")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestInvokeCommand_JSONVerboseDiagnosticsOnStderr(t *testing.T) {
	out, errOut, err := executeRoot(t, "", "--format", "json", "--verbose", "invoke", "add,2,3")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, errOut, "add ran 1 executions")
}

func TestInvokeCommand_JSONVerboseFailure(t *testing.T) {
	out, errOut, err := executeRoot(t, "", "--format", "json", "--verbose", "invoke", "nosuch,1")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, errOut, `line "nosuch,1" failed`)
}

func TestInvokeCommand_JSONQuietWithoutVerbose(t *testing.T) {
	_, errOut, err := executeRoot(t, "", "--format", "json", "invoke", "add,2,3")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "ran 1 executions")
}
