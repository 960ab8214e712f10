package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand_Text(t *testing.T) {
	out, _, err := executeRoot(t, "", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "add(int32, int32)"))
	assert.Contains(t, out, "sum(...int32)")
	assert.Contains(t, out, "simplify(fraction)")
	assert.Contains(t, out, "tofraction(decimal)")
}

func TestListCommand_JSON(t *testing.T) {
	out, _, err := executeRoot(t, "", "--format", "json", "list")
	require.NoError(t, err)

	var resp struct {
		Status string            `json:"status"`
		Data   []CalculationInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	byName := map[string]CalculationInfo{}
	for _, info := range resp.Data {
		byName[info.Name] = info
	}
	require.Contains(t, byName, "scale")
	assert.Equal(t, "(int32, ...int32)", byName["scale"].Signature)
	assert.Equal(t, "(float32, int32)", byName["power"].Signature)
}
