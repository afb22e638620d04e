package prototest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertGolden compares actual with the contents of goldenPath. With update
// set, the golden file is rewritten instead.
//
// Usage: go test ./... -update
func AssertGolden(t testing.TB, actual, goldenPath string, update bool) {
	t.Helper()

	if update {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o755), "Failed to create golden file directory")
		require.NoError(t, os.WriteFile(goldenPath, []byte(actual), 0o644), "Failed to update golden file %s", goldenPath)
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "Failed to read golden file %s\nRun with -update to create it", goldenPath)

	assert.Equal(t, string(expected), actual, "Output does not match golden file %s.\nRun with -update to update it.", goldenPath)
}
