package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRotating_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "contactbook.log")

	log, closeFn, err := NewRotating(path, "info", FileOptions{MaxSizeMB: 1, MaxBackups: 2})
	require.NoError(t, err)

	log.Info("Contact created successfully", "contact_id", 3)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "Contact created successfully", entry["msg"])
	assert.Equal(t, float64(3), entry["contact_id"])
}
