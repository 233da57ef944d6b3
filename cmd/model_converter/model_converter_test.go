package main

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/readable_hash/resources"
)

func TestOutputFormat(t *testing.T) {
	format, err := outputFormat("", "model.bin")
	require.NoError(t, err)
	assert.Equal(t, formatBinary, format)
	format, err = outputFormat("", "model.json")
	require.NoError(t, err)
	assert.Equal(t, formatJSON, format)
	format, err = outputFormat("json", "model.bin")
	require.NoError(t, err)
	assert.Equal(t, formatJSON, format)
	_, err = outputFormat("yaml", "model.yaml")
	assert.Error(t, err)
}

func TestEncodeModel(t *testing.T) {
	data, err := resources.ResolveModelId("english-v1", nil)
	require.NoError(t, err)
	dir := t.TempDir()
	for _, format := range []string{formatJSON, formatBinary} {
		encoded, err := encodeModel(data, format)
		require.NoError(t, err)
		outputPath := path.Join(dir, "model."+format)
		require.NoError(t, os.WriteFile(outputPath, encoded, 0644))

		loaded, err := resources.ResolveModelId(outputPath, nil)
		require.NoError(t, err)
		assert.Equal(t, data, loaded)
	}
}
