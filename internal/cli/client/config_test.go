package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempConfigDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	origDir := getConfigDirFunc
	origPath := getConfigPathFunc
	getConfigDirFunc = func() (string, error) { return dir, nil }
	getConfigPathFunc = func() (string, error) { return filepath.Join(dir, "config.json"), nil }
	t.Cleanup(func() {
		getConfigDirFunc = origDir
		getConfigPathFunc = origPath
	})
}

func TestGlobalConfig_SaveLoadDelete(t *testing.T) {
	withTempConfigDir(t)

	loaded, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing config file should load as nil")

	config := &GlobalConfig{
		APIKey: "lmn_0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		APIURL: "http://localhost:8080",
	}
	require.NoError(t, SaveGlobalConfig(config))

	loaded, err = LoadGlobalConfig()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, config.APIKey, loaded.APIKey)
	assert.Equal(t, config.APIURL, loaded.APIURL)

	require.NoError(t, DeleteGlobalConfig())

	loaded, err = LoadGlobalConfig()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting again is a no-op
	assert.NoError(t, DeleteGlobalConfig())
}

func TestSaveGlobalConfig_NilConfig(t *testing.T) {
	withTempConfigDir(t)

	err := SaveGlobalConfig(nil)
	assert.Error(t, err)
}

func TestIsValidAPIKey(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		valid bool
	}{
		{"valid key", "lmn_0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", true},
		{"valid uppercase hex", "lmn_ABCDEF6789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", true},
		{"empty", "", false},
		{"wrong prefix", "key_0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", false},
		{"too short", "lmn_0123456789abcdef", false},
		{"non-hex chars", "lmn_zzzz456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidAPIKey(tt.key))
		})
	}
}
