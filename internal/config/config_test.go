package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_RespectsXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "autobib", "config.yml"), Path())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	in := &Config{
		ADSAPIKey:  "secret-token",
		Source:     "inspire",
		MaxAuthors: 5,
		BibFile:    "refs.bib",
	}
	require.NoError(t, in.Save())

	out, err := Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, ConfigDir, ConfigFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("ads_api_key: [unclosed"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestResolveAPIKey_Precedence(t *testing.T) {
	cfg := &Config{ADSAPIKey: "from-config"}

	t.Setenv("ADS_API_KEY", "from-env")
	assert.Equal(t, "from-flag", ResolveAPIKey("from-flag", cfg))
	assert.Equal(t, "from-env", ResolveAPIKey("", cfg))

	t.Setenv("ADS_API_KEY", "")
	assert.Equal(t, "from-config", ResolveAPIKey("", cfg))
	assert.Equal(t, "", ResolveAPIKey("", nil))
}
