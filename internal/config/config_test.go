package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "downloads", cfg.DownloadDir)
	assert.Empty(t, cfg.Token)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("[disk\nbroken"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	in := &Config{
		BaseURL:     "https://disk.example.test/v1/disk",
		Token:       "secret-token",
		DownloadDir: "mirror",
	}
	require.NoError(t, Save(in, path))

	// Token is sensitive, the file must not be group or world readable.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingToken)

	cfg.Token = "t"
	assert.NoError(t, cfg.Validate())

	cfg.BaseURL = "  "
	assert.ErrorIs(t, cfg.Validate(), ErrMissingBaseURL)
}

func TestResolveToken_Precedence(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("  from-file\n"), 0600))

	cfg := &Config{Token: "from-config"}

	t.Setenv(EnvToken, "from-env")

	// Flag beats everything.
	got, source := ResolveTokenSource("from-flag", tokenFile, cfg)
	assert.Equal(t, "from-flag", got)
	assert.Equal(t, "flag", source)

	// Token file beats config. Whitespace is trimmed.
	got, source = ResolveTokenSource("", tokenFile, cfg)
	assert.Equal(t, "from-file", got)
	assert.Equal(t, "token-file", source)

	// Config beats environment.
	got, source = ResolveTokenSource("", "", cfg)
	assert.Equal(t, "from-config", got)
	assert.Equal(t, "config", source)

	// Environment is the fallback.
	got, source = ResolveTokenSource("", "", nil)
	if source != "default-token-file" {
		assert.Equal(t, "from-env", got)
		assert.Equal(t, "environment", source)
	}
}

func TestReadTokenFile_Missing(t *testing.T) {
	_, err := ReadTokenFile(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
