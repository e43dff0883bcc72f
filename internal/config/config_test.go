package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PAPERLESS_URL",
	"PAPERLESS_TOKEN",
	"PAPERLESS_DEFAULT_TAG",
	"PAPERLESS_ADD_DEFAULT_TAG",
	"PAPERLESS_MAIL_LANG",
	"PAPERLESS_FUZZY_THRESHOLD",
	"PAPERLESS_SKIP_MESSAGE",
	"PAPERLESS_MAIL_LOG",
}

// isolate points HOME at a temp dir and blanks the override variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, ".paperless-mail")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config"), []byte(content), 0600))
}

func TestSaveConfigCreatesDirectories(t *testing.T) {
	isolate(t)

	cfg := Config{URL: "http://paperless.local", Token: "tok"}
	require.NoError(t, cfg.Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(Path()))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())
}

func TestLoadConfigNonExistent(t *testing.T) {
	isolate(t)

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "not found")
}

func TestSaveLoadRoundtripWithAllFields(t *testing.T) {
	isolate(t)

	original := Config{
		URL:            "https://docs.example.com",
		Token:          "0123456789abcdef",
		DefaultTag:     "Mail",
		AddDefaultTag:  false,
		Language:       "de",
		FuzzyThreshold: 0.3,
		SkipMessage:    true,
		LogFile:        "/tmp/pm.log",
	}
	require.NoError(t, original.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "url: http://paperless.local/\ntoken: tok\n")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://paperless.local", loaded.URL)
	assert.Equal(t, "Paperless", loaded.DefaultTag)
	assert.True(t, loaded.AddDefaultTag)
	assert.Zero(t, loaded.FuzzyThreshold)
}

func TestSaveConfigOverwritesExisting(t *testing.T) {
	isolate(t)

	require.NoError(t, (&Config{URL: "http://a", Token: "key1"}).Save())
	require.NoError(t, (&Config{URL: "http://a", Token: "key2"}).Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "key2", loaded.Token)
}

func TestSaveRestoresPermissions(t *testing.T) {
	isolate(t)

	require.NoError(t, (&Config{URL: "http://a", Token: "k"}).Save())
	require.NoError(t, os.Chmod(Path(), 0644))
	require.NoError(t, (&Config{URL: "http://a", Token: "k"}).Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigEmptyFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url")
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "invalid: yaml: content:")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadConfigMissingToken(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "url: http://paperless.local\n")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestLoadConfigRejectsBadURL(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "url: paperless.local\ntoken: t\n")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http://")
}

func TestLoadConfigRejectsThreshold(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "url: http://p\ntoken: t\nfuzzy_threshold: 1.5\n")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuzzy_threshold")
}

func TestConfigPermissionsStrictlyEnforced(t *testing.T) {
	isolate(t)

	require.NoError(t, (&Config{URL: "http://a", Token: "secret"}).Save())
	require.NoError(t, os.Chmod(Path(), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "url: http://file\ntoken: file-token\ndefault_tag: FromFile\n")
	t.Setenv("PAPERLESS_TOKEN", "env-token")
	t.Setenv("PAPERLESS_MAIL_LANG", "de")
	t.Setenv("PAPERLESS_FUZZY_THRESHOLD", "0.25")
	t.Setenv("PAPERLESS_ADD_DEFAULT_TAG", "false")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://file", loaded.URL)
	assert.Equal(t, "env-token", loaded.Token)
	assert.Equal(t, "FromFile", loaded.DefaultTag)
	assert.Equal(t, "de", loaded.Language)
	assert.InDelta(t, 0.25, loaded.FuzzyThreshold, 1e-9)
	assert.False(t, loaded.AddDefaultTag)
}

func TestEnvironmentWithoutFile(t *testing.T) {
	isolate(t)
	t.Setenv("PAPERLESS_URL", "https://docs.example.com/")
	t.Setenv("PAPERLESS_TOKEN", "env-token")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com", loaded.URL)
	assert.Equal(t, "Paperless", loaded.DefaultTag)

	_, statErr := os.Stat(Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestEnvironmentBadValue(t *testing.T) {
	isolate(t)
	t.Setenv("PAPERLESS_URL", "http://p")
	t.Setenv("PAPERLESS_TOKEN", "t")
	t.Setenv("PAPERLESS_SKIP_MESSAGE", "maybe")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse environment")
}

func TestReadSkipsValidation(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "language: de\n")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Language)
	assert.Empty(t, cfg.URL)
}

func TestPathReturnsCorrectLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".paperless-mail")
	assert.Equal(t, "config", filepath.Base(path))
}
