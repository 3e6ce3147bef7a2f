package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at a temp dir and clears DMF_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"DMF_CONFIG", "DMF_DATA_DIR", "DMF_STORAGE_BACKEND", "DMF_STORAGE_PATH",
		"DMF_LOCALE", "DMF_COUNTDOWN_DURATION", "DMF_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	base := isolate(t)

	cfg, err := Load(New())
	require.NoError(t, err)

	dataDir := filepath.Join(base, appDirName)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, BackendTOML, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dataDir, "store.toml"), cfg.Storage.Path)
	assert.Equal(t, 10*time.Second, cfg.Countdown.Duration)
	assert.Equal(t, 100*time.Millisecond, cfg.Countdown.Tick)
	assert.Equal(t, time.Second, cfg.Tutorial.StepDuration)
	assert.Equal(t, 500*time.Millisecond, cfg.Tutorial.OverlayDelay)
	assert.Equal(t, time.Second, cfg.Tutorial.ReturnDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Tutorial.MentorDemoDelay)
	assert.Equal(t, domain.LocaleZhTW, cfg.Locale)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dataDir, "dmf.log"), cfg.Log.File)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadStoragePathFollowsBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    func(dataDir string) string
	}{
		{backend: "sqlite", want: func(dataDir string) string { return filepath.Join(dataDir, "store.db") }},
		{backend: "TOML", want: func(dataDir string) string { return filepath.Join(dataDir, "store.toml") }},
		{backend: "memory", want: func(string) string { return "" }},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			isolate(t)
			t.Setenv("DMF_STORAGE_BACKEND", tt.backend)

			cfg, err := Load(New())
			require.NoError(t, err)
			assert.Equal(t, tt.want(cfg.DataDir), cfg.Storage.Path)
		})
	}
}

func TestLoadReadsConfigFileFromDataDir(t *testing.T) {
	base := isolate(t)
	dataDir := filepath.Join(base, "journal")
	require.NoError(t, os.MkdirAll(dataDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(`
locale = "en"

[countdown]
duration = "3s"

[storage]
backend = "sqlite"
`), 0o600))
	t.Setenv("DMF_DATA_DIR", dataDir)

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dataDir, "config.toml"), cfg.ConfigFile)
	assert.Equal(t, domain.LocaleEn, cfg.Locale)
	assert.Equal(t, 3*time.Second, cfg.Countdown.Duration)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dataDir, "store.db"), cfg.Storage.Path)
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	base := isolate(t)
	path := filepath.Join(base, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("locale = \"en\"\n"), 0o600))
	t.Setenv("DMF_CONFIG", path)
	t.Setenv("DMF_LOCALE", "zh-TW")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, domain.LocaleZhTW, cfg.Locale)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown backend", key: "DMF_STORAGE_BACKEND", val: "redis"},
		{name: "zero countdown", key: "DMF_COUNTDOWN_DURATION", val: "0s"},
		{name: "tick longer than countdown", key: "DMF_COUNTDOWN_DURATION", val: "50ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load(New())
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	base := isolate(t)
	dataDir := filepath.Join(base, appDirName)
	require.NoError(t, os.MkdirAll(dataDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte("locale = ["), 0o600))

	_, err := Load(New())
	require.ErrorContains(t, err, "read config file")
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	base := isolate(t)
	envFile := filepath.Join(base, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DMF_STORAGE_BACKEND=memory\nDMF_LOCALE=en\n"), 0o600))
	t.Setenv("DMF_LOCALE", "zh-TW")

	require.NoError(t, LoadDotEnv(envFile))

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, domain.LocaleZhTW, cfg.Locale)
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	base := isolate(t)

	require.NoError(t, LoadDotEnv(filepath.Join(base, "absent.env")))
}
