package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(home)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, BackendGoLevelDB, cfg.DBBackend)
	assert.Equal(t, filepath.Join(home, "data"), cfg.DataPath(home))

	th, err := cfg.ParsedThresholds()
	require.NoError(t, err)
	assert.Equal(t, types.Thresholds{10, 20, 50, 100, 200, 500, 1000}, th)
}

func TestSaveAndLoad(t *testing.T) {
	home := t.TempDir()

	cfg := Config{
		LogLevel:   2,
		LogFormat:  "json",
		LogSampler: true,
		Thresholds: "5,50",
		DBBackend:  BackendMemDB,
		DataDir:    "/var/lib/bags",
	}
	require.NoError(t, Save(&cfg, home))
	assert.FileExists(t, filepath.Join(home, configFileName))

	loaded, err := Load(home)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, "/var/lib/bags", loaded.DataPath(home))
}

func TestLoad_EnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BAGSCTL_THRESHOLDS", "1,2,3")
	t.Setenv("BAGSCTL_DB_BACKEND", BackendMemDB)

	cfg, err := Load(home)
	require.NoError(t, err)
	assert.Equal(t, "1,2,3", cfg.Thresholds)
	assert.Equal(t, BackendMemDB, cfg.DBBackend)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"log format", "log_format: xml\n", "log format"},
		{"log level", "log_level: 9\n", "log level"},
		{"backend", "db_backend: rocksdb\n", "db backend"},
		{"thresholds", "thresholds: \"20,10\"\n", "invalid thresholds"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			home := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(home, configFileName), []byte(tc.yaml), 0o600))

			_, err := Load(home)
			require.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, configFileName), []byte("log_level: [\n"), 0o600))

	_, err := Load(home)
	require.ErrorContains(t, err, "failed to read config file")
}
