package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bleathingman/iron-system/internal/engine"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultPolicy(), cfg.Policy())
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /tmp/iron-test.db
timezone: Europe/Paris
scheduler:
  pool_size: 5
  daily_bonus_xp: 40
progression:
  daily_goal: 150
logging:
  level: info
`), 0o644))

	t.Setenv("IRON_POOL_SIZE", "4")
	t.Setenv("IRON_DAILY_XP_CAP", "120")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/iron-test.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, engine.Policy{DailyPoolSize: 4, DailyBonusXP: 40, DailyXPCap: 120, DailyGoal: 150}, cfg.Policy())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", loc.String())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheduler:\n  pool_size: 0\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool_size")

	t.Setenv("IRON_TIMEZONE", "Nowhere/Atlantis")
	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nowhere/Atlantis")
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	t.Setenv("IRON_DAILY_GOAL", "lots")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.Progression.DailyXPCap = 90
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLocationDefaultsToLocal(t *testing.T) {
	loc, err := DefaultConfig().Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestDBPathExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/home/iron")
	path, err := DefaultConfig().DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/iron", ".iron", "iron.db"), path)

	cfg := DefaultConfig()
	cfg.Database.Path = ":memory:"
	path, err = cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, ":memory:", path)
}
