package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 500.0, cfg.Vehicle.MaxRangeMiles)
	assert.Equal(t, 10.0, cfg.Vehicle.MilesPerGallon)
	assert.Equal(t, 3.50, cfg.Planner.FallbackPrice)
	assert.Equal(t, 10.0, cfg.Planner.SnapToleranceMiles)
	assert.Equal(t, "greedy", cfg.Planner.Strategy)
	assert.Equal(t, 24*time.Hour, cfg.RouteCache.TTL)
	assert.Equal(t, 1000, cfg.RouteCache.MaxEntries)
	assert.Equal(t, 24*time.Hour, cfg.Maps.MaxAge)
	assert.Same(t, cfg, Current())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VEHICLE_MAX_RANGE_MILES", "650")
	t.Setenv("PLANNER_STRATEGY", "optimal")
	t.Setenv("ROUTE_CACHE_TTL", "90m")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 650.0, cfg.Vehicle.MaxRangeMiles)
	assert.Equal(t, "optimal", cfg.Planner.Strategy)
	assert.Equal(t, 90*time.Minute, cfg.RouteCache.TTL)
}

func TestLoadFileAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vehicle:\n  miles_per_gallon: 8\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Vehicle.MilesPerGallon)
	assert.Equal(t, 500.0, cfg.Vehicle.MaxRangeMiles)

	require.NoError(t, os.WriteFile(path, []byte("vehicle:\n  miles_per_gallon: 12\n"), 0o644))

	require.Eventually(t, func() bool {
		c := Current()
		return c != nil && c.Vehicle.MilesPerGallon == 12
	}, 5*time.Second, 20*time.Millisecond)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("VEHICLE_MILES_PER_GALLON", "0")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "miles_per_gallon")
}

func TestGet(t *testing.T) {
	t.Setenv("FUEL_TEST_KEY", "set")

	assert.Equal(t, "set", Get("FUEL_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", Get("FUEL_TEST_MISSING", "fallback"))
}
