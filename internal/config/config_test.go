package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "project-tracker", cfg.Observability.ServiceName)
	assert.Equal(t, cfg.Primary.Env, cfg.Observability.Environment)
	assert.False(t, cfg.NotificationsEnabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TRACKER_PRIMARY__ENV", "production")
	t.Setenv("TRACKER_SERVER__PORT", "9090")
	t.Setenv("TRACKER_SERVER__READ_TIMEOUT", "45")
	t.Setenv("TRACKER_DATABASE__DRIVER", "postgres")
	t.Setenv("TRACKER_DATABASE__HOST", "db")
	t.Setenv("TRACKER_DATABASE__USER", "tracker")
	t.Setenv("TRACKER_DATABASE__NAME", "tracker")
	t.Setenv("TRACKER_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("TRACKER_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 45, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.Server.WriteTimeout, "unset keys keep their default")
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfigBarePortWins(t *testing.T) {
	t.Setenv("TRACKER_SERVER__PORT", "9090")
	t.Setenv("PORT", "4000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Server.Port)
}

func TestLoadConfigRejectsPostgresWithoutHost(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TRACKER_DATABASE__DRIVER", "postgres")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TRACKER_DATABASE__DRIVER", "sqlite")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TRACKER_OBSERVABILITY__LOGGING__LEVEL", "verbose")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNotificationsEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Redis.Address = "localhost:6379"
	cfg.Integration.ResendAPIKey = "re_test"
	assert.False(t, cfg.NotificationsEnabled())

	cfg.Integration.NotifyEmail = "ops@example.com"
	assert.True(t, cfg.NotificationsEnabled())
}

func TestGetLogLevel(t *testing.T) {
	obs := DefaultObservabilityConfig()
	obs.Logging.Level = ""

	obs.Environment = "production"
	assert.Equal(t, "info", obs.GetLogLevel())

	obs.Environment = "local"
	assert.Equal(t, "debug", obs.GetLogLevel())

	obs.Logging.Level = "error"
	assert.Equal(t, "error", obs.GetLogLevel())
}

func TestHealthCheckEnabled(t *testing.T) {
	obs := DefaultObservabilityConfig()
	assert.True(t, obs.HealthCheckEnabled("database"))

	obs.HealthChecks.Checks = []string{"redis"}
	assert.False(t, obs.HealthCheckEnabled("database"))

	obs.HealthChecks.Enabled = false
	assert.False(t, obs.HealthCheckEnabled("redis"))
}
