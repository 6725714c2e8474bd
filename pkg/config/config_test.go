package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "wedding_gallery", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 15, cfg.Storage.PresignTTLMin)
	assert.Equal(t, "wedding-photos", cfg.Storage.Bucket)
	assert.Empty(t, cfg.Recognition.BaseURL, "recognition defaults to offline mode")
	assert.Equal(t, 30, cfg.Recognition.TimeoutSeconds)
	assert.Empty(t, cfg.Internal.ServiceToken, "internal API disabled until a token is set")
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 120, cfg.RateLimit.MaxRequests)
	assert.Equal(t, "*/30 * * * *", cfg.Jobs.ReconcileCron)
	assert.Equal(t, "*/5 * * * *", cfg.Jobs.SweepCron)
	assert.Equal(t, 10, cfg.Jobs.StuckThresholdMin)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("STORAGE_PRESIGN_TTL_MIN", "5")
	t.Setenv("RECOGNITION_API_URL", "http://recognition:8000")
	t.Setenv("INTERNAL_SERVICE_TOKEN", "svc-token")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("JOBS_STUCK_THRESHOLD_MIN", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5, cfg.Storage.PresignTTLMin)
	assert.Equal(t, "http://recognition:8000", cfg.Recognition.BaseURL)
	assert.Equal(t, "svc-token", cfg.Internal.ServiceToken)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30, cfg.Jobs.StuckThresholdMin)
}
