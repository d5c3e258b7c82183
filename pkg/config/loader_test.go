package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/pkg/config"
)

type redisSettings struct {
	URL            string        `env:"TEST_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	ConnectTimeout time.Duration `env:"TEST_REDIS_CONNECT_TIMEOUT" envDefault:"5s"`
	RetryAttempts  int           `env:"TEST_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
}

type gateSettings struct {
	AIRateLimit  int           `env:"TEST_AI_RATE_LIMIT" envDefault:"10"`
	AIRateWindow time.Duration `env:"TEST_AI_RATE_WINDOW" envDefault:"1m"`
}

type cachedSettings struct {
	TrialDays int `env:"TEST_TRIAL_DAYS" envDefault:"14"`
}

type requiredSettings struct {
	DatabaseURL string `env:"TEST_DATABASE_URL,required"`
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_REDIS_URL", "redis://cache.internal:6379/2")
	t.Setenv("TEST_REDIS_CONNECT_TIMEOUT", "2s")
	t.Setenv("TEST_REDIS_RETRY_ATTEMPTS", "5")

	var cfg redisSettings
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "redis://cache.internal:6379/2", cfg.URL)
	assert.Equal(t, 2*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5, cfg.RetryAttempts)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("TEST_AI_RATE_LIMIT")
	os.Unsetenv("TEST_AI_RATE_WINDOW")

	var cfg gateSettings
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 10, cfg.AIRateLimit)
	assert.Equal(t, time.Minute, cfg.AIRateWindow)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("TEST_DATABASE_URL")

	var cfg requiredSettings
	err := config.Load(&cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("TEST_TRIAL_DAYS", "14")

	var first cachedSettings
	require.NoError(t, config.Load(&first))

	// Later environment changes must not leak into the cached copy.
	t.Setenv("TEST_TRIAL_DAYS", "30")

	var second cachedSettings
	require.NoError(t, config.Load(&second))

	assert.Equal(t, first.TrialDays, second.TrialDays)
	assert.Equal(t, 14, second.TrialDays)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *redisSettings
	err := config.Load(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}
