package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/emotive-flow/pkg/controller"
	"github.com/shouni/emotive-flow/pkg/generator"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "PORT", "GEMINI_API_KEY", "API_KEY", "GEMINI_IMAGE_MODEL",
		"MIN_LOADING_DURATION", "WATERMARK_ENABLED", "SESSION_TTL",
		"GENERATE_RATE_PER_MINUTE", "TRUST_PROXY_HEADERS", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, generator.DefaultModel, cfg.GeminiModel)
	assert.Equal(t, controller.DefaultMinDuration, cfg.MinLoadingDuration)
	assert.True(t, cfg.WatermarkEnabled)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 6, cfg.GenerateRatePerMin)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.Equal(t, 15*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTPWriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPIdleTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_APIKey(t *testing.T) {
	t.Run("キーが無ければエラーなのだ", func(t *testing.T) {
		clearEnv(t)
		_, err := FromEnv()
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("API_KEY をフォールバックとして使うのだ", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "fallback")
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "fallback", cfg.GeminiAPIKey)
	})

	t.Run("GEMINI_API_KEY が優先されるのだ", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "fallback")
		t.Setenv("GEMINI_API_KEY", "primary")
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "primary", cfg.GeminiAPIKey)
	})
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("PORT", "1919")
	t.Setenv("GEMINI_IMAGE_MODEL", "custom-image-model")
	t.Setenv("MIN_LOADING_DURATION", "800ms")
	t.Setenv("WATERMARK_ENABLED", "false")
	t.Setenv("SESSION_TTL", "45")
	t.Setenv("GENERATE_RATE_PER_MINUTE", "12")
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	t.Setenv("HTTP_WRITE_TIMEOUT", "not-a-duration")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "1919", cfg.Port)
	assert.Equal(t, "custom-image-model", cfg.GeminiModel)
	assert.Equal(t, 800*time.Millisecond, cfg.MinLoadingDuration)
	assert.False(t, cfg.WatermarkEnabled)
	assert.Equal(t, 45*time.Second, cfg.SessionTTL)
	assert.Equal(t, 12, cfg.GenerateRatePerMin)
	assert.True(t, cfg.TrustProxyHeaders)
	assert.Equal(t, 30*time.Second, cfg.HTTPWriteTimeout, "invalid values fall back to the default")
}

func TestFromEnv_NegativeFloorIsClamped(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("MIN_LOADING_DURATION", "-2s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Zero(t, cfg.MinLoadingDuration)
}

func TestNewLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger("production")
	require.NotNil(t, logger)
	assert.Same(t, logger.Handler(), slog.Default().Handler())
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))

	logger = NewLogger("development")
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}
