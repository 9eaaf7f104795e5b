package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/shouni/emotive-flow/pkg/controller"
	"github.com/shouni/emotive-flow/pkg/generator"
)

// ErrMissingAPIKey は GEMINI_API_KEY も API_KEY も設定されていない場合に返されます。
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY (or API_KEY) is required")

// Config は環境変数から読み込まれるアプリケーション設定です。
type Config struct {
	AppEnv             string
	Port               string
	GeminiAPIKey       string
	GeminiModel        string
	MinLoadingDuration time.Duration
	WatermarkEnabled   bool
	SessionTTL         time.Duration
	GenerateRatePerMin int
	TrustProxyHeaders  bool
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
}

// IsProduction は APP_ENV が production の場合に true を返します。
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load は .env (存在すれば) と環境変数から設定を読み込み、デフォルト値を適用します。
func Load() (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")
	return FromEnv()
}

// FromEnv は .env を読まずに、現在のプロセス環境だけから設定を組み立てます。
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:        getEnv("GEMINI_IMAGE_MODEL", generator.DefaultModel),
		MinLoadingDuration: getEnvDuration("MIN_LOADING_DURATION", controller.DefaultMinDuration),
		WatermarkEnabled:   getEnvBool("WATERMARK_ENABLED", true),
		SessionTTL:         getEnvDuration("SESSION_TTL", 30*time.Minute),
		GenerateRatePerMin: getEnvInt("GENERATE_RATE_PER_MINUTE", 6),
		TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false),
		HTTPReadTimeout:    getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		HTTPWriteTimeout:   getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		HTTPIdleTimeout:    getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.MinLoadingDuration < 0 {
		cfg.MinLoadingDuration = 0
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration は "3s" のような Go の duration 表記と、秒数のみの整数表記の両方を受け付けます。
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if i, err := strconv.Atoi(v); err == nil {
		return time.Duration(i) * time.Second
	}
	return fallback
}
