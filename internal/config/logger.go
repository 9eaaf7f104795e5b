package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger は APP_ENV に応じたロガーを生成し、slog のデフォルトとして設定します。
// production では JSON 形式 (info 以上)、それ以外ではテキスト形式 (debug 以上) で出力します。
func NewLogger(appEnv string) *slog.Logger {
	var handler slog.Handler
	if strings.EqualFold(appEnv, "production") {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	logger := slog.New(handler).With("app", "emotive-flow")
	slog.SetDefault(logger)
	return logger
}
