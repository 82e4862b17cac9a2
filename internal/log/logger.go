// Package log содержит настройку slog для приложения: маскировку секретов,
// ротацию файла логов и адаптер для логгера tgbotapi.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"telegram-relay-bot/internal/pkg/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel переводит строковый уровень из конфигурации в slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// New создает логгер по конфигурации. Вывод идет в stdout и, если задан
// путь, в файл с ротацией. Возвращаемый io.Closer закрывает файл логов.
func New(cfg config.Logging, secrets ...string) (*slog.Logger, io.Closer, error) {
	return NewWithWriter(os.Stdout, cfg, secrets...)
}

// NewWithWriter работает как New, но пишет в w вместо stdout.
func NewWithWriter(w io.Writer, cfg config.Logging, secrets ...string) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var closer io.Closer = nopCloser{}
	if cfg.File.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}
		w = io.MultiWriter(w, rotator)
		closer = rotator
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json", "":
		handler = slog.NewJSONHandler(w, opts)
	default:
		_ = closer.Close()
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return NewMaskedLogger(handler, secrets...), closer, nil
}
