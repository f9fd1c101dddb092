package app

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/ontask/internal/config"
)

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, errInvalidLogLevel.Fmt(s).Wrap(err)
	}

	return level, nil
}

// newLogger returns a JSON logger that writes to w.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// setupLogger makes a rotating log file at path the default slog
// destination. The returned closer flushes the file.
func setupLogger(cfg config.LogConfig, path string) (io.Closer, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}

	slog.SetDefault(newLogger(w, level))

	return w, nil
}
