package main

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-exchange-rates-api/config"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"strings"
)

// newLogger builds the logfmt logger writing to w and, when cfg.File is set, to a
// rotated log file. The returned file is nil without one.
func newLogger(w io.Writer, cfg config.Log) (log.Logger, *lumberjack.Logger) {
	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		w = io.MultiWriter(w, file)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	logger = level.NewFilter(logger, levelOption(cfg.Level))
	return logger, file
}

func levelOption(name string) level.Option {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
