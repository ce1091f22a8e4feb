package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is disabled until Init runs, so packages can log unconditionally.
var Log = zerolog.Nop()

// Module sub-loggers
var (
	CLI     = zerolog.Nop()
	NixInfo = zerolog.Nop()
	Health  = zerolog.Nop()
)

// rotator is the open log file, closed when Init runs again.
var rotator *lumberjack.Logger

// Options controls where and how verbosely logs are written.
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Stderr receives console output when File is empty. Defaults to os.Stderr.
	Stderr io.Writer
}

func Init(opts Options) {
	level := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)

	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}

	var writer io.Writer
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if opts.File == "" {
		writer = zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"}
	} else {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			writer = zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"}
		} else {
			rotator = &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    orDefault(opts.MaxSizeMB, 10),
				MaxBackups: orDefault(opts.MaxBackups, 3),
				MaxAge:     orDefault(opts.MaxAgeDays, 28),
				Compress:   opts.Compress,
			}
			writer = rotator
		}
	}

	Log = zerolog.New(writer).Level(level).With().Timestamp().Logger()

	CLI = Log.With().Str("module", "cli").Logger()
	NixInfo = Log.With().Str("module", "nixinfo").Logger()
	Health = Log.With().Str("module", "health").Logger()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "off" {
		s = "disabled"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
