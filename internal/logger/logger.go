package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Debug   bool
	Format  string // console, json
	File    string // optional log file, rotated
	Service string
	Out     io.Writer // defaults to stderr
}

// Init configures the global zerolog logger.
func Init(cfg Config) error {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	var writers []io.Writer
	if cfg.Format == "json" {
		writers = append(writers, out)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"})
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    20, // MB
			MaxAge:     30, // days
			MaxBackups: 5,
			Compress:   true,
		})
	}

	service := cfg.Service
	if service == "" {
		service = "sentinel"
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Timestamp().
		Str("service", service).
		Logger()

	log.Debug().
		Str("format", cfg.Format).
		Bool("file_enabled", cfg.File != "").
		Msg("logger initialized")
	return nil
}
