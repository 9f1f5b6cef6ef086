package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"

	"github.com/oarkflow/chainpurge/nlp/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging writes logs to stderr, and also to a rotating file when one
// is configured. Stdout is left to the event lines.
func setupLogging(c config.Log, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
	}

	out := stderr
	var closer io.Closer = nopCloser{}
	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		fileLogger := &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSize, // megabytes
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge, // days
			Compress:   c.Compress,
		}
		out = io.MultiWriter(stderr, fileLogger)
		closer = fileLogger
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}
