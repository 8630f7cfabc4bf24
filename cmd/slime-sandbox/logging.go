package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "slime-sandbox.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a file-backed logger when debug is set, a disabled one otherwise
// The terminal owns stdout and stderr while the sandbox runs, so logs never go there
// A log file over maxLogSize is rotated to a timestamped name first
func setupLogging(debug bool) (zerolog.Logger, *os.File) {
	if !debug {
		return zerolog.New(io.Discard).Level(zerolog.Disabled), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return zerolog.New(io.Discard).Level(zerolog.Disabled), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("slime-sandbox-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.New(io.Discard).Level(zerolog.Disabled), nil
	}

	log := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return log, f
}
