// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gndicom/pkg/config"
)

// LogFile is the name of the log file created in the log directory.
const LogFile = "gndicom.log"

// logFile is the log file opened by Init, nil for other destinations.
var logFile *os.File

// Init initializes the global slog logger with the given configuration.
// Creates a fresh log file in logDir if destination is "file". Calling
// Init again with the same log file keeps appending to the open file.
func Init(logDir string, cfg config.LogConfig) error {
	writer, err := destination(logDir, cfg.Destination)
	if err != nil {
		return err
	}
	slog.SetDefault(New(writer, cfg))
	if writer != logFile {
		closeLogFile()
	}
	if f, ok := writer.(*os.File); ok && cfg.Destination == "file" {
		logFile = f
	}
	return nil
}

// Close closes the log file opened by Init, if any.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func closeLogFile() {
	if err := Close(); err != nil {
		slog.Warn("Cannot close log file", "error", err)
	}
}

// New creates a logger that writes to w with format and level from cfg.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text", "tint":
		// tint is rendered as text for now
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

func destination(logDir, dest string) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		if logFile != nil && logFile.Name() == logPath {
			return logFile, nil
		}
		file, err := os.Create(logPath)
		if err != nil {
			return nil, CreateLogFileError(logPath, err)
		}
		return file, nil
	default:
		return os.Stderr, nil
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
