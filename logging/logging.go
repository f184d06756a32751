// Package logging sets up rotating file loggers for llmfit. The TUI owns
// stdout, so everything the tool wants to say out-of-band goes to the log file.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	DebugLogger zerolog.Logger
	InfoLogger  zerolog.Logger
	ErrorLogger zerolog.Logger
)

// Init configures the package loggers. An empty logFilePath falls back to
// ~/.config/llmfit/llmfit.log, a leading ~ is expanded to the home directory.
func Init(logLevel string, logFilePath string) error {
	if logFilePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		logFilePath = filepath.Join(homeDir, ".config", "llmfit", "llmfit.log")
	}

	if strings.HasPrefix(logFilePath, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		logFilePath = filepath.Join(homeDir, logFilePath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return err
	}

	// Rotate the log file so a long-lived install doesn't grow unbounded
	rotate := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    2,  // megabytes
		MaxBackups: 3,  // number of files
		MaxAge:     60, // days
		Compress:   false,
	}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	fileWriter := zerolog.MultiLevelWriter(rotate)

	log.Logger = zerolog.New(fileWriter).With().Timestamp().Logger()
	DebugLogger = log.Logger.Level(zerolog.DebugLevel)
	InfoLogger = log.Logger.Level(zerolog.InfoLevel)
	ErrorLogger = log.Logger.Level(zerolog.ErrorLevel)

	if logLevel == "debug" {
		DebugLogger.Printf("Logging to: %s\n", logFilePath)
	}

	return nil
}
