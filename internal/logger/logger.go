// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"strings"

	"github.com/phuslu/log"
)

// Setup configures the default logger with the given level, writing console
// output to w. MCP servers pass stderr here: stdout is reserved for the
// protocol stream.
func Setup(level string, w io.Writer) {
	log.DefaultLogger = log.Logger{
		Level:      parseLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:      w,
			ColorOutput: false,
		},
	}
}

// parseLevel converts a config string to a log level, defaulting to info.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
