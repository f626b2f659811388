package debug

import (
	"fmt"
	"strings"
	"time"
)

// LogLevel represents the severity level of a log entry
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelNone:
		return "NONE"
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a level name (case-insensitive) into a LogLevel.
func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(name) {
	case "NONE":
		return LogLevelNone, nil
	case "ERROR":
		return LogLevelError, nil
	case "WARNING":
		return LogLevelWarning, nil
	case "INFO":
		return LogLevelInfo, nil
	case "DEBUG":
		return LogLevelDebug, nil
	case "TRACE":
		return LogLevelTrace, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// Component represents the component that generated the log entry
type Component string

const (
	ComponentEncoder  Component = "Encoder"
	ComponentDecoder  Component = "Decoder"
	ComponentStream   Component = "Stream"
	ComponentLifetime Component = "Lifetime"
)

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp time.Time
	Component Component
	Level     LogLevel
	Message   string
	Data      map[string]interface{} // Optional structured data
}

// Format formats the log entry as a string
func (e *LogEntry) Format() string {
	timestamp := e.Timestamp.Format("15:04:05.000")
	return fmt.Sprintf("[%s] [%s] %s: %s", timestamp, e.Component, e.Level, e.Message)
}

