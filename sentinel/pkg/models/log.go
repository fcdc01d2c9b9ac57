// Package models defines the records produced and consumed by the event simulator.
package models

import "time"

// LogSource identifies the subsystem a log record originates from.
type LogSource string

const (
	SourceAuth     LogSource = "auth"
	SourceFirewall LogSource = "firewall"
	SourceApp      LogSource = "app"
	SourceDatabase LogSource = "database"
	SourceNetwork  LogSource = "network"
	SourceSystem   LogSource = "system"
)

// LogSources lists every known source in display order.
var LogSources = []LogSource{SourceAuth, SourceFirewall, SourceApp, SourceDatabase, SourceNetwork, SourceSystem}

// Valid reports whether s is one of the known sources.
func (s LogSource) Valid() bool {
	for _, known := range LogSources {
		if s == known {
			return true
		}
	}
	return false
}

// LogLevel is the severity of a log record.
type LogLevel string

const (
	LevelError LogLevel = "error"
	LevelWarn  LogLevel = "warn"
	LevelInfo  LogLevel = "info"
	LevelDebug LogLevel = "debug"
)

// LogLevels lists every known level, most severe first.
var LogLevels = []LogLevel{LevelError, LevelWarn, LevelInfo, LevelDebug}

// Valid reports whether l is one of the known levels.
func (l LogLevel) Valid() bool {
	for _, known := range LogLevels {
		if l == known {
			return true
		}
	}
	return false
}

// LogRecord is a single synthetic log line. Records are never mutated after creation.
type LogRecord struct {
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Source    LogSource `json:"source" yaml:"source"`
	Level     LogLevel  `json:"level" yaml:"level"`
	IP        string    `json:"ip" yaml:"ip"`
	Message   string    `json:"message" yaml:"message"`
}
