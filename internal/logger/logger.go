// Package logger provides the structured, leveled logging used across
// paperembed. All log output goes to stderr: stdout is reserved for the
// progress lines and vector output that external supervisors parse.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
	DISABLED
)

// Format selects how log lines are rendered.
type Format int

const (
	TEXT Format = iota
	JSON
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// ParseLevel maps a level name to its Level, defaulting to INFO.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	case "disabled", "off":
		return DISABLED
	}
	return INFO
}

// ParseFormat maps a format name to its Format, defaulting to TEXT.
func ParseFormat(name string) Format {
	if strings.EqualFold(strings.TrimSpace(name), "json") {
		return JSON
	}
	return TEXT
}

// Logger is a leveled logger with attached context fields.
type Logger struct {
	mu      sync.Mutex
	level   Level
	format  Format
	out     io.Writer
	fields  map[string]interface{}
	context []string
}

// New creates a logger writing to out. A nil out defaults to stderr.
func New(out io.Writer, level Level, format Format) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level:  level,
		format: format,
		out:    out,
		fields: map[string]interface{}{"service": "paperembed"},
	}
}

// SetLevel changes the minimum level that is emitted.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetFormat changes the output format.
func (l *Logger) SetFormat(format Format) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = format
}

// WithField returns a logger that includes key=value on every line.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value

	return &Logger{
		level:   l.level,
		format:  l.format,
		out:     l.out,
		fields:  fields,
		context: append([]string{}, l.context...),
	}
}

// WithContext returns a logger scoped under the given context names,
// e.g. WithContext("pipeline") prefixes text lines with [pipeline].
func (l *Logger) WithContext(contexts ...string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	return &Logger{
		level:   l.level,
		format:  l.format,
		out:     l.out,
		fields:  l.fields,
		context: append(append([]string{}, l.context...), contexts...),
	}
}

// Debug logs at DEBUG level. The message is a Printf format string.
func (l *Logger) Debug(msg string, args ...interface{}) { l.log(DEBUG, msg, args...) }

// Info logs at INFO level.
func (l *Logger) Info(msg string, args ...interface{}) { l.log(INFO, msg, args...) }

// Warn logs at WARN level.
func (l *Logger) Warn(msg string, args ...interface{}) { l.log(WARN, msg, args...) }

// Error logs at ERROR level.
func (l *Logger) Error(msg string, args ...interface{}) { l.log(ERROR, msg, args...) }

// Fatal logs at FATAL level and exits with status 1.
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.log(FATAL, msg, args...)
	os.Exit(1)
}

func (l *Logger) log(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if l.format == JSON {
		entry := make(map[string]interface{}, len(l.fields)+4)
		for k, v := range l.fields {
			entry[k] = v
		}
		entry["time"] = timestamp
		entry["level"] = levelNames[level]
		entry["message"] = msg
		if len(l.context) > 0 {
			entry["context"] = strings.Join(l.context, ".")
		}
		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.out, "%s [%s] %s (marshal failed: %v)\n", timestamp, levelNames[level], msg, err)
			return
		}
		fmt.Fprintln(l.out, string(data))
		return
	}

	var b strings.Builder
	b.WriteString(timestamp)
	b.WriteString(" [")
	b.WriteString(levelNames[level])
	b.WriteString("]")
	if len(l.context) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(l.context, "."))
		b.WriteString("]")
	}
	b.WriteString(" ")
	b.WriteString(msg)
	for k, v := range l.fields {
		if k == "service" {
			continue
		}
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	fmt.Fprintln(l.out, b.String())
}

var (
	defaultLogger   = New(os.Stderr, INFO, TEXT)
	defaultLoggerMu sync.Mutex
)

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = l
}

// Default returns the package-level default logger.
func Default() *Logger {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	return defaultLogger
}
