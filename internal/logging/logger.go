package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sync"
	"time"
)

// Logger defines a minimal, printf-style logging contract. Components depend
// on this interface so construction decides verbosity, not process-wide state.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger { return nopLogger{} }

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

type componentLogger struct {
	mu        sync.Mutex
	out       io.Writer
	level     Level
	component string
}

// New creates a logger writing to out at the given minimum level.
func New(out io.Writer, level Level, component string) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &componentLogger{out: out, level: level, component: component}
}

// NewComponentLogger returns a stderr logger scoped to a component.
func NewComponentLogger(component string, level Level) Logger {
	return New(os.Stderr, level, component)
}

func (l *componentLogger) log(level Level, format string, args ...any) {
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	} else {
		file = "???"
		line = 0
	}

	// Format: 2025-09-30 12:34:56 [INFO] [platform] client.go:42 - message
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	component := l.component
	if component == "" {
		component = "INSPECTOR"
	}
	message := fmt.Sprintf(format, args...)
	logLine := fmt.Sprintf("%s [%s] [%s] %s:%d - %s\n",
		timestamp, level, component, file, line, message)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, Sanitize(logLine))
}

func (l *componentLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *componentLogger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *componentLogger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *componentLogger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

const redactedPlaceholder = "[REDACTED]"

var (
	authorizationBearerPattern = regexp.MustCompile(
		`(?i)((?:"|')?authorization(?:"|')?\s*(?:=|:)\s*)(bearer\s+)([^"'\s,;]+)`,
	)
	sensitiveKeyValuePattern = regexp.MustCompile(
		`(?i)((?:"|')?(?:api[_-]?key|token|secret|password)(?:"|')?\s*(?:=|:)\s*)(?:"|')?([^"'\s,;]+)((?:"|')?)`,
	)
	standaloneSecretPattern = regexp.MustCompile(
		`(?i)(sk-[A-Za-z0-9]{16,}|ghp_[A-Za-z0-9]{16,}|apify_api_[A-Za-z0-9]{16,})`,
	)
)

// Sanitize masks API tokens and other secrets before a line reaches any sink.
func Sanitize(line string) string {
	sanitized := authorizationBearerPattern.ReplaceAllStringFunc(line, func(match string) string {
		sub := authorizationBearerPattern.FindStringSubmatch(match)
		if len(sub) != 4 {
			return match
		}
		return sub[1] + sub[2] + redactedPlaceholder
	})

	sanitized = sensitiveKeyValuePattern.ReplaceAllStringFunc(sanitized, func(match string) string {
		sub := sensitiveKeyValuePattern.FindStringSubmatch(match)
		if len(sub) != 4 {
			return match
		}
		return sub[1] + redactedPlaceholder + sub[3]
	})

	return standaloneSecretPattern.ReplaceAllString(sanitized, redactedPlaceholder)
}
