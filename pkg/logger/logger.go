package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type LogLevel int

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
)

const (
	APP        = "APP"
	CHAT       = "CHAT"
	CONFIG     = "CONFIG"
	HANDLER    = "HANDLER"
	MIDDLEWARE = "MIDDLEWARE"
	REDIS      = "REDIS"
	SERVICE    = "SERVICE"
	WATCHER    = "WATCHER"
	WIDGET     = "WIDGET"
)

var (
	mu           sync.RWMutex
	currentLevel = getLogLevel()
	base         = newBase(os.Stderr)
)

func getLogLevel() LogLevel {
	level := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch level {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func newBase(w io.Writer) zerolog.Logger {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetOutput redirects all log output to w and re-reads LOG_LEVEL and LOG_FORMAT.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = newBase(w)
	currentLevel = getLogLevel()
}

// Fields returns a zerolog logger tagged with the namespace, for call sites
// that want structured fields instead of a formatted message.
func Fields(namespace string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.Level(zerologLevel(currentLevel)).With().Str("namespace", namespace).Logger()
}

func zerologLevel(l LogLevel) zerolog.Level {
	switch l {
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func write(min LogLevel, level zerolog.Level, namespace, format string, v ...interface{}) {
	mu.RLock()
	l := base
	enabled := currentLevel >= min
	mu.RUnlock()

	if !enabled {
		return
	}
	l.WithLevel(level).Str("namespace", namespace).Msgf(format, v...)
}

func Debug(namespace, format string, v ...interface{}) {
	write(DEBUG, zerolog.DebugLevel, namespace, format, v...)
}

func Info(namespace, format string, v ...interface{}) {
	write(INFO, zerolog.InfoLevel, namespace, format, v...)
}

func Warn(namespace, format string, v ...interface{}) {
	write(WARN, zerolog.WarnLevel, namespace, format, v...)
}

func Error(namespace, format string, v ...interface{}) {
	write(ERROR, zerolog.ErrorLevel, namespace, format, v...)
}

// Fatal logs at fatal level but does not exit; callers decide how to stop.
func Fatal(namespace, format string, v ...interface{}) {
	write(ERROR, zerolog.FatalLevel, namespace, format, v...)
}
