// Package log provides category-scoped debug logging for waypoint.
//
// Logging is off until Init or InitWriter installs a logger (the CLI does so
// for --debug). Every entry is one line,
//
//	2025-12-06T10:45:00 [INFO] [nav] navigated uri=/Root id=3f2a...
//
// written to the logger's sink and published to Subscribe listeners.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zjrosen/waypoint/internal/pubsub"
)

// Level is an entry's severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Category names the subsystem an entry comes from.
type Category string

const (
	CatNav      Category = "nav"      // dispatch and execution
	CatRegistry Category = "registry" // registration and bootstrap
	CatJournal  Category = "journal"
	CatConfig   Category = "config"
	CatCache    Category = "cache" // route cache
	CatTrace    Category = "trace" // tracer provider lifecycle
	CatCLI      Category = "cli"
)

const timeLayout = "2006-01-02T15:04:05"

// Logger writes entries to a sink and publishes them.
type Logger struct {
	mu       sync.Mutex
	sink     io.Writer
	closer   io.Closer
	enabled  bool
	minLevel Level
	events   *pubsub.Broker[string]
}

func newLogger(sink io.Writer, closer io.Closer) *Logger {
	return &Logger{
		sink:     sink,
		closer:   closer,
		enabled:  true,
		minLevel: LevelDebug,
		events:   pubsub.NewBroker[string](),
	}
}

var (
	mu        sync.RWMutex
	installed *Logger
	initOnce  sync.Once
	errInit   = errors.New("debug log already initialized")
)

// Init installs a logger appending to the file at path. Only the first call
// opens a file; the returned func closes it.
func Init(path string) (func(), error) {
	err := errInit
	initOnce.Do(func() {
		var f *os.File
		f, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: log path comes from config
		if err == nil {
			install(newLogger(f, f))
		}
	})
	if err != nil {
		return nil, err
	}
	l := current()
	return func() {
		if l.closer != nil {
			_ = l.closer.Close()
		}
	}, nil
}

// InitWriter installs a logger writing to w. A nil w only publishes.
func InitWriter(w io.Writer) {
	install(newLogger(w, nil))
}

// Reset removes the installed logger and closes its subscriptions.
func Reset() {
	install(nil)
}

func install(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	if installed != nil {
		installed.events.Close()
	}
	installed = l
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return installed
}

// SetEnabled switches output on or off without removing the logger.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, kv ...any) { emit(LevelDebug, cat, msg, kv) }
func Info(cat Category, msg string, kv ...any)  { emit(LevelInfo, cat, msg, kv) }
func Warn(cat Category, msg string, kv ...any)  { emit(LevelWarn, cat, msg, kv) }
func Error(cat Category, msg string, kv ...any) { emit(LevelError, cat, msg, kv) }

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	text := "<nil>"
	if err != nil {
		text = err.Error()
	}
	emit(LevelError, cat, msg, append(kv, "error", text))
}

func emit(level Level, cat Category, msg string, kv []any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}

	line := formatEntry(time.Now(), level, cat, msg, kv)
	if l.sink != nil {
		_, _ = io.WriteString(l.sink, line)
	}
	l.events.Publish(pubsub.LoggedEvent, line)
}

// formatEntry renders one line. Values containing spaces, quotes or '=' are
// quoted; a trailing key without a value is marked <missing>.
func formatEntry(at time.Time, level Level, cat Category, msg string, kv []any) string {
	var b strings.Builder
	b.WriteString(at.Format(timeLayout))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i < len(kv); i += 2 {
		value := "<missing>"
		if i+1 < len(kv) {
			value = fmt.Sprint(kv[i+1])
		}
		if strings.ContainsAny(value, " \t\n\"=") {
			value = strconv.Quote(value)
		}
		fmt.Fprintf(&b, " %v=%s", kv[i], value)
	}
	b.WriteByte('\n')
	return b.String()
}

// LogEvent carries one formatted entry.
type LogEvent = pubsub.Event[string]

// Subscribe streams entries logged from now on, or returns nil when no logger
// is installed. The channel closes with ctx or on Reset.
func Subscribe(ctx context.Context) <-chan LogEvent {
	l := current()
	if l == nil {
		return nil
	}
	return l.events.Subscribe(ctx)
}
