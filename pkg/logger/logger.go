// Package logger is the structured logging used by the service, the
// bridge and the command line tool. The verification core does not log.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects where and how much is logged
type Config struct {
	// Level is one of debug, info, warn, error or disabled
	Level string

	// Output receives log lines; nil means stderr
	Output io.Writer

	// Pretty writes console-formatted lines instead of JSON
	Pretty bool

	// TimeFormat is used by pretty output only
	TimeFormat string

	// CallerEnabled records file:line of the call site
	CallerEnabled bool
}

// DefaultConfig logs JSON at info level to stderr
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Output:     os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// Logger writes leveled, structured entries
type Logger struct {
	zl zerolog.Logger
}

// New builds a logger from cfg. A nil cfg uses DefaultConfig.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var w io.Writer = os.Stderr
	if cfg.Output != nil {
		w = cfg.Output
	}
	if cfg.Pretty {
		format := cfg.TimeFormat
		if format == "" {
			format = time.RFC3339
		}
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: format}
	}

	zctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.CallerEnabled {
		zctx = zctx.Caller()
	}
	return &Logger{zl: zctx.Logger()}
}

// Nop discards everything
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// levels accepted in configuration files and flags
var levels = map[string]zerolog.Level{
	"":         zerolog.InfoLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"disabled": zerolog.Disabled,
	"off":      zerolog.Disabled,
}

// ParseLevel maps a level name to zerolog. Unknown names are info.
func ParseLevel(name string) zerolog.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}

// ValidLevel reports whether name is a known level
func ValidLevel(name string) bool {
	_, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Component returns a child logger whose entries carry component=name
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

// With returns a child logger with a fixed string field
func (l *Logger) With(key, val string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, val).Logger()}
}

// Debug starts a debug entry
func (l *Logger) Debug() *Entry { return &Entry{ze: l.zl.Debug()} }

// Info starts an info entry
func (l *Logger) Info() *Entry { return &Entry{ze: l.zl.Info()} }

// Warn starts a warn entry
func (l *Logger) Warn() *Entry { return &Entry{ze: l.zl.Warn()} }

// Error starts an error entry
func (l *Logger) Error() *Entry { return &Entry{ze: l.zl.Error()} }

// Entry is a log line being built. Methods on an entry for a disabled
// level are no-ops.
type Entry struct {
	ze *zerolog.Event
}

// Str adds a string field
func (e *Entry) Str(key, val string) *Entry {
	e.ze.Str(key, val)
	return e
}

// ID adds a hex identifier shortened with Abbrev
func (e *Entry) ID(key, hexID string) *Entry {
	e.ze.Str(key, Abbrev(hexID))
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, val int) *Entry {
	e.ze.Int(key, val)
	return e
}

// Uint64 adds a uint64 field, used for counters
func (e *Entry) Uint64(key string, val uint64) *Entry {
	e.ze.Uint64(key, val)
	return e
}

// Float adds a float64 field
func (e *Entry) Float(key string, val float64) *Entry {
	e.ze.Float64(key, val)
	return e
}

// Bool adds a bool field
func (e *Entry) Bool(key string, val bool) *Entry {
	e.ze.Bool(key, val)
	return e
}

// Dur adds a duration field in the zerolog duration unit
func (e *Entry) Dur(key string, val time.Duration) *Entry {
	e.ze.Dur(key, val)
	return e
}

// Err records err under "error"
func (e *Entry) Err(err error) *Entry {
	e.ze.AnErr("error", err)
	return e
}

// Msg writes the entry
func (e *Entry) Msg(msg string) {
	e.ze.Msg(msg)
}

// Abbrev shortens a long hex identifier to its first and last eight
// characters
func Abbrev(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + ".." + id[len(id)-8:]
}
