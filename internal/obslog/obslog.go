// Package obslog is the structured logger shared by the scanner and the
// witness builder.
//
// The teacher (cmd/auctiond/logger.go) hand-rolls a leveled Logger with
// console/file/audit sinks around the stdlib log package. This keeps the
// same level vocabulary and an Audit sink for double-spend/consolidation
// events, but backs it with zerolog — already present in the dependency
// graph via gnark — instead of three separate log.Logger instances.
package obslog

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger with the audit-event convention the
// teacher's auction daemon used for double-spend and consolidation
// notices: structured fields rather than a free-form sentence.
type Logger struct {
	base  zerolog.Logger
	audit zerolog.Logger
}

var (
	defaultOnce sync.Once
	defaultLog  *Logger
)

// New builds a Logger writing to w at the given zerolog level. Passing a
// nil w defaults to os.Stderr.
func New(component string, level zerolog.Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	base := zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()
	return &Logger{base: base, audit: base.With().Bool("audit", true).Logger()}
}

// Default returns a package-wide Logger at Info level writing to stderr,
// lazily constructed on first use so importing this package never has a
// side effect.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLog = New("cloakcraft", zerolog.InfoLevel, os.Stderr)
	})
	return defaultLog
}

// With returns a derived Logger with key=value attached to every
// subsequent event, e.g. a scan-session or witness-build correlation id.
func (l *Logger) With(key, value string) *Logger {
	base := l.base.With().Str(key, value).Logger()
	return &Logger{base: base, audit: base.With().Bool("audit", true).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.base.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.base.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.base.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.base.Error() }

// Audit records a security-relevant event (double-spend attempt, forced
// consolidation, DLEQ failure) at warn level with an explicit audit=true
// field so downstream log pipelines can route it separately.
func (l *Logger) Audit(event string) *zerolog.Event {
	return l.audit.Warn().Str("event", event)
}
