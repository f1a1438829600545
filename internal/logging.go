package internal

// Internal logging utility. Same leveled-logger shape the rest of this
// codebase calls (Info/Warn/Error/Fatal, +f variants, SetLogLevel), now
// backed by zerolog instead of the standard log package.

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
)

type Logger struct {
	logLevel LogLevel
	zl       zerolog.Logger
}

type LogLevel int

const (
	// error levels that should almost always be printed
	LevelFatal LogLevel = iota // error that must stop the program (panics)
	LevelError                 // error that does not need to stop execution

	// debugging levels, okay to disable
	LevelWarn // something may be wrong, but not necessarily an error
	LevelInfo // nothing wrong, informational only

	// Production code by default only shows warnings and above.
	LogLevelDefault = LevelWarn

	// min, max levels for setting print level
	LevelMin = LevelFatal
	LevelMax = LevelInfo
)

func NewLogger() *Logger {
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return &Logger{logLevel: LogLevelDefault, zl: zl}
}

func (l *Logger) LogLevel() LogLevel {
	return l.logLevel
}

// SetLogLevel returns the old level
func (l *Logger) SetLogLevel(level LogLevel) LogLevel {
	if level < LevelMin || level > LevelMax {
		panic("trying to set invalid log level")
	}
	old := l.logLevel
	l.logLevel = level
	return old
}

func (l *Logger) enabled(level LogLevel) bool {
	return level <= l.logLevel
}

func (l *Logger) Info(v ...any) {
	if l.enabled(LevelInfo) {
		l.zl.Info().Msg(fmt.Sprint(v...))
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l.enabled(LevelInfo) {
		l.zl.Info().Msg(fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Warn(v ...any) {
	if l.enabled(LevelWarn) {
		l.zl.Warn().Msg(fmt.Sprint(v...))
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l.enabled(LevelWarn) {
		l.zl.Warn().Msg(fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Error(v ...any) {
	if l.enabled(LevelError) {
		l.zl.Error().Msg(fmt.Sprint(v...))
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	if l.enabled(LevelError) {
		l.zl.Error().Msg(fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Fatal(v ...any) {
	l.zl.Error().Bytes("stack", debug.Stack()).Msg(fmt.Sprint(v...))
	os.Exit(1)
}

func (l *Logger) Fatalf(format string, v ...any) {
	l.zl.Error().Bytes("stack", debug.Stack()).Msg(fmt.Sprintf(format, v...))
	os.Exit(1)
}
