// Package logger provides a leveled logger for the secrets-to-env CLI.
//
// It is intended for internal use by secrets-to-env only.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	nocolor   = "0"
	red       = "31"
	green     = "38;5;48"
	yellow    = "33"
	gray      = "38;5;251"
	lightgray = "38;5;243"
	cyan      = "1;36"
)

const (
	DateFormat = "2006-01-02 15:04:05"
)

var windowsColors bool

type Logger interface {
	Debug(format string, v ...any)
	Error(format string, v ...any)
	Fatal(format string, v ...any)
	Notice(format string, v ...any)
	Warn(format string, v ...any)
	Info(format string, v ...any)

	WithFields(fields ...Field) Logger
	SetLevel(level Level)
	Level() Level
}

// ConsoleLogger is a Logger implementation that writes to a Printer.
type ConsoleLogger struct {
	level   Level
	fields  Fields
	printer Printer
	exitFn  func(int)
}

func NewConsoleLogger(printer Printer, exitFn func(int)) Logger {
	return &ConsoleLogger{
		level:   NOTICE,
		printer: printer,
		exitFn:  exitFn,
	}
}

// WithFields returns a copy of the logger with the provided fields
func (l *ConsoleLogger) WithFields(fields ...Field) Logger {
	clone := *l
	clone.fields = append(clone.fields, fields...)
	return &clone
}

// SetLevel sets the level in the logger
func (l *ConsoleLogger) SetLevel(level Level) {
	l.level = level
}

func (l *ConsoleLogger) Debug(format string, v ...any) {
	if l.level == DEBUG {
		l.log(DEBUG, format, v...)
	}
}

func (l *ConsoleLogger) Error(format string, v ...any) {
	l.log(ERROR, format, v...)
}

func (l *ConsoleLogger) Fatal(format string, v ...any) {
	l.log(FATAL, format, v...)
	l.exitFn(1)
}

func (l *ConsoleLogger) Notice(format string, v ...any) {
	if l.level <= NOTICE {
		l.log(NOTICE, format, v...)
	}
}

func (l *ConsoleLogger) Info(format string, v ...any) {
	if l.level <= INFO {
		l.log(INFO, format, v...)
	}
}

func (l *ConsoleLogger) Warn(format string, v ...any) {
	if l.level <= WARN {
		l.log(WARN, format, v...)
	}
}

func (l *ConsoleLogger) Level() Level {
	return l.level
}

func (l *ConsoleLogger) log(level Level, format string, v ...any) {
	l.printer.Print(level, fmt.Sprintf(format, v...), l.fields)
}

// Printer renders a log message somewhere.
type Printer interface {
	Print(level Level, msg string, fields Fields)
}

// TextPrinter prints log messages as human-readable text lines.
type TextPrinter struct {
	Colors bool

	mutex  sync.Mutex
	writer io.Writer
}

func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{
		writer: w,
		Colors: ColorsAvailable(),
	}
}

func ColorsAvailable() bool {
	// Color support for windows is set in init
	if runtime.GOOS == "windows" && !windowsColors {
		return false
	}

	// Colors can only be shown if STDOUT is a terminal
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func (p *TextPrinter) Print(level Level, msg string, fields Fields) {
	now := time.Now().Format(DateFormat)
	line := ""

	fieldStr := ""
	for _, field := range fields {
		fieldStr += " " + field.Key() + "=" + field.String()
	}

	if p.Colors {
		levelColor := green
		messageColor := nocolor

		switch level {
		case DEBUG:
			levelColor = gray
			messageColor = gray
		case NOTICE:
			levelColor = cyan
		case WARN:
			levelColor = yellow
		case ERROR, FATAL:
			levelColor = red
		}

		if len(fields) > 0 {
			line = fmt.Sprintf("\x1b[%sm%s %-6s\x1b[0m \x1b[%sm%s\x1b[0m\x1b[%sm%s\x1b[0m\n", levelColor, now, level, messageColor, msg, lightgray, fieldStr)
		} else {
			line = fmt.Sprintf("\x1b[%sm%s %-6s\x1b[0m \x1b[%sm%s\x1b[0m\n", levelColor, now, level, messageColor, msg)
		}
	} else {
		line = fmt.Sprintf("%s %-6s %s%s\n", now, level, msg, fieldStr)
	}

	// Make sure we're only outputting a line one at a time
	p.mutex.Lock()
	_, _ = fmt.Fprint(p.writer, line)
	p.mutex.Unlock()
}

// JSONPrinter prints one JSON object per log message.
type JSONPrinter struct {
	mutex  sync.Mutex
	writer io.Writer
}

func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

func (p *JSONPrinter) Print(level Level, msg string, fields Fields) {
	obj := map[string]string{
		"ts":    time.Now().Format(DateFormat),
		"level": level.String(),
		"msg":   msg,
	}
	for _, field := range fields {
		obj[field.Key()] = field.String()
	}

	b, err := json.Marshal(obj)
	if err != nil {
		// Don't drop the message just because a field wouldn't marshal
		b = []byte(fmt.Sprintf(`{"level":%q,"msg":%q}`, level.String(), strings.ToValidUTF8(msg, "")))
	}

	p.mutex.Lock()
	_, _ = fmt.Fprintln(p.writer, string(b))
	p.mutex.Unlock()
}

// Discard is a Logger that does nothing, for use in tests.
var Discard = NewConsoleLogger(NewTextPrinter(io.Discard), func(int) {})
