package duckdns

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/logrusorgru/aurora"
	"golang.org/x/term"
)

// Level classifies a log record.
type Level string

const (
	LevelInfo    Level = "Info"
	LevelError   Level = "Error"
	LevelSuccess Level = "Success"
	LevelWarning Level = "Warning"
)

const timestampLayout = "2006.01.02 15:04:05"

var discard = NewLogger(io.Discard, nil)

// Logger appends leveled records to a single append-only store,
// one line per record,
// optionally mirroring each line to a console writer with level-appropriate
// coloring.
// The mirror is decided at construction time and never affects control flow.
type Logger struct {
	out    io.Writer
	mirror io.Writer
}

// NewLogger returns a Logger writing records to out.
// mirror may be nil to disable console mirroring.
func NewLogger(out, mirror io.Writer) *Logger {
	return &Logger{out: out, mirror: mirror}
}

// OpenLog opens (or creates) the append-only log file at path.
// When stdout is attached to a terminal,
// records are also mirrored to the console with colored levels.
func OpenLog(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %q: %w", path, err)
	}
	var mirror io.Writer
	if term.IsTerminal(int(os.Stdout.Fd())) {
		mirror = os.Stdout
	}
	return NewLogger(f, mirror), nil
}

// Record appends one line in the form "[timestamp] [Level] message".
// Each line is written with a single Write call so that overlapping
// invocations appending to the same file cannot interleave mid-line.
func (l *Logger) Record(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format(timestampLayout), level, msg)
	l.out.Write([]byte(line))
	if l.mirror != nil {
		io.WriteString(l.mirror, colorize(level, line))
	}
}

func (l *Logger) Info(format string, args ...any)    { l.Record(LevelInfo, format, args...) }
func (l *Logger) Error(format string, args ...any)   { l.Record(LevelError, format, args...) }
func (l *Logger) Success(format string, args ...any) { l.Record(LevelSuccess, format, args...) }
func (l *Logger) Warning(format string, args ...any) { l.Record(LevelWarning, format, args...) }

func colorize(level Level, line string) string {
	switch level {
	case LevelError:
		return aurora.Red(line).String()
	case LevelSuccess:
		return aurora.Green(line).String()
	case LevelWarning:
		return aurora.Yellow(line).String()
	default:
		return line
	}
}
