package tsbind

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/refaktor/tsbind/textutils"
)

type LogLevel int

const (
	INFO  LogLevel = 0
	WARN  LogLevel = 1
	ERROR LogLevel = 2
)

// Logger writes "PREFIX LEVEL: message" lines. Multi-line messages
// start on their own line and are indented.
//
// A nil *Logger or one with a nil Writer discards everything.
type Logger struct {
	Writer   io.Writer
	Prefix   string
	MinLevel LogLevel
}

func (l *Logger) Log(level LogLevel, format string, args ...any) {
	if l == nil || l.Writer == nil || level < l.MinLevel {
		return
	}
	var b bytes.Buffer
	if l.Prefix != "" {
		b.WriteString(l.Prefix)
		b.WriteString(" ")
	}
	switch level {
	case INFO:
		b.WriteString("INFO")
	case WARN:
		b.WriteString("WARNING")
	case ERROR:
		b.WriteString("ERROR")
	default:
		panic(fmt.Sprintf("invalid log level: %v", level))
	}
	b.WriteString(":")
	s := fmt.Sprintf(format, args...)
	if strings.Contains(strings.TrimSuffix(s, "\n"), "\n") {
		b.WriteString("\n")
		s = textutils.IndentString(s, "  ", 1)
	} else {
		b.WriteString(" ")
	}
	b.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
	// a failing log writer has nowhere to report to
	_, _ = io.Copy(l.Writer, &b)
}

func (l *Logger) Infof(format string, args ...any) { l.Log(INFO, format, args...) }
func (l *Logger) Warnf(format string, args ...any) { l.Log(WARN, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.Log(ERROR, format, args...) }
