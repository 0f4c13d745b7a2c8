package sentry

import (
	"io"
	"regexp"
	"strings"

	gosentry "github.com/getsentry/sentry-go"
)

// Level selects how a log line is forwarded.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// logHeader matches the prefix, date, time and file:line the log package
// writes before each message.
var logHeader = regexp.MustCompile(`^[A-Z]+: \d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} (\S+:\d+): `)

// Writer tees log output to Sentry. Error lines become events and the rest
// become breadcrumbs on the next event.
type Writer struct {
	inner io.Writer
	level Level
}

// NewWriter returns a Writer that always writes to inner first.
func NewWriter(inner io.Writer, level Level) *Writer {
	return &Writer{inner: inner, level: level}
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.inner.Write(p)
	if !enabled {
		return n, err
	}

	msg, origin := splitLogLine(string(p))
	if msg == "" {
		return n, err
	}

	if w.level == LevelError {
		gosentry.WithScope(func(scope *gosentry.Scope) {
			if origin != "" {
				scope.SetTag("origin", origin)
			}
			gosentry.CaptureMessage(msg)
		})
		return n, err
	}
	gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
		Level:    breadcrumbLevel(w.level),
		Category: "log",
		Message:  msg,
		Data:     map[string]interface{}{"origin": origin},
	})
	return n, err
}

// splitLogLine separates the message from the logger's header. Events with
// the same message then group together regardless of when they happened.
func splitLogLine(line string) (msg, origin string) {
	line = strings.TrimSpace(line)
	if m := logHeader.FindStringSubmatchIndex(line); m != nil {
		return line[m[1]:], line[m[2]:m[3]]
	}
	return line, ""
}

func breadcrumbLevel(l Level) gosentry.Level {
	if l == LevelWarning {
		return gosentry.LevelWarning
	}
	return gosentry.LevelInfo
}
