// Package sentry wraps crash and error reporting. Every function is a no-op
// until Init succeeds with telemetry enabled.
package sentry

import (
	"regexp"
	"runtime"
	"time"

	gosentry "github.com/getsentry/sentry-go"
)

// dsn is a package-level var so tests and builds can override it. An empty DSN
// disables reporting.
var dsn = ""

var enabled bool

const flushTimeout = 2 * time.Second

// Init configures the Sentry client for this release.
func Init(version string, telemetryEnabled bool) error {
	if !telemetryEnabled || dsn == "" {
		enabled = false
		return nil
	}

	err := gosentry.Init(gosentry.ClientOptions{
		Dsn:              dsn,
		Release:          "codex@" + version,
		AttachStacktrace: true,
		SampleRate:       1.0,
		SendDefaultPII:   false,
		BeforeSend: func(event *gosentry.Event, _ *gosentry.EventHint) *gosentry.Event {
			return scrubEvent(event)
		},
		BeforeBreadcrumb: func(b *gosentry.Breadcrumb, _ *gosentry.BreadcrumbHint) *gosentry.Breadcrumb {
			b.Message = scrub(b.Message)
			return b
		},
	})
	if err != nil {
		return err
	}

	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("version", version)
	})

	enabled = true
	return nil
}

// IsEnabled returns whether reporting is active.
func IsEnabled() bool {
	return enabled
}

// Flush waits for buffered events to be sent.
func Flush() {
	if !enabled {
		return
	}
	gosentry.Flush(flushTimeout)
}

// RecoverPanic reports a panic, flushes, then re-panics.
// Usage: defer sentry.RecoverPanic()
func RecoverPanic() {
	if !enabled {
		return
	}
	if err := recover(); err != nil {
		gosentry.CurrentHub().Recover(err)
		gosentry.Flush(flushTimeout)
		panic(err)
	}
}

// SetContext tags events with the identity service host and the current
// theme. Never pass user identifiers here.
func SetContext(identityHost, theme string) {
	if !enabled {
		return
	}
	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetTag("theme", theme)
		scope.SetContext("app", map[string]interface{}{
			"identity_host": identityHost,
			"theme":         theme,
		})
	})
}

var (
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+|access_token=|refresh_token=)[A-Za-z0-9._~+/=-]+`)
)

// scrub removes email addresses and tokens from a log line.
func scrub(s string) string {
	s = emailPattern.ReplaceAllString(s, "[email]")
	return bearerPattern.ReplaceAllString(s, "${1}[redacted]")
}

// scrubEvent strips anything that identifies the signed-in user.
func scrubEvent(event *gosentry.Event) *gosentry.Event {
	if event == nil {
		return nil
	}
	event.User = gosentry.User{}
	event.Message = scrub(event.Message)
	for i := range event.Exception {
		event.Exception[i].Value = scrub(event.Exception[i].Value)
	}
	for _, b := range event.Breadcrumbs {
		b.Message = scrub(b.Message)
	}
	return event
}
