// Package version exposes build metadata for the alarm clock.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags
// (-X github.com/oshokin/alarm-clock/internal/version.Version=...).
package version
