// Package common holds helpers shared by the CLI commands.
//
// It provides a lightweight client for the AlarmClockService with call
// timeouts, and detects the current system actor (hostname/username) that
// every call carries for the daemon's audit log.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
