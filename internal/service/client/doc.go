// Package client runs the remote CLI commands against a running alarm clock.
//
// Run loads the settings, connects to the daemon's gRPC address, and executes
// one Action, retrying while the daemon is unreachable. Actions print their
// result to the command output.
package client
