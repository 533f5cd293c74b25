// Package daemon runs the alarm clock: it owns the controller, ticks it
// once per poll interval and exposes it over gRPC and HTTP.
//
// A PID file guards against two daemons sharing the same alarm list.
package daemon
