// Package clock computes analog clock geometry and renders it as text.
//
// It also resolves IANA timezones and lists the zones available on the
// host, so the daemon and the CLI can show the time anywhere.
package clock
