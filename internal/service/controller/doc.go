// Package controller owns the alarm registry and everything that acts on it.
//
// The Controller validates new alarms, persists the list after every
// change, compares the current time against the list on every poll tick
// and starts or stops the alarm sound. Transports and the terminal view
// call into it; nothing else touches the registry.
package controller
