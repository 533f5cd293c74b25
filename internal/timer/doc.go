// Package timer implements a pausable countdown that is independent of alarms.
package timer
