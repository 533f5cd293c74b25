// Package alarm contains core domain types for the alarm clock.
//
// It defines Registry (the circular ordered collection of pending alarm
// times) and helpers that validate and format "HH:MM AM/PM" values.
package alarm
