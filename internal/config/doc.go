// Package config defines the alarm clock settings and provides helpers to
// load, validate and save them in YAML format.
//
// Values from an optional .env file next to the settings file, and then
// from ALARM_CLOCK_* environment variables, override the YAML values.
package config
