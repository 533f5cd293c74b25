// Package sound plays the alarm sound through an external player process.
//
// ExecPlayer looks for a command-line player (mpv, ffplay, paplay, aplay,
// afplay) and relaunches it until Stop is called. NopPlayer keeps only the
// playing flag and is used for muted runs.
package sound
