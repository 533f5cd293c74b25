// Package alarms implements persistence for the pending alarm list.
//
// FileRepository stores the list as a JSON array on disk, SQLiteRepository
// keeps it in an SQLite table. Both implement the Repository interface the
// controller depends on; Open picks one from the configuration.
package alarms
