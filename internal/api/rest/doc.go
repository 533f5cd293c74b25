// Package rest exposes the alarm clock over a small JSON HTTP API built on gin.
//
// Routes mirror the gRPC service: the clock state, a text render of the
// face, the alarm list and the stop and timezone commands. Errors are
// returned as {"error": "..."} with a status derived from the controller
// error kind.
package rest
