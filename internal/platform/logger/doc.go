// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON
// logging split into two categories, requests and tasks, whose minimum levels can
// be read and changed while the server is running. Every record is stamped with
// the current inbound request number.
package logger
