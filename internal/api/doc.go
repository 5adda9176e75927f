// Package api handles incoming HTTP requests for tasks and logger levels.
// It decodes and validates query parameters and bodies, calls the task
// service, and maps domain and store errors to status codes and client
// messages.
package api
