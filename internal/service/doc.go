// Package service contains the application-specific use cases of the task
// tracker. It orchestrates the task store (defined in internal/store),
// records task events on the task logger, and traces every operation.
//
// Error handling principles:
//  1. Validation, conflict and not-found errors from the domain and store
//     layers are returned unchanged so callers can match them with errors.Is
//  2. Unexpected errors are wrapped in TaskServiceError
//  3. The API layer maps errors to HTTP status codes
//
// The service layer depends on domain entities and the store interfaces but
// never on a specific storage implementation.
package service
