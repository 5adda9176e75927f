// Package memory provides an in-memory implementation of store.TaskStore.
// Tasks live in an insertion-ordered slice that every query scans linearly;
// a single mutex serializes all access so concurrent HTTP handlers observe
// a consistent collection.
package memory
