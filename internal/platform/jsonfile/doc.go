// Package jsonfile persists the full task store state as a single JSON
// document. The document is read once at startup and rewritten wholesale at
// shutdown; every read or write failure is reported as store.ErrFatalIO.
package jsonfile
