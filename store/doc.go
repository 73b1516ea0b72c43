// Package store provides application persistence backends: an in-memory
// store for tests and short-lived processes, and a JSON file store that
// survives restarts.
package store
