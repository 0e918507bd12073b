// Package state holds the owned in-memory state of the catalog, progress,
// credential and tutor stores together with the pure transitions over it.
//
// Every transition takes the current value and returns a new one; inputs are
// never mutated, so a caller that fails to persist a result can keep the old
// value and nothing is partially applied.
package state
