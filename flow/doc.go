// Package flow defines the admission workflow graph: the Router mapping each
// application status to the stage that handles it next.
//
// The transition table is fixed at design time. Routing is a pure function
// of the current status; no stage decides dynamically where control goes.
// Any status without an edge terminates the workflow fail-safe, including
// the terminal statuses and anything outside the closed status set.
package flow
