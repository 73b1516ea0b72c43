// Package engine drives an application through the admission workflow. It
// owns the run loop: consult the router for the stage that handles the
// current status, invoke that stage's handler, repeat until a terminal
// status, a parked run, or the transition cap.
package engine
