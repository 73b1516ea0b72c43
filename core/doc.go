// Package core contains the shared data model and capability contracts of
// admitflow: the Application record, the closed Status enumeration, the
// WorkflowState threaded through stage handlers, and the small interfaces
// (stores, payment confirmation) that the workflow consumes as injected
// capabilities.
package core
