// Package stage implements the five phases of the admission pipeline:
// document checking, shortlisting, student counseling, loan processing and
// the admission officer.
//
// Each stage is a core.StageHandler: it receives exclusive access to the
// workflow state, checks its own precondition (silently passing through when
// invoked with a status it does not own), applies its decision logic,
// appends one history entry per state-changing action and sets the next
// status. Business outcomes such as missing documents, below-threshold
// scores, exhausted capacity or loan ineligibility are status transitions
// with a recorded reason, never errors.
//
// Stages consume injected capabilities only: a policy.Source for reference
// data, an optional model.Generator for drafting communications, and (for
// the admission officer) a core.PaymentConfirmer. With the defaults the
// whole pipeline runs deterministically offline.
package stage
