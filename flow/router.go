package flow

import "github.com/hupe1980/admitflow/core"

// transitions is the static edge set of the admission workflow.
//
//	new                -> document checker
//	documents_verified -> shortlisting
//	shortlisted        -> counselor
//	loan_requested     -> loan agent
//	awaiting_payment   -> admission officer (payment check)
//	loan_approved      -> admission officer (finalize)
//	payment_completed  -> admission officer (finalize)
//	loan_rejected      -> admission officer (reminder; the only back-edge)
//
// Terminal statuses (documents_rejected, rejected, admitted) have no edge.
var transitions = map[core.Status]core.StageID{
	core.StatusNew:               core.StageDocumentChecker,
	core.StatusDocumentsVerified: core.StageShortlisting,
	core.StatusShortlisted:       core.StageCounselor,
	core.StatusLoanRequested:     core.StageLoan,
	core.StatusAwaitingPayment:   core.StageAdmissionOfficer,
	core.StatusLoanApproved:      core.StageAdmissionOfficer,
	core.StatusPaymentCompleted:  core.StageAdmissionOfficer,
	core.StatusLoanRejected:      core.StageAdmissionOfficer,
}

// Router decides which stage runs next for a given application status.
type Router struct{}

// NewRouter creates the fixed admission router.
func NewRouter() *Router { return &Router{} }

// Next returns the stage that handles the given status. ok is false when no
// transition is defined: terminal statuses and any value outside the closed
// status set terminate the workflow rather than failing loud.
func (r *Router) Next(status core.Status) (core.StageID, bool) {
	id, ok := transitions[status]
	return id, ok
}
