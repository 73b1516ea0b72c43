package core

import "context"

// StageID identifies one phase of the admission pipeline. The Router maps a
// status to the StageID that handles it next.
type StageID string

const (
	// StageDocumentChecker verifies submitted documents and credentials.
	StageDocumentChecker StageID = "document_checker"
	// StageShortlisting evaluates eligibility and program capacity.
	StageShortlisting StageID = "shortlisting_agent"
	// StageCounselor communicates next steps to shortlisted students.
	StageCounselor StageID = "student_counselor"
	// StageLoan processes student loan requests.
	StageLoan StageID = "loan_agent"
	// StageAdmissionOfficer confirms payments and finalizes admissions.
	StageAdmissionOfficer StageID = "admission_officer"
)

// StageHandler implements one phase of the admission pipeline. Process
// receives exclusive access to the workflow state, validates its own
// precondition (returning the state untouched when invoked out of order),
// performs the stage decision logic, appends history for every
// state-changing action and sets the next status.
//
// A non-nil error signals an infrastructure failure, never a business
// outcome: rejections and ineligibility are status transitions with a
// recorded reason, not errors.
type StageHandler interface {
	ID() StageID
	Name() string
	Process(ctx context.Context, state *WorkflowState) error
}
