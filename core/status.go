package core

// Status is the single source of truth for an application's position in the
// admission workflow. The value set is closed; the Router only ever moves a
// status forward along its transition table, with the loan-rejected payment
// reminder as the sole back-edge.
type Status string

const (
	// StatusNew marks a freshly submitted application awaiting document checks.
	StatusNew Status = "new"
	// StatusDocumentsVerified means all required documents are present and the
	// extracted credentials met the minimum threshold.
	StatusDocumentsVerified Status = "documents_verified"
	// StatusDocumentsRejected is terminal: documents missing or below threshold.
	StatusDocumentsRejected Status = "documents_rejected"
	// StatusShortlisted means the application passed eligibility and capacity checks.
	StatusShortlisted Status = "shortlisted"
	// StatusRejected is terminal: shortlisting declined the application.
	StatusRejected Status = "rejected"
	// StatusAwaitingPayment means the student was asked to pay the admission fee.
	StatusAwaitingPayment Status = "awaiting_payment"
	// StatusLoanRequested means the student asked for loan processing.
	StatusLoanRequested Status = "loan_requested"
	// StatusLoanApproved means the loan agent granted a loan.
	StatusLoanApproved Status = "loan_approved"
	// StatusLoanRejected means the loan agent declined; the admission officer
	// reverts it to awaiting_payment with a reminder.
	StatusLoanRejected Status = "loan_rejected"
	// StatusPaymentCompleted means a payment event was confirmed.
	StatusPaymentCompleted Status = "payment_completed"
	// StatusAdmitted is terminal: letter and fee slip issued.
	StatusAdmitted Status = "admitted"
)

var validStatuses = map[Status]bool{
	StatusNew:               true,
	StatusDocumentsVerified: true,
	StatusDocumentsRejected: true,
	StatusShortlisted:       true,
	StatusRejected:          true,
	StatusAwaitingPayment:   true,
	StatusLoanRequested:     true,
	StatusLoanApproved:      true,
	StatusLoanRejected:      true,
	StatusPaymentCompleted:  true,
	StatusAdmitted:          true,
}

var terminalStatuses = map[Status]bool{
	StatusDocumentsRejected: true,
	StatusRejected:          true,
	StatusAdmitted:          true,
}

// String returns the wire representation of the status.
func (s Status) String() string { return string(s) }

// IsValid reports whether s is a member of the closed status set.
func (s Status) IsValid() bool { return validStatuses[s] }

// IsTerminal reports whether no further transition is defined from s.
// awaiting_payment and loan_rejected are not terminal: they park the run
// until an external event re-enters the workflow.
func (s Status) IsTerminal() bool { return terminalStatuses[s] }
