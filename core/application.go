package core

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType labels an entry in the application's document map.
type DocumentType = string

// The five document types every application must submit.
const (
	DocApplicationForm       DocumentType = "application_form"
	DocAcademicTranscripts   DocumentType = "academic_transcripts"
	DocIDPassport            DocumentType = "id_passport"
	DocRecommendationLetters DocumentType = "recommendation_letters"
	DocStatementOfPurpose    DocumentType = "statement_of_purpose"
)

// RequiredDocuments returns the canonical ordered list of document types a
// complete application must contain.
func RequiredDocuments() []DocumentType {
	return []DocumentType{
		DocApplicationForm,
		DocAcademicTranscripts,
		DocIDPassport,
		DocRecommendationLetters,
		DocStatementOfPurpose,
	}
}

// Communication is one student-facing message attached to an application.
// The communications log is append-only: handlers add entries, nothing ever
// rewrites or removes one.
type Communication struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "notification", "instruction", "information", "letter", "document"
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// LoanDetails records the loan agent's assessment.
type LoanDetails struct {
	Eligible       bool     `json:"eligible"`
	Amount         int      `json:"loan_amount"`
	FamilyIncome   int      `json:"family_income"`
	CreditScore    int      `json:"credit_score"`
	InterestRate   float64  `json:"interest_rate"`
	RepaymentYears int      `json:"repayment_period_years"`
	Reasons        []string `json:"reasons,omitempty"`
}

// PaymentDetails records a confirmed fee payment.
type PaymentDetails struct {
	AmountPaid    int       `json:"amount_paid"`
	Method        string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"payment_date"`
}

// Application is one student's admission record: the aggregate mutated in
// place by successive stage handlers until it reaches a terminal status.
//
// Contract:
//   - ID and StudentName are immutable after creation
//   - Documents are populated at intake and read-only afterwards
//   - VerificationNotes, EligibilityScore and ShortlistingNotes are each
//     written exactly once by their owning stage
//   - Communications never shrink
type Application struct {
	ID                string                  `json:"application_id"`
	StudentName       string                  `json:"student_name"`
	Status            Status                  `json:"status"`
	Documents         map[DocumentType]string `json:"documents"`
	VerificationNotes string                  `json:"verification_notes,omitempty"`
	EligibilityScore  *float64                `json:"eligibility_score,omitempty"`
	ShortlistingNotes string                  `json:"shortlisting_notes,omitempty"`
	Communications    []Communication         `json:"communications"`
	LoanDetails       *LoanDetails            `json:"loan_details,omitempty"`
	PaymentDetails    *PaymentDetails         `json:"payment_details,omitempty"`
	Created           time.Time               `json:"created"`
	Updated           time.Time               `json:"updated"`
}

// NewApplication creates an application at status new with a generated ID.
// The documents map is copied so callers cannot mutate intake data later.
func NewApplication(studentName string, documents map[DocumentType]string) *Application {
	docs := make(map[DocumentType]string, len(documents))
	for k, v := range documents {
		docs[k] = v
	}
	now := time.Now().UTC()
	return &Application{
		ID:             uuid.NewString(),
		StudentName:    studentName,
		Status:         StatusNew,
		Documents:      docs,
		Communications: []Communication{},
		Created:        now,
		Updated:        now,
	}
}

// SetStatus moves the application to the given status updating Updated.
// Transition legality is the Router's concern, not enforced here.
func (a *Application) SetStatus(s Status) {
	a.Status = s
	a.Updated = time.Now().UTC()
}

// AppendCommunication adds a student-facing message to the log, assigning an
// ID and timestamp, and returns the stored entry.
func (a *Application) AppendCommunication(commType, subject, content string) Communication {
	c := Communication{
		ID:        uuid.NewString(),
		Type:      commType,
		Subject:   subject,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	a.Communications = append(a.Communications, c)
	a.Updated = c.Timestamp
	return c
}

// Clone returns a deep copy of the application safe for independent mutation.
func (a *Application) Clone() *Application {
	clone := *a
	clone.Documents = make(map[DocumentType]string, len(a.Documents))
	for k, v := range a.Documents {
		clone.Documents[k] = v
	}
	clone.Communications = make([]Communication, len(a.Communications))
	copy(clone.Communications, a.Communications)
	if a.EligibilityScore != nil {
		score := *a.EligibilityScore
		clone.EligibilityScore = &score
	}
	if a.LoanDetails != nil {
		ld := *a.LoanDetails
		ld.Reasons = append([]string(nil), a.LoanDetails.Reasons...)
		clone.LoanDetails = &ld
	}
	if a.PaymentDetails != nil {
		pd := *a.PaymentDetails
		clone.PaymentDetails = &pd
	}
	return &clone
}
