package policy

import (
	"context"

	"github.com/hupe1980/admitflow/core"
)

// EligibilityCriteria gates document verification and shortlisting.
type EligibilityCriteria struct {
	MinGPA            float64  `yaml:"min_gpa" json:"min_gpa"`
	RequiredDocuments []string `yaml:"required_documents" json:"required_documents"`
}

// Program describes one academic program: its enrollment headroom and fee
// structure. Enrolled is injected reference data, never sampled.
type Program struct {
	Name            string `yaml:"name" json:"name"`
	Capacity        int    `yaml:"capacity" json:"capacity"`
	Enrolled        int    `yaml:"enrolled" json:"enrolled"`
	TuitionFee      int    `yaml:"tuition_fee" json:"tuition_fee"`
	RegistrationFee int    `yaml:"registration_fee" json:"registration_fee"`
	FacilityFee     int    `yaml:"facility_fee" json:"facility_fee"`
}

// HasCapacity reports whether the program can take another admission.
func (p Program) HasCapacity() bool { return p.Capacity > 0 && p.Enrolled < p.Capacity }

// TotalFee is the sum of all fee components.
func (p Program) TotalFee() int { return p.TuitionFee + p.RegistrationFee + p.FacilityFee }

// LoanPolicy holds the financial-aid office's lending rules.
type LoanPolicy struct {
	MaxAmount         int     `yaml:"max_amount" json:"max_loan_amount"`
	InterestRate      float64 `yaml:"interest_rate" json:"interest_rate"`
	RepaymentYears    int     `yaml:"repayment_years" json:"repayment_period_years"`
	GracePeriodMonths int     `yaml:"grace_period_months" json:"grace_period_months"`
	MinIncome         int     `yaml:"min_income" json:"minimum_income_requirement"`
	MinCreditScore    int     `yaml:"min_credit_score" json:"credit_score_requirement"`
}

// Template names the stages look up. A missing template means the stage uses
// its hardcoded fallback text.
const (
	TemplateShortlistNotification = "shortlist_notification"
	TemplatePaymentInstructions   = "payment_instructions"
	TemplateLoanInformation       = "loan_information"
	TemplateLoanApproval          = "loan_approval"
	TemplateLoanRejection         = "loan_rejection"
	TemplatePaymentReminder       = "payment_reminder"
	TemplateAdmissionLetter       = "admission_letter"
	TemplateFeeSlip               = "fee_slip"
)

// Source provides the policy data stages consult. Implementations must be
// safe for concurrent reads and must always return a usable value; defaults
// stand in for anything missing or malformed.
type Source interface {
	Eligibility(ctx context.Context) EligibilityCriteria
	Program(ctx context.Context, name string) (Program, bool)
	Loan(ctx context.Context) LoanPolicy
	Template(ctx context.Context, name string) (string, bool)
}

// DefaultEligibility returns the documented default criteria.
func DefaultEligibility() EligibilityCriteria {
	return EligibilityCriteria{
		MinGPA:            3.0,
		RequiredDocuments: core.RequiredDocuments(),
	}
}

// DefaultPrograms returns the documented default program catalog.
func DefaultPrograms() []Program {
	fees := func(name string, capacity int) Program {
		return Program{
			Name:            name,
			Capacity:        capacity,
			TuitionFee:      10000,
			RegistrationFee: 500,
			FacilityFee:     1500,
		}
	}
	return []Program{
		fees("Computer Science", 100),
		fees("Business Administration", 150),
		fees("Engineering", 120),
		fees("Medicine", 80),
		fees("Arts and Humanities", 200),
	}
}

// DefaultLoan returns the documented default lending rules.
func DefaultLoan() LoanPolicy {
	return LoanPolicy{
		MaxAmount:         20000,
		InterestRate:      4.0,
		RepaymentYears:    10,
		GracePeriodMonths: 6,
		MinIncome:         25000,
		MinCreditScore:    650,
	}
}
