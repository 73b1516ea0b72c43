package stage

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/logging"
	"github.com/hupe1980/admitflow/model"
	"github.com/hupe1980/admitflow/policy"
)

// LoanOptions configures the loan processing stage.
type LoanOptions struct {
	// Policies supplies the lending rules and letter templates.
	Policies policy.Source
	// Generator optionally drafts the approval/rejection letter.
	Generator model.Generator
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Loan evaluates a student's loan request against the lending rules using
// the financial profile injected by the caller. Eligible applicants get a
// loan amount tiered by income bracket; ineligible ones get a rejection
// naming each failed criterion. Control always moves on to the admission
// officer via the resulting status.
type Loan struct {
	BaseStage
}

// NewLoan creates the loan processing stage.
func NewLoan(optFns ...func(o *LoanOptions)) *Loan {
	opts := LoanOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Loan{
		BaseStage: newBaseStage(
			core.StageLoan,
			"Loan Agent",
			"You are a loan processing agent for a university's financial aid office.",
			opts.Policies,
			opts.Generator,
			opts.Logger,
		),
	}
}

// Process implements core.StageHandler.
func (l *Loan) Process(ctx context.Context, state *core.WorkflowState) error {
	app := state.Application
	if app.Status != core.StatusLoanRequested {
		l.logger.Debug("skipping application outside precondition", "stage", l.id, "status", app.Status)
		return nil
	}

	rules := l.policies.Loan(ctx)
	details := assessLoan(rules, state.Params)
	app.LoanDetails = details

	if details.Eligible {
		fallback := fmt.Sprintf(defaultLoanApproval,
			app.StudentName, details.Amount, details.InterestRate, details.RepaymentYears, rules.GracePeriodMonths)
		content := l.render(ctx, policy.TemplateLoanApproval, map[string]string{
			"[STUDENT_NAME]":     app.StudentName,
			"[LOAN_AMOUNT]":      fmt.Sprintf("$%d", details.Amount),
			"[INTEREST_RATE]":    fmt.Sprintf("%.1f%%", details.InterestRate),
			"[REPAYMENT_PERIOD]": fmt.Sprintf("%d years", details.RepaymentYears),
		}, fallback)
		prompt := fmt.Sprintf("Write a loan approval letter for %s. Amount $%d, interest rate %.1f%%, repayment period %d years.",
			app.StudentName, details.Amount, details.InterestRate, details.RepaymentYears)
		app.AppendCommunication("letter", "Loan Application Approved", l.draft(ctx, prompt, content))
		app.SetStatus(core.StatusLoanApproved)
		state.Record(l.name, "loan_approval", "Loan application approved", map[string]any{"loan_amount": details.Amount})
		l.logger.Info("loan approved", "application_id", app.ID, "loan_amount", details.Amount)
		return nil
	}

	reasons := "- " + strings.Join(details.Reasons, "\n- ")
	fallback := fmt.Sprintf(defaultLoanRejection, app.StudentName, reasons)
	content := l.render(ctx, policy.TemplateLoanRejection, map[string]string{
		"[STUDENT_NAME]": app.StudentName,
		"[REASONS]":      reasons,
	}, fallback)
	prompt := fmt.Sprintf("Write a considerate loan rejection letter for %s. Reasons: %s.",
		app.StudentName, strings.Join(details.Reasons, "; "))
	app.AppendCommunication("letter", "Loan Application Rejected", l.draft(ctx, prompt, content))
	app.SetStatus(core.StatusLoanRejected)
	state.Record(l.name, "loan_rejection", "Loan application rejected", map[string]any{"reasons": details.Reasons})
	l.logger.Info("loan rejected", "application_id", app.ID, "reasons", details.Reasons)
	return nil
}

// assessLoan applies the lending rules to the applicant's financial profile.
// A missing profile is ineligible: the workflow never invents financial data.
func assessLoan(rules policy.LoanPolicy, params core.RunParams) *core.LoanDetails {
	details := &core.LoanDetails{
		InterestRate:   rules.InterestRate,
		RepaymentYears: rules.RepaymentYears,
	}

	profile, ok := params.FinancialProfile()
	if !ok {
		details.Reasons = []string{"No financial documentation provided"}
		return details
	}
	details.FamilyIncome = profile.FamilyIncome
	details.CreditScore = profile.CreditScore

	if profile.FamilyIncome < rules.MinIncome {
		details.Reasons = append(details.Reasons, "Insufficient family income")
	}
	if profile.CreditScore < rules.MinCreditScore {
		details.Reasons = append(details.Reasons, "Insufficient credit score")
	}
	if len(details.Reasons) > 0 {
		return details
	}

	details.Eligible = true
	details.Amount = loanAmount(rules.MaxAmount, profile.FamilyIncome)
	return details
}

// loanAmount tiers the granted amount by income bracket.
func loanAmount(maxAmount, familyIncome int) int {
	switch {
	case familyIncome < 40000:
		return maxAmount
	case familyIncome < 60000:
		return maxAmount * 75 / 100
	case familyIncome < 80000:
		return maxAmount * 50 / 100
	default:
		return maxAmount * 25 / 100
	}
}

const defaultLoanApproval = `Dear %s,

We are pleased to inform you that your loan application has been approved.

Loan Details:
- Amount: $%d
- Interest Rate: %.1f%%
- Repayment Period: %d years
- Grace Period: %d months after graduation

Please review and sign the attached loan agreement within 5 business days.

If you have any questions, please contact the financial aid office.

Best regards,
University Financial Aid Office`

const defaultLoanRejection = `Dear %s,

We regret to inform you that your loan application has been rejected.

Reasons for rejection:
%s

If you would like to discuss alternative financing options or have questions about the decision,
please contact our financial aid office.

Best regards,
University Financial Aid Office`
