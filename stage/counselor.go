package stage

import (
	"context"
	"fmt"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/logging"
	"github.com/hupe1980/admitflow/model"
	"github.com/hupe1980/admitflow/policy"
)

// defaultTuitionFee stands in when the policy source knows nothing about the
// selected program's fees.
const defaultTuitionFee = 10000

// CounselorOptions configures the student counselor stage.
type CounselorOptions struct {
	// Policies supplies fee schedules and letter templates.
	Policies policy.Source
	// Generator optionally drafts the student-facing message. Without one
	// the policy template (or its hardcoded fallback) is used verbatim.
	Generator model.Generator
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Counselor guides shortlisted students to the next step. It branches on the
// caller-supplied loan-request flag: loan information and hand-off to the
// loan agent, or payment instructions and hand-off to the admission officer.
// Each branch appends exactly one communication and one history entry.
type Counselor struct {
	BaseStage
}

// NewCounselor creates the student counselor stage.
func NewCounselor(optFns ...func(o *CounselorOptions)) *Counselor {
	opts := CounselorOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Counselor{
		BaseStage: newBaseStage(
			core.StageCounselor,
			"Student Counselor",
			"You are a student counselor for a university admission process. Be polite, clear and helpful.",
			opts.Policies,
			opts.Generator,
			opts.Logger,
		),
	}
}

// Process implements core.StageHandler.
func (c *Counselor) Process(ctx context.Context, state *core.WorkflowState) error {
	app := state.Application
	if app.Status != core.StatusShortlisted {
		c.logger.Debug("skipping application outside precondition", "stage", c.id, "status", app.Status)
		return nil
	}

	program := state.Params.Program()

	if state.Params.LoanRequested() {
		fallback := c.render(ctx, policy.TemplateLoanInformation, map[string]string{
			"[STUDENT_NAME]": app.StudentName,
			"[PROGRAM]":      program,
		}, defaultLoanInformation)
		prompt := fmt.Sprintf("Write a short message for %s explaining the student loan program and how to apply.", app.StudentName)
		app.AppendCommunication("information", "Student Loan Information", c.draft(ctx, prompt, fallback))
		app.SetStatus(core.StatusLoanRequested)
		state.Record(c.name, "loan_information_sent", "Student loan information provided", nil)
		c.logger.Info("loan information sent", "application_id", app.ID)
		return nil
	}

	fee := defaultTuitionFee
	if prog, known := c.policies.Program(ctx, program); known && prog.TuitionFee > 0 {
		fee = prog.TuitionFee
	}
	fallback := fmt.Sprintf(defaultPaymentInstructions, app.StudentName, program, fee)
	content := c.render(ctx, policy.TemplatePaymentInstructions, map[string]string{
		"[STUDENT_NAME]": app.StudentName,
		"[PROGRAM]":      program,
		"[FEE_AMOUNT]":   fmt.Sprintf("$%d", fee),
	}, fallback)
	prompt := fmt.Sprintf("Write payment instructions for %s to complete enrollment in the %s program. The admission fee is $%d.", app.StudentName, program, fee)
	app.AppendCommunication("instruction", "Payment Instructions", c.draft(ctx, prompt, content))
	app.SetStatus(core.StatusAwaitingPayment)
	state.Record(c.name, "payment_instructions_sent", "Payment instructions sent to student", map[string]any{"fee_amount": fee})
	c.logger.Info("payment instructions sent", "application_id", app.ID, "fee_amount", fee)
	return nil
}

const defaultLoanInformation = `Student Loan Information:

Our university offers student loans to eligible candidates. To apply:

1. Submit the loan application form
2. Provide family income documentation
3. Submit a co-signer form if required

Loan eligibility depends on:
- Academic performance
- Financial need
- Program of study

The interest rate is 4% per annum, with repayment starting 6 months after graduation.

For more information, please contact our financial aid office.`

const defaultPaymentInstructions = `Dear %s,

To complete your enrollment in the %s program, please pay the admission fee of $%d.

Payment options:
1. Online payment through the student portal
2. Bank transfer to the university account
3. Apply for a student loan if you need financial assistance

If you wish to apply for a student loan, please let us know and we'll guide you through the process.

Best regards,
University Admissions Office`
