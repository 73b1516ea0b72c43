package stage

import (
	"context"
	"fmt"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/logging"
	"github.com/hupe1980/admitflow/model"
	"github.com/hupe1980/admitflow/policy"
)

// AdmissionOfficerOptions configures the admission finalization stage.
type AdmissionOfficerOptions struct {
	// Policies supplies fee structures and letter templates.
	Policies policy.Source
	// Generator optionally drafts the admission letter.
	Generator model.Generator
	// Payments answers whether the admission fee was received. Defaults to
	// NoPayments, so awaiting_payment applications park until the caller
	// re-enters with a confirmer that knows about the payment.
	Payments core.PaymentConfirmer
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// AdmissionOfficer finalizes admissions. Its Process is a cascade of three
// independent checks evaluated in order within a single invocation, so a
// payment confirmed in the first check flows straight into admission in the
// second without another pass through the engine:
//
//  1. awaiting_payment with a confirmed payment becomes payment_completed
//  2. payment_completed or loan_approved is admitted, with admission letter
//     and fee slip issued
//  3. loan_rejected gets a payment reminder and returns to awaiting_payment
type AdmissionOfficer struct {
	BaseStage

	payments core.PaymentConfirmer
}

// NewAdmissionOfficer creates the admission finalization stage.
func NewAdmissionOfficer(optFns ...func(o *AdmissionOfficerOptions)) *AdmissionOfficer {
	opts := AdmissionOfficerOptions{
		Payments: core.NoPayments{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Payments == nil {
		opts.Payments = core.NoPayments{}
	}
	return &AdmissionOfficer{
		BaseStage: newBaseStage(
			core.StageAdmissionOfficer,
			"Admission Officer",
			"You are an admission officer finalizing university admissions.",
			opts.Policies,
			opts.Generator,
			opts.Logger,
		),
		payments: opts.Payments,
	}
}

// Process implements core.StageHandler.
func (o *AdmissionOfficer) Process(ctx context.Context, state *core.WorkflowState) error {
	app := state.Application

	if app.Status == core.StatusAwaitingPayment {
		if pd, ok := o.payments.Confirm(ctx, app.ID); ok {
			app.PaymentDetails = pd
			app.SetStatus(core.StatusPaymentCompleted)
			state.Record(o.name, "payment_confirmation", "Payment received and confirmed", map[string]any{
				"amount_paid":    pd.AmountPaid,
				"transaction_id": pd.TransactionID,
			})
			o.logger.Info("payment confirmed", "application_id", app.ID, "amount_paid", pd.AmountPaid)
		} else {
			o.logger.Debug("payment not yet received", "application_id", app.ID)
		}
	}

	if app.Status == core.StatusPaymentCompleted || app.Status == core.StatusLoanApproved {
		program := state.Params.Program()
		o.issueAdmissionLetter(ctx, app, program)
		o.issueFeeSlip(ctx, app, program)
		app.SetStatus(core.StatusAdmitted)
		state.Record(o.name, "admission_finalization", "Admission finalized", map[string]any{"program": program})
		o.logger.Info("admission finalized", "application_id", app.ID, "program", program)
	}

	if app.Status == core.StatusLoanRejected {
		fallback := fmt.Sprintf(defaultPaymentReminder, app.StudentName)
		content := o.render(ctx, policy.TemplatePaymentReminder, map[string]string{
			"[STUDENT_NAME]": app.StudentName,
		}, fallback)
		app.AppendCommunication("notification", "Payment Reminder", content)
		app.SetStatus(core.StatusAwaitingPayment)
		state.Record(o.name, "payment_reminder_sent", "Loan rejected, reminded student to arrange payment", nil)
		o.logger.Info("payment reminder sent", "application_id", app.ID)
	}

	return nil
}

func (o *AdmissionOfficer) issueAdmissionLetter(ctx context.Context, app *core.Application, program string) {
	fallback := fmt.Sprintf(defaultAdmissionLetter, app.StudentName, program, app.ID)
	content := o.render(ctx, policy.TemplateAdmissionLetter, map[string]string{
		"[STUDENT_NAME]":   app.StudentName,
		"[PROGRAM]":        program,
		"[APPLICATION_ID]": app.ID,
	}, fallback)
	prompt := fmt.Sprintf("Write a formal university admission letter for %s, admitted to the %s program.",
		app.StudentName, program)
	app.AppendCommunication("letter", "Admission Letter", o.draft(ctx, prompt, content))
}

func (o *AdmissionOfficer) issueFeeSlip(ctx context.Context, app *core.Application, program string) {
	tuition, registration, facility := defaultTuitionFee, defaultRegistrationFee, defaultFacilityFee
	if p, ok := o.policies.Program(ctx, program); ok {
		tuition, registration, facility = p.TuitionFee, p.RegistrationFee, p.FacilityFee
	}
	total := tuition + registration + facility
	fallback := fmt.Sprintf(defaultFeeSlip, app.StudentName, program, tuition, registration, facility, total)
	content := o.render(ctx, policy.TemplateFeeSlip, map[string]string{
		"[STUDENT_NAME]":     app.StudentName,
		"[PROGRAM]":          program,
		"[TUITION_FEE]":      fmt.Sprintf("$%d", tuition),
		"[REGISTRATION_FEE]": fmt.Sprintf("$%d", registration),
		"[FACILITY_FEE]":     fmt.Sprintf("$%d", facility),
		"[TOTAL_FEE]":        fmt.Sprintf("$%d", total),
	}, fallback)
	app.AppendCommunication("document", "Fee Slip", content)
}

const (
	defaultRegistrationFee = 500
	defaultFacilityFee     = 1500
)

const defaultAdmissionLetter = `Dear %s,

Congratulations! We are delighted to inform you that you have been admitted to the %s program.

Your application (ID: %s) has successfully completed all stages of our admission process.

Please find your fee slip attached. We look forward to welcoming you on campus.

Best regards,
Office of Admissions`

const defaultFeeSlip = `FEE SLIP

Student: %s
Program: %s

Tuition Fee:      $%d
Registration Fee: $%d
Facility Fee:     $%d
-----------------------
Total:            $%d

Please retain this slip for your records.`

const defaultPaymentReminder = `Dear %s,

This is a reminder that your admission fee payment is still pending.

As your loan application was not approved, please arrange payment through an alternative method
to secure your place in the program.

If you need assistance, please contact the admissions office.

Best regards,
Office of Admissions`
