package stage

import (
	"context"
	"testing"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockConfirmer is a testify-based PaymentConfirmer for expectation checks.
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, applicationID string) (*core.PaymentDetails, bool) {
	args := m.Called(ctx, applicationID)
	var pd *core.PaymentDetails
	if v := args.Get(0); v != nil {
		pd = v.(*core.PaymentDetails)
	}
	return pd, args.Bool(1)
}

func TestAdmissionOfficer_AdmitsAfterPayment(t *testing.T) {
	officer := NewAdmissionOfficer()
	app := testutil.NewApplicationBuilder().
		Name("Alice Johnson").
		Status(core.StatusPaymentCompleted).
		Build()
	state := testutil.NewStateBuilder(app).Build()

	err := officer.Process(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, core.StatusAdmitted, app.Status)

	require.Len(t, app.Communications, 2)
	assert.Equal(t, "Admission Letter", app.Communications[0].Subject)
	assert.Contains(t, app.Communications[0].Content, "Alice Johnson")
	assert.Equal(t, "Fee Slip", app.Communications[1].Subject)
	assert.Contains(t, app.Communications[1].Content, "$12000")

	require.Len(t, state.History, 1)
	assert.Equal(t, "admission_finalization", state.History[0].Action)
}

func TestAdmissionOfficer_AdmitsOnApprovedLoan(t *testing.T) {
	officer := NewAdmissionOfficer()
	app := testutil.NewApplicationBuilder().Status(core.StatusLoanApproved).Build()
	state := testutil.NewStateBuilder(app).Build()

	require.NoError(t, officer.Process(context.Background(), state))
	assert.Equal(t, core.StatusAdmitted, app.Status)
	assert.Len(t, app.Communications, 2)
}

func TestAdmissionOfficer_PaymentConfirmedThenAdmitted(t *testing.T) {
	payments := core.NewStaticPayments()
	officer := NewAdmissionOfficer(func(o *AdmissionOfficerOptions) {
		o.Payments = payments
	})
	app := testutil.NewApplicationBuilder().Status(core.StatusAwaitingPayment).Build()
	payments.Mark(app.ID, 12000, "Bank Transfer")
	state := testutil.NewStateBuilder(app).Build()

	err := officer.Process(context.Background(), state)

	require.NoError(t, err)
	// the confirmation cascades straight into finalization in one pass
	assert.Equal(t, core.StatusAdmitted, app.Status)
	require.NotNil(t, app.PaymentDetails)
	assert.Equal(t, 12000, app.PaymentDetails.AmountPaid)

	require.Len(t, state.History, 2)
	assert.Equal(t, "payment_confirmation", state.History[0].Action)
	assert.Equal(t, "admission_finalization", state.History[1].Action)
}

func TestAdmissionOfficer_ParksWithoutPayment(t *testing.T) {
	officer := NewAdmissionOfficer()
	app := testutil.NewApplicationBuilder().Status(core.StatusAwaitingPayment).Build()
	state := testutil.NewStateBuilder(app).Build()

	err := officer.Process(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, core.StatusAwaitingPayment, app.Status)
	assert.Empty(t, app.Communications)
	assert.Empty(t, state.History)
}

func TestAdmissionOfficer_LoanRejectedSendsReminder(t *testing.T) {
	officer := NewAdmissionOfficer()
	app := testutil.NewApplicationBuilder().
		Name("Carol Diaz").
		Status(core.StatusLoanRejected).
		Build()
	state := testutil.NewStateBuilder(app).Build()

	err := officer.Process(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, core.StatusAwaitingPayment, app.Status)

	require.Len(t, app.Communications, 1)
	comm := app.Communications[0]
	assert.Equal(t, "notification", comm.Type)
	assert.Equal(t, "Payment Reminder", comm.Subject)
	assert.Contains(t, comm.Content, "Carol Diaz")

	require.Len(t, state.History, 1)
	assert.Equal(t, "payment_reminder_sent", state.History[0].Action)
}

func TestAdmissionOfficer_FeeSlipUsesProgramFees(t *testing.T) {
	officer := NewAdmissionOfficer()
	app := testutil.NewApplicationBuilder().Status(core.StatusLoanApproved).Build()
	state := testutil.NewStateBuilder(app).Program("Medicine").Build()

	require.NoError(t, officer.Process(context.Background(), state))
	require.Len(t, app.Communications, 2)
	slip := app.Communications[1]
	assert.Contains(t, slip.Content, "Medicine")
	assert.Contains(t, slip.Content, "$10000")
	assert.Contains(t, slip.Content, "$500")
	assert.Contains(t, slip.Content, "$1500")
}

func TestAdmissionOfficer_ConsultsConfirmerOnlyWhenAwaiting(t *testing.T) {
	confirmer := new(MockConfirmer)
	officer := NewAdmissionOfficer(func(o *AdmissionOfficerOptions) {
		o.Payments = confirmer
	})

	app := testutil.NewApplicationBuilder().Status(core.StatusAwaitingPayment).Build()
	state := testutil.NewStateBuilder(app).Build()
	confirmer.On("Confirm", mock.Anything, app.ID).Return(nil, false).Once()

	require.NoError(t, officer.Process(context.Background(), state))
	confirmer.AssertExpectations(t)

	// loan_approved finalizes without asking the payment provider
	app = testutil.NewApplicationBuilder().Status(core.StatusLoanApproved).Build()
	state = testutil.NewStateBuilder(app).Build()

	require.NoError(t, officer.Process(context.Background(), state))
	confirmer.AssertNumberOfCalls(t, "Confirm", 1)
}

func TestAdmissionOfficer_SkipsOutsideItsStatuses(t *testing.T) {
	officer := NewAdmissionOfficer()
	app := testutil.NewApplicationBuilder().Status(core.StatusShortlisted).Build()
	state := testutil.NewStateBuilder(app).Build()

	require.NoError(t, officer.Process(context.Background(), state))
	assert.Equal(t, core.StatusShortlisted, app.Status)
	assert.Empty(t, app.Communications)
	assert.Empty(t, state.History)
}
