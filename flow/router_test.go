package flow

import (
	"testing"

	"github.com/hupe1980/admitflow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Next(t *testing.T) {
	router := NewRouter()

	expected := map[core.Status]core.StageID{
		core.StatusNew:               core.StageDocumentChecker,
		core.StatusDocumentsVerified: core.StageShortlisting,
		core.StatusShortlisted:       core.StageCounselor,
		core.StatusLoanRequested:     core.StageLoan,
		core.StatusAwaitingPayment:   core.StageAdmissionOfficer,
		core.StatusLoanApproved:      core.StageAdmissionOfficer,
		core.StatusPaymentCompleted:  core.StageAdmissionOfficer,
		core.StatusLoanRejected:      core.StageAdmissionOfficer,
	}
	for status, stageID := range expected {
		got, ok := router.Next(status)
		require.True(t, ok, "expected a transition for %q", status)
		assert.Equal(t, stageID, got, "wrong stage for %q", status)
	}
}

func TestRouter_Next_Terminal(t *testing.T) {
	router := NewRouter()

	for _, status := range []core.Status{
		core.StatusDocumentsRejected,
		core.StatusRejected,
		core.StatusAdmitted,
	} {
		_, ok := router.Next(status)
		assert.False(t, ok, "terminal status %q must have no transition", status)
	}
}

func TestRouter_Next_UnknownStatus(t *testing.T) {
	router := NewRouter()

	_, ok := router.Next(core.Status("bogus"))
	assert.False(t, ok)

	_, ok = router.Next(core.Status(""))
	assert.False(t, ok)
}
