package stage

import (
	"context"
	"testing"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/internal/testutil"
	"github.com/hupe1980/admitflow/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifiedApp(score float64) *core.Application {
	return testutil.NewApplicationBuilder().
		Status(core.StatusDocumentsVerified).
		Score(score).
		VerificationNotes("All documents verified successfully.").
		Build()
}

func TestShortlisting_Shortlists(t *testing.T) {
	shortlisting := NewShortlisting()
	app := verifiedApp(3.6)
	state := testutil.NewStateBuilder(app).Build()

	err := shortlisting.Process(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, core.StatusShortlisted, app.Status)
	assert.Contains(t, app.ShortlistingNotes, "rank score")

	require.Len(t, state.History, 1)
	assert.Equal(t, "application_shortlisting", state.History[0].Action)
	// score plus the clean-verification bonus
	assert.InDelta(t, 4.1, state.History[0].Detail["rank_score"], 1e-9)
}

func TestShortlisting_RankAdjuster(t *testing.T) {
	shortlisting := NewShortlisting(func(o *ShortlistingOptions) {
		o.RankAdjuster = func(*core.Application) float64 { return 0.25 }
	})
	app := verifiedApp(3.0)
	state := testutil.NewStateBuilder(app).Build()

	require.NoError(t, shortlisting.Process(context.Background(), state))
	assert.Equal(t, 3.75, state.History[0].Detail["rank_score"])
}

func TestShortlisting_NoVerificationBonus(t *testing.T) {
	shortlisting := NewShortlisting()
	app := testutil.NewApplicationBuilder().
		Status(core.StatusDocumentsVerified).
		Score(3.2).
		VerificationNotes("verified with caveats").
		Build()
	state := testutil.NewStateBuilder(app).Build()

	require.NoError(t, shortlisting.Process(context.Background(), state))
	assert.Equal(t, 3.2, state.History[0].Detail["rank_score"])
}

func TestShortlisting_ScoreBelowMinimum(t *testing.T) {
	shortlisting := NewShortlisting(func(o *ShortlistingOptions) {
		o.Policies = policy.NewStatic(policy.WithEligibility(policy.EligibilityCriteria{MinGPA: 3.5}))
	})
	app := verifiedApp(3.2)
	state := testutil.NewStateBuilder(app).Build()

	err := shortlisting.Process(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, core.StatusRejected, app.Status)
	assert.Contains(t, app.ShortlistingNotes, "Eligibility score (3.20) below minimum requirement (3.50)")
	assert.Equal(t, "application_rejection", state.History[0].Action)
}

func TestShortlisting_MissingScoreRejects(t *testing.T) {
	shortlisting := NewShortlisting()
	app := testutil.NewApplicationBuilder().Status(core.StatusDocumentsVerified).Build()
	state := testutil.NewStateBuilder(app).Build()

	require.NoError(t, shortlisting.Process(context.Background(), state))
	assert.Equal(t, core.StatusRejected, app.Status)
}

func TestShortlisting_NoCapacity(t *testing.T) {
	policies := policy.NewStatic()
	policies.SetEnrollment("Medicine", 80)
	shortlisting := NewShortlisting(func(o *ShortlistingOptions) {
		o.Policies = policies
	})
	app := verifiedApp(3.9)
	state := testutil.NewStateBuilder(app).Program("Medicine").Build()

	err := shortlisting.Process(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, core.StatusRejected, app.Status)
	assert.Contains(t, app.ShortlistingNotes, "No capacity available in the Medicine program")
}

func TestShortlisting_UnknownProgram(t *testing.T) {
	shortlisting := NewShortlisting()
	app := verifiedApp(3.9)
	state := testutil.NewStateBuilder(app).Program("Astrology").Build()

	require.NoError(t, shortlisting.Process(context.Background(), state))
	assert.Equal(t, core.StatusRejected, app.Status)
	assert.Contains(t, app.ShortlistingNotes, "Astrology")
}

func TestShortlisting_ScoreCheckedBeforeCapacity(t *testing.T) {
	policies := policy.NewStatic(policy.WithEligibility(policy.EligibilityCriteria{MinGPA: 3.5}))
	policies.SetEnrollment("Computer Science", 100)
	shortlisting := NewShortlisting(func(o *ShortlistingOptions) {
		o.Policies = policies
	})
	app := verifiedApp(3.0)
	state := testutil.NewStateBuilder(app).Build()

	require.NoError(t, shortlisting.Process(context.Background(), state))
	assert.Contains(t, app.ShortlistingNotes, "below minimum requirement")
}

func TestShortlisting_SkipsOutsidePrecondition(t *testing.T) {
	shortlisting := NewShortlisting()
	app := testutil.NewApplicationBuilder().Build() // status new
	state := testutil.NewStateBuilder(app).Build()

	require.NoError(t, shortlisting.Process(context.Background(), state))
	assert.Equal(t, core.StatusNew, app.Status)
	assert.Empty(t, state.History)
}
