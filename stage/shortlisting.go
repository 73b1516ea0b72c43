package stage

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/logging"
	"github.com/hupe1980/admitflow/policy"
)

// verifiedBonus is added to the rank score when document verification
// completed cleanly.
const verifiedBonus = 0.5

// ShortlistingOptions configures the shortlisting stage.
type ShortlistingOptions struct {
	// Policies supplies eligibility criteria and program capacity.
	Policies policy.Source
	// RankAdjuster contributes an additional signed component to the rank
	// score (interview results, extracurriculars, tie-breaking). Defaults to
	// contributing zero so ranking stays deterministic.
	RankAdjuster func(app *core.Application) float64
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Shortlisting evaluates verified applications against the eligibility
// criteria and the target program's remaining capacity, computing a rank
// score for those it shortlists.
//
// The two rejection checks run in order and the first failure decides the
// recorded reason: score below minimum first, then capacity.
type Shortlisting struct {
	BaseStage
	rankAdjuster func(app *core.Application) float64
}

// NewShortlisting creates the shortlisting stage.
func NewShortlisting(optFns ...func(o *ShortlistingOptions)) *Shortlisting {
	opts := ShortlistingOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.RankAdjuster == nil {
		opts.RankAdjuster = func(*core.Application) float64 { return 0 }
	}
	return &Shortlisting{
		BaseStage: newBaseStage(
			core.StageShortlisting,
			"Shortlisting Agent",
			"You are a shortlisting agent for a university admission process.",
			opts.Policies,
			nil,
			opts.Logger,
		),
		rankAdjuster: opts.RankAdjuster,
	}
}

// Process implements core.StageHandler.
func (s *Shortlisting) Process(ctx context.Context, state *core.WorkflowState) error {
	app := state.Application
	if app.Status != core.StatusDocumentsVerified {
		s.logger.Debug("skipping application outside precondition", "stage", s.id, "status", app.Status)
		return nil
	}

	criteria := s.policies.Eligibility(ctx)

	var score float64
	if app.EligibilityScore != nil {
		score = *app.EligibilityScore
	}
	if score < criteria.MinGPA {
		notes := fmt.Sprintf("Application rejected: Eligibility score (%.2f) below minimum requirement (%.2f)", score, criteria.MinGPA)
		app.ShortlistingNotes = notes
		app.SetStatus(core.StatusRejected)
		state.Record(s.name, "application_rejection", notes, map[string]any{"score": score, "min_gpa": criteria.MinGPA})
		s.logger.Info("application rejected", "application_id", app.ID, "score", score)
		return nil
	}

	program := state.Params.Program()
	prog, known := s.policies.Program(ctx, program)
	if !known || !prog.HasCapacity() {
		notes := fmt.Sprintf("Application rejected: No capacity available in the %s program", program)
		app.ShortlistingNotes = notes
		app.SetStatus(core.StatusRejected)
		state.Record(s.name, "application_rejection", notes, map[string]any{"program": program})
		s.logger.Info("application rejected", "application_id", app.ID, "program", program)
		return nil
	}

	rank := score + s.rankAdjuster(app)
	if strings.Contains(app.VerificationNotes, "success") {
		rank += verifiedBonus
	}

	notes := fmt.Sprintf("Application shortlisted with rank score: %.2f", rank)
	app.ShortlistingNotes = notes
	app.SetStatus(core.StatusShortlisted)
	state.Record(s.name, "application_shortlisting", notes, map[string]any{"rank_score": rank, "program": program})
	s.logger.Info("application shortlisted", "application_id", app.ID, "rank_score", rank, "program", program)
	return nil
}
