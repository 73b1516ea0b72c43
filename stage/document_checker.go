package stage

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/logging"
	"github.com/hupe1980/admitflow/policy"
)

// gpaPattern extracts the grade point average from transcript content. The
// intake pipeline stores extracted document text, so a plain pattern match
// is all the verification needs here.
var gpaPattern = regexp.MustCompile(`GPA:\s*([\d.]+)`)

// DocumentCheckerOptions configures the document checking stage.
type DocumentCheckerOptions struct {
	// Policies supplies the eligibility criteria (required document set and
	// minimum GPA). Defaults to the static policy defaults.
	Policies policy.Source
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// DocumentChecker verifies that a new application carries every required
// document and that the academic credentials meet the minimum threshold.
//
// Outcomes: documents_verified with the extracted GPA stored as the
// eligibility score, or documents_rejected with notes naming what failed.
type DocumentChecker struct {
	BaseStage
}

// NewDocumentChecker creates the document checking stage.
func NewDocumentChecker(optFns ...func(o *DocumentCheckerOptions)) *DocumentChecker {
	opts := DocumentCheckerOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &DocumentChecker{
		BaseStage: newBaseStage(
			core.StageDocumentChecker,
			"Document Checker",
			"You are a document verification agent for a university admission process.",
			opts.Policies,
			nil,
			opts.Logger,
		),
	}
}

// Process implements core.StageHandler.
func (d *DocumentChecker) Process(ctx context.Context, state *core.WorkflowState) error {
	app := state.Application
	if app.Status != core.StatusNew {
		d.logger.Debug("skipping application outside precondition", "stage", d.id, "status", app.Status)
		return nil
	}

	criteria := d.policies.Eligibility(ctx)
	required := criteria.RequiredDocuments
	if len(required) == 0 {
		required = core.RequiredDocuments()
	}

	var missing []string
	for _, doc := range required {
		if _, ok := app.Documents[doc]; !ok {
			missing = append(missing, doc)
		}
	}
	if len(missing) > 0 {
		notes := fmt.Sprintf("Missing documents: %s", strings.Join(missing, ", "))
		app.VerificationNotes = notes
		app.SetStatus(core.StatusDocumentsRejected)
		state.Record(d.name, "document_rejection", notes, map[string]any{"missing": missing})
		d.logger.Info("documents rejected", "application_id", app.ID, "missing", missing)
		return nil
	}

	gpa, found := extractGPA(app.Documents[core.DocAcademicTranscripts])
	if !found {
		notes := "Academic credentials could not be extracted from transcripts."
		app.VerificationNotes = notes
		app.SetStatus(core.StatusDocumentsRejected)
		state.Record(d.name, "document_rejection", notes, nil)
		d.logger.Info("documents rejected", "application_id", app.ID, "reason", "no GPA found")
		return nil
	}
	if gpa < criteria.MinGPA {
		notes := fmt.Sprintf("Academic credentials do not meet requirements. GPA: %.2f, Required GPA: %.2f", gpa, criteria.MinGPA)
		app.VerificationNotes = notes
		app.SetStatus(core.StatusDocumentsRejected)
		state.Record(d.name, "document_rejection", notes, map[string]any{"gpa": gpa, "min_gpa": criteria.MinGPA})
		d.logger.Info("documents rejected", "application_id", app.ID, "gpa", gpa)
		return nil
	}

	notes := "All documents verified successfully."
	app.VerificationNotes = notes
	app.EligibilityScore = &gpa
	app.SetStatus(core.StatusDocumentsVerified)
	state.Record(d.name, "document_verification", notes, map[string]any{"gpa": gpa})
	d.logger.Info("documents verified", "application_id", app.ID, "gpa", gpa)
	return nil
}

// extractGPA pulls the numeric GPA from extracted transcript text.
func extractGPA(transcript string) (float64, bool) {
	m := gpaPattern.FindStringSubmatch(transcript)
	if m == nil {
		return 0, false
	}
	gpa, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return gpa, true
}
