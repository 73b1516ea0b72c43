package testutil

import (
	"fmt"

	"github.com/hupe1980/admitflow/core"
)

// CompleteDocuments returns a full document set whose transcripts carry the
// given GPA, matching the format the document checker parses.
func CompleteDocuments(gpa float64) map[core.DocumentType]string {
	return map[core.DocumentType]string{
		core.DocApplicationForm:       "Application form for admission",
		core.DocAcademicTranscripts:   fmt.Sprintf("Academic transcripts. GPA: %.2f", gpa),
		core.DocIDPassport:            "Passport No. X1234567",
		core.DocRecommendationLetters: "Two letters of recommendation",
		core.DocStatementOfPurpose:    "Statement of purpose",
	}
}

// ApplicationBuilder provides a fluent helper for constructing applications
// in tests. Example:
//
//	app := NewApplicationBuilder().Name("Alice").GPA(3.8).Status(core.StatusShortlisted).Build()
//
// Chain only the parts you need; sensible defaults are applied.
type ApplicationBuilder struct {
	name      string
	documents map[core.DocumentType]string
	status    core.Status
	score     *float64
	notes     string
}

// NewApplicationBuilder creates a builder with a complete document set at
// GPA 3.5 and status new.
func NewApplicationBuilder() *ApplicationBuilder {
	return &ApplicationBuilder{
		name:      "Test Student",
		documents: CompleteDocuments(3.5),
		status:    core.StatusNew,
	}
}

// Name sets the student name (chainable).
func (b *ApplicationBuilder) Name(n string) *ApplicationBuilder { b.name = n; return b }

// GPA rewrites the transcripts document with the given GPA (chainable).
func (b *ApplicationBuilder) GPA(gpa float64) *ApplicationBuilder {
	b.documents[core.DocAcademicTranscripts] = fmt.Sprintf("Academic transcripts. GPA: %.2f", gpa)
	return b
}

// Documents replaces the whole document set (chainable).
func (b *ApplicationBuilder) Documents(docs map[core.DocumentType]string) *ApplicationBuilder {
	b.documents = docs
	return b
}

// WithoutDocument removes one document type from the set (chainable).
func (b *ApplicationBuilder) WithoutDocument(t core.DocumentType) *ApplicationBuilder {
	delete(b.documents, t)
	return b
}

// Status forces the application's status (chainable).
func (b *ApplicationBuilder) Status(s core.Status) *ApplicationBuilder { b.status = s; return b }

// Score sets the eligibility score, as the document checker would (chainable).
func (b *ApplicationBuilder) Score(s float64) *ApplicationBuilder { b.score = &s; return b }

// VerificationNotes sets the verification notes (chainable).
func (b *ApplicationBuilder) VerificationNotes(n string) *ApplicationBuilder { b.notes = n; return b }

// Build constructs the application.
func (b *ApplicationBuilder) Build() *core.Application {
	app := core.NewApplication(b.name, b.documents)
	app.Status = b.status
	app.EligibilityScore = b.score
	app.VerificationNotes = b.notes
	return app
}
