package policy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const policyYAML = `
eligibility:
  min_gpa: 3.3
programs:
  - name: Data Science
    capacity: 40
    tuition_fee: 11000
    registration_fee: 550
    facility_fee: 1650
loan:
  max_amount: 18000
  interest_rate: 3.5
  repayment_years: 12
  grace_period_months: 6
  min_income: 28000
  min_credit_score: 680
templates:
  admission_letter: "Dear [STUDENT_NAME], you are admitted to [PROGRAM]."
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(policyYAML))
	require.NoError(t, err)
	ctx := context.Background()

	criteria := s.Eligibility(ctx)
	assert.Equal(t, 3.3, criteria.MinGPA)
	// required documents were omitted, so the defaults apply
	assert.Len(t, criteria.RequiredDocuments, 5)

	p, ok := s.Program(ctx, "Data Science")
	require.True(t, ok)
	assert.Equal(t, 40, p.Capacity)
	assert.Equal(t, 13200, p.TotalFee())

	// default catalog survives alongside the file's additions
	_, ok = s.Program(ctx, "Medicine")
	assert.True(t, ok)

	loan := s.Loan(ctx)
	assert.Equal(t, 18000, loan.MaxAmount)
	assert.Equal(t, 680, loan.MinCreditScore)

	tmpl, ok := s.Template(ctx, TemplateAdmissionLetter)
	require.True(t, ok)
	assert.Contains(t, tmpl, "[STUDENT_NAME]")
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultEligibility(), s.Eligibility(context.Background()))
	assert.Equal(t, DefaultLoan(), s.Loan(context.Background()))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("programs: {not: [a, list"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(policyYAML), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3.3, s.Eligibility(context.Background()).MinGPA)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
