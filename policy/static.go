package policy

import (
	"context"
	"sync"
)

// Static is an in-memory Source seeded with the default policy values.
// Overrides can be supplied at construction via options or later via the
// Set* methods. Safe for concurrent use.
type Static struct {
	mu          sync.RWMutex
	eligibility EligibilityCriteria
	programs    map[string]Program
	loan        LoanPolicy
	templates   map[string]string
}

// StaticOption mutates a Static during construction.
type StaticOption func(s *Static)

// WithEligibility overrides the eligibility criteria.
func WithEligibility(c EligibilityCriteria) StaticOption {
	return func(s *Static) { s.eligibility = c }
}

// WithProgram adds or replaces a program in the catalog.
func WithProgram(p Program) StaticOption {
	return func(s *Static) { s.programs[p.Name] = p }
}

// WithLoan overrides the lending rules.
func WithLoan(l LoanPolicy) StaticOption {
	return func(s *Static) { s.loan = l }
}

// WithTemplate registers a letter template.
func WithTemplate(name, text string) StaticOption {
	return func(s *Static) { s.templates[name] = text }
}

// NewStatic constructs a Static source with the documented defaults applied
// first, then any options.
func NewStatic(opts ...StaticOption) *Static {
	s := &Static{
		eligibility: DefaultEligibility(),
		programs:    make(map[string]Program),
		loan:        DefaultLoan(),
		templates:   make(map[string]string),
	}
	for _, p := range DefaultPrograms() {
		s.programs[p.Name] = p
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Eligibility implements Source.
func (s *Static) Eligibility(context.Context) EligibilityCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eligibility
}

// Program implements Source.
func (s *Static) Program(_ context.Context, name string) (Program, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.programs[name]
	return p, ok
}

// Loan implements Source.
func (s *Static) Loan(context.Context) LoanPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loan
}

// Template implements Source.
func (s *Static) Template(_ context.Context, name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[name]
	return t, ok
}

// SetProgram adds or replaces a program after construction.
func (s *Static) SetProgram(p Program) {
	s.mu.Lock()
	s.programs[p.Name] = p
	s.mu.Unlock()
}

// SetEnrollment updates the enrollment count of an existing program. Unknown
// program names are ignored.
func (s *Static) SetEnrollment(name string, enrolled int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.programs[name]
	if !ok {
		return
	}
	p.Enrolled = enrolled
	s.programs[name] = p
}

// SetTemplate registers a letter template after construction.
func (s *Static) SetTemplate(name, text string) {
	s.mu.Lock()
	s.templates[name] = text
	s.mu.Unlock()
}
