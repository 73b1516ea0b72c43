package core

import "time"

// Param keys recognized in RunParams. Callers may add arbitrary keys; stages
// only read the ones they document.
const (
	ParamProgram          = "program"
	ParamLoanRequested    = "loan_requested"
	ParamFinancialProfile = "financial_profile"
)

// DefaultProgram is assumed when the caller supplies no program selection.
const DefaultProgram = "Computer Science"

// FinancialProfile is the applicant's financial standing used by the loan
// stage. It is an explicit caller input: the workflow never invents or
// samples these numbers.
type FinancialProfile struct {
	FamilyIncome int `json:"family_income"`
	CreditScore  int `json:"credit_score"`
}

// RunParams are caller-supplied, read-only parameters for one workflow run
// (program selection, loan-request flag, financial profile). Handlers never
// mutate them.
type RunParams map[string]any

// Program returns the selected program, or DefaultProgram when unset.
func (p RunParams) Program() string {
	if v, ok := p[ParamProgram].(string); ok && v != "" {
		return v
	}
	return DefaultProgram
}

// LoanRequested reports whether the caller flagged a loan request.
func (p RunParams) LoanRequested() bool {
	v, _ := p[ParamLoanRequested].(bool)
	return v
}

// FinancialProfile returns the injected financial profile, if any.
func (p RunParams) FinancialProfile() (FinancialProfile, bool) {
	switch v := p[ParamFinancialProfile].(type) {
	case FinancialProfile:
		return v, true
	case *FinancialProfile:
		if v != nil {
			return *v, true
		}
	}
	return FinancialProfile{}, false
}

// Transition is one entry in the workflow history: which stage acted, what
// it did, and any stage-specific detail (rejection reason, rank score, loan
// amount). Exactly one entry is appended per state-changing handler action.
type Transition struct {
	Agent     string         `json:"agent"`
	Action    string         `json:"action"`
	Notes     string         `json:"notes,omitempty"`
	Detail    map[string]any `json:"detail,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// WorkflowState wraps the application record with run-level bookkeeping. The
// engine owns it exclusively for the duration of one run and hands it to one
// stage handler at a time; handlers must not retain a reference after
// returning.
type WorkflowState struct {
	Application  *Application `json:"application"`
	CurrentAgent string       `json:"current_agent"`
	History      []Transition `json:"history"`
	Params       RunParams    `json:"context"`
}

// NewWorkflowState creates the run state for a single application.
func NewWorkflowState(app *Application, params RunParams) *WorkflowState {
	if params == nil {
		params = RunParams{}
	}
	return &WorkflowState{
		Application: app,
		History:     []Transition{},
		Params:      params,
	}
}

// Record appends a history entry for a state-changing action.
func (s *WorkflowState) Record(agent, action, notes string, detail map[string]any) {
	s.History = append(s.History, Transition{
		Agent:     agent,
		Action:    action,
		Notes:     notes,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
