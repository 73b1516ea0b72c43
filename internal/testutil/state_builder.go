package testutil

import "github.com/hupe1980/admitflow/core"

// StateBuilder helps construct workflow states with fluent chaining for
// tests. Example:
//
//	state := NewStateBuilder(app).Program("Medicine").LoanRequested().Build()
type StateBuilder struct {
	app    *core.Application
	params core.RunParams
}

// NewStateBuilder creates a new builder wrapping the given application.
func NewStateBuilder(app *core.Application) *StateBuilder {
	return &StateBuilder{app: app, params: core.RunParams{}}
}

// Program sets the program selection (chainable).
func (b *StateBuilder) Program(name string) *StateBuilder {
	b.params[core.ParamProgram] = name
	return b
}

// LoanRequested flags the run as requesting a student loan (chainable).
func (b *StateBuilder) LoanRequested() *StateBuilder {
	b.params[core.ParamLoanRequested] = true
	return b
}

// Financials injects the applicant's financial profile (chainable).
func (b *StateBuilder) Financials(income, creditScore int) *StateBuilder {
	b.params[core.ParamFinancialProfile] = core.FinancialProfile{
		FamilyIncome: income,
		CreditScore:  creditScore,
	}
	return b
}

// Param sets an arbitrary run parameter (chainable).
func (b *StateBuilder) Param(key string, val any) *StateBuilder {
	b.params[key] = val
	return b
}

// Build constructs the workflow state.
func (b *StateBuilder) Build() *core.WorkflowState {
	return core.NewWorkflowState(b.app, b.params)
}
