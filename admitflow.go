// Package admitflow provides a high-level façade over the admission workflow
// engine, stages and persistence. Most applications interact with this
// package by:
//  1. Creating an AdmitFlow via New() (optionally overriding the default
//     in-memory store, policy source, payment confirmer or language model)
//  2. Submitting applications with ProcessApplication
//  3. Re-entering parked applications with Resume once an external event
//     (typically a fee payment) has occurred
//
// The façade wires the five stage handlers to the engine and saves the
// application to the store after every run. All defaults are safe for local
// development and testing; production deployments typically supply a durable
// store, a scraped or file-backed policy source and a structured logger.
package admitflow

import (
	"context"
	"fmt"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/engine"
	"github.com/hupe1980/admitflow/logging"
	"github.com/hupe1980/admitflow/model"
	"github.com/hupe1980/admitflow/policy"
	"github.com/hupe1980/admitflow/stage"
	"github.com/hupe1980/admitflow/store"
)

// Options configures the AdmitFlow instance.
type Options struct {
	// EngineConfig holds run-loop settings such as the transition cap.
	EngineConfig engine.Config

	// Store persists applications across runs (defaults to in-memory).
	Store core.ApplicationStore

	// Policies supplies admission criteria, program catalog, lending rules
	// and communication templates (defaults to the static defaults).
	Policies policy.Source

	// Payments answers fee-payment confirmation queries (defaults to
	// NoPayments, so applications park at awaiting_payment).
	Payments core.PaymentConfirmer

	// Generator optionally drafts student-facing communications with a
	// language model. Nil means the template texts are used as-is.
	Generator model.Generator

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AdmitFlow is the high-level façade aggregating the engine, the stage
// handlers and the application store.
type AdmitFlow struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new AdmitFlow instance with optional overrides. Any unset
// collaborator is initialized with its in-memory default.
func New(optFns ...func(o *Options)) *AdmitFlow {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Store:        store.NewInMemory(),
		Policies:     policy.NewStatic(),
		Payments:     core.NoPayments{},
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Store == nil {
		opts.Store = store.NewInMemory()
	}
	if opts.Policies == nil {
		opts.Policies = policy.NewStatic()
	}
	if opts.Payments == nil {
		opts.Payments = core.NoPayments{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	e := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Logger = opts.Logger
	})
	e.MustRegister(stage.NewDocumentChecker(func(o *stage.DocumentCheckerOptions) {
		o.Policies = opts.Policies
		o.Logger = opts.Logger
	}))
	e.MustRegister(stage.NewShortlisting(func(o *stage.ShortlistingOptions) {
		o.Policies = opts.Policies
		o.Logger = opts.Logger
	}))
	e.MustRegister(stage.NewCounselor(func(o *stage.CounselorOptions) {
		o.Policies = opts.Policies
		o.Generator = opts.Generator
		o.Logger = opts.Logger
	}))
	e.MustRegister(stage.NewLoan(func(o *stage.LoanOptions) {
		o.Policies = opts.Policies
		o.Generator = opts.Generator
		o.Logger = opts.Logger
	}))
	e.MustRegister(stage.NewAdmissionOfficer(func(o *stage.AdmissionOfficerOptions) {
		o.Policies = opts.Policies
		o.Generator = opts.Generator
		o.Payments = opts.Payments
		o.Logger = opts.Logger
	}))

	return &AdmitFlow{opts: opts, engine: e}
}

// Store exposes the application store for inspection and administration.
func (f *AdmitFlow) Store() core.ApplicationStore { return f.opts.Store }

// ProcessApplication creates a new application from the student's submission
// and drives it as far as the workflow can go without external events. The
// application is saved before and after the run, so a failed run still
// leaves the last consistent snapshot in the store.
func (f *AdmitFlow) ProcessApplication(
	ctx context.Context,
	studentName string,
	documents map[core.DocumentType]string,
	params core.RunParams,
) (*core.WorkflowState, error) {
	app := core.NewApplication(studentName, documents)
	if err := f.opts.Store.Save(app); err != nil {
		return nil, fmt.Errorf("save application: %w", err)
	}
	return f.run(ctx, core.NewWorkflowState(app, params))
}

// Resume re-enters the workflow for a stored application, typically after a
// payment was confirmed or updated policy data changed the outcome. Params
// follow the same conventions as ProcessApplication.
func (f *AdmitFlow) Resume(ctx context.Context, applicationID string, params core.RunParams) (*core.WorkflowState, error) {
	app, err := f.opts.Store.Get(applicationID)
	if err != nil {
		return nil, fmt.Errorf("load application: %w", err)
	}
	return f.run(ctx, core.NewWorkflowState(app, params))
}

func (f *AdmitFlow) run(ctx context.Context, state *core.WorkflowState) (*core.WorkflowState, error) {
	state, runErr := f.engine.Run(ctx, state)
	if state != nil && state.Application != nil {
		if err := f.opts.Store.Save(state.Application); err != nil {
			if runErr != nil {
				return state, fmt.Errorf("save application after run error %v: %w", runErr, err)
			}
			return state, fmt.Errorf("save application: %w", err)
		}
	}
	return state, runErr
}
