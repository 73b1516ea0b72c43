package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/flow"
	"github.com/hupe1980/admitflow/logging"
)

// ErrTransitionLimit is returned when a run exceeds the configured maximum
// number of stage invocations. With the fixed routing table the only cycle
// runs through loan_rejected and awaiting_payment, so hitting the cap means
// a handler is misbehaving rather than the workflow making slow progress.
var ErrTransitionLimit = errors.New("engine: transition limit exceeded")

// ErrUnknownStage is returned when the router selects a stage no handler
// was registered for. It indicates incomplete engine setup.
var ErrUnknownStage = errors.New("engine: no handler registered for stage")

// Config holds engine behavior settings.
type Config struct {
	// MaxTransitions caps stage invocations per run.
	MaxTransitions int
}

// DefaultConfig provides sensible defaults.
var DefaultConfig = Config{
	MaxTransitions: 20,
}

// Options configures the workflow engine.
type Options struct {
	// Config holds behavior settings. Zero or negative MaxTransitions falls
	// back to the default.
	Config Config
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Engine executes the admission workflow synchronously. Stage handlers are
// registered once at setup; Run then owns the state exclusively until it
// returns. An Engine is safe for concurrent Run calls as long as each call
// gets its own state.
type Engine struct {
	router   *flow.Router
	handlers map[core.StageID]core.StageHandler
	config   Config
	logger   logging.Logger
}

// New creates a workflow engine with no handlers registered.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config.MaxTransitions <= 0 {
		opts.Config.MaxTransitions = DefaultConfig.MaxTransitions
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Engine{
		router:   flow.NewRouter(),
		handlers: make(map[core.StageID]core.StageHandler),
		config:   opts.Config,
		logger:   opts.Logger,
	}
}

// Register adds a stage handler. Registering two handlers for the same stage
// is a setup bug and fails.
func (e *Engine) Register(h core.StageHandler) error {
	if h == nil {
		return errors.New("engine: cannot register nil handler")
	}
	if _, exists := e.handlers[h.ID()]; exists {
		return fmt.Errorf("engine: handler for stage %q already registered", h.ID())
	}
	e.handlers[h.ID()] = h
	return nil
}

// MustRegister is Register that panics on error, for static setup.
func (e *Engine) MustRegister(h core.StageHandler) {
	if err := e.Register(h); err != nil {
		panic(err)
	}
}

// Run drives the state until a terminal status, a parked run, or an error.
// The returned state is the same pointer passed in, mutated in place, and is
// returned on error paths too so callers can inspect partial progress.
//
// A run parks, returning nil, when a handler completes without changing the
// status or appending history. That is the clean outcome for an application
// waiting on an external event, such as awaiting_payment with no confirmed
// payment. Re-entering the parked state later resumes from where it stopped.
func (e *Engine) Run(ctx context.Context, state *core.WorkflowState) (*core.WorkflowState, error) {
	if state == nil || state.Application == nil {
		return state, errors.New("engine: nil workflow state")
	}

	app := state.Application
	e.logger.Info("workflow run started", "application_id", app.ID, "status", app.Status)

	for steps := 0; ; steps++ {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		status := app.Status
		if status.IsTerminal() {
			e.logger.Info("workflow completed", "application_id", app.ID, "status", status)
			return state, nil
		}

		stageID, ok := e.router.Next(status)
		if !ok {
			e.logger.Warn("no transition defined, terminating run", "application_id", app.ID, "status", status)
			return state, nil
		}

		if steps >= e.config.MaxTransitions {
			return state, fmt.Errorf("%w: %d stage invocations at status %q", ErrTransitionLimit, steps, status)
		}

		handler, ok := e.handlers[stageID]
		if !ok {
			return state, fmt.Errorf("%w: %q", ErrUnknownStage, stageID)
		}

		state.CurrentAgent = handler.Name()
		prevHistory := len(state.History)

		e.logger.Debug("invoking stage", "application_id", app.ID, "stage", stageID, "status", status)
		if err := handler.Process(ctx, state); err != nil {
			return state, fmt.Errorf("engine: stage %q: %w", stageID, err)
		}

		if app.Status == status && len(state.History) == prevHistory {
			e.logger.Info("workflow parked", "application_id", app.ID, "status", status, "stage", stageID)
			return state, nil
		}
	}
}
