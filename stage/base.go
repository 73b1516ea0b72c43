package stage

import (
	"context"
	"strings"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/logging"
	"github.com/hupe1980/admitflow/model"
	"github.com/hupe1980/admitflow/policy"
)

// BaseStage bundles the identity and injected capabilities shared by all
// stage handlers. Embed it in concrete stages and supply a Process method to
// satisfy core.StageHandler.
type BaseStage struct {
	id           core.StageID
	name         string
	instructions string // persona used when a generator drafts communications
	policies     policy.Source
	generator    model.Generator
	logger       logging.Logger
}

func newBaseStage(id core.StageID, name, instructions string, policies policy.Source, generator model.Generator, logger logging.Logger) BaseStage {
	if policies == nil {
		policies = policy.NewStatic()
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return BaseStage{
		id:           id,
		name:         name,
		instructions: instructions,
		policies:     policies,
		generator:    generator,
		logger:       logger,
	}
}

// ID returns the stage identifier used by the router.
func (b *BaseStage) ID() core.StageID { return b.id }

// Name returns the human-readable stage name recorded in history entries.
func (b *BaseStage) Name() string { return b.name }

// render resolves a letter template from the policy source, replacing
// [PLACEHOLDER] tokens, and falls back to the given default text when no
// template is registered. Template content is untrusted: unknown
// placeholders simply remain in the output.
func (b *BaseStage) render(ctx context.Context, template string, repl map[string]string, fallback string) string {
	tmpl, ok := b.policies.Template(ctx, template)
	if !ok || strings.TrimSpace(tmpl) == "" {
		tmpl = fallback
	}
	if len(repl) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(repl)*2)
	for k, v := range repl {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// draft asks the configured generator to write a communication and falls
// back to the prepared text when no generator is set, the call fails, or it
// returns an empty string. Workflow decisions never depend on the drafted
// content.
func (b *BaseStage) draft(ctx context.Context, prompt, fallback string) string {
	if b.generator == nil {
		return fallback
	}
	history := []model.Message{{Role: "system", Content: b.instructions}}
	text, err := b.generator.Generate(ctx, prompt, history)
	if err != nil {
		b.logger.Debug("generator failed, using template text", "stage", b.id, "error", err)
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}
