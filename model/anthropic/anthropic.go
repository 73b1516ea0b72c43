// Package anthropic provides a generator wrapper for the Anthropic Claude API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hupe1980/admitflow/model"
)

// Options configures the Anthropic generator adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Generator wraps the Anthropic Messages API behind the generic
// model.Generator interface.
type Generator struct {
	client *anthropic.Client
	opts   Options
}

// NewGenerator creates a new Anthropic generator using the official client
func NewGenerator(optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Generator{
		client: &client,
		opts:   opts,
	}
}

// NewGeneratorFromClient creates a new Anthropic generator from an existing client
func NewGeneratorFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Generator{
		client: client,
		opts:   opts,
	}
}

// Generate implements model.Generator. History system turns become the
// system prompt; the prompt itself is sent as the final user message.
func (g *Generator) Generate(ctx context.Context, prompt string, history []model.Message) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       g.opts.Model,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: anthropic.Float(g.opts.Temperature),
	}

	if systemBlocks := extractSystemBlocks(history); len(systemBlocks) > 0 {
		params.System = systemBlocks
	}

	params.Messages = buildMessages(prompt, history)

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	return sb.String(), nil
}

// Info implements model.Generator.
func (g *Generator) Info() model.Info {
	return model.Info{Name: string(g.opts.Model), Provider: "anthropic"}
}

// buildMessages converts history plus the current prompt to Anthropic message format.
func buildMessages(prompt string, history []model.Message) []anthropic.MessageParam {
	var messages []anthropic.MessageParam
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		switch m.Role {
		case "system":
			continue // handled separately
		case "assistant":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))
	return messages
}

// extractSystemBlocks collects system turns into Anthropic system blocks.
func extractSystemBlocks(history []model.Message) []anthropic.TextBlockParam {
	var blocks []anthropic.TextBlockParam
	for _, m := range history {
		if m.Role == "system" && m.Content != "" {
			blocks = append(blocks, anthropic.TextBlockParam{Text: m.Content})
		}
	}
	return blocks
}
