// Package openai provides a generator wrapper for the OpenAI Chat
// Completions API. It adapts admitflow's prompt-plus-history generation
// capability into the SDK's message format and back.
package openai

import (
	"context"
	"fmt"

	"github.com/hupe1980/admitflow/model"
	"github.com/openai/openai-go"
)

// Options configure the OpenAI generator adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Generator wraps the OpenAI Chat Completions API behind the generic
// model.Generator interface.
type Generator struct {
	client *openai.Client
	opts   Options
}

// NewGenerator creates a new OpenAI generator using the official client
func NewGenerator(optFns ...func(o *Options)) *Generator {
	client := openai.NewClient()
	return NewGeneratorFromClient(&client, optFns...)
}

// NewGeneratorFromClient creates a new OpenAI generator from an existing client
func NewGeneratorFromClient(client *openai.Client, optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Generator{client: client, opts: opts}
}

// Generate implements model.Generator.
func (g *Generator) Generate(ctx context.Context, prompt string, history []model.Message) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		switch m.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(m.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               g.opts.Model,
		Temperature:         openai.Float(g.opts.Temperature),
		MaxCompletionTokens: openai.Int(g.opts.MaxCompletionTokens),
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Info returns metadata describing this OpenAI generator implementation.
func (g *Generator) Info() model.Info {
	return model.Info{Name: g.opts.Model, Provider: "openai"}
}
