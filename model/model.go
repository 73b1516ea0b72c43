package model

import (
	"context"
	"fmt"
)

// Message is one turn of prior conversation passed to a generator.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Info contains metadata about a generator implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Generator is the minimal interface stages use to draft free-form text.
// Implementations may return any string; callers must tolerate it.
type Generator interface {
	Generate(ctx context.Context, prompt string, history []Message) (string, error)

	// Info returns information about the generator implementation.
	Info() Info
}

// MockGenerator is a lightweight in-memory Generator useful for tests &
// examples. Unregistered prompts get an echo response.
type MockGenerator struct {
	info      Info
	responses map[string]string
}

// NewMockGenerator constructs a MockGenerator.
func NewMockGenerator(name string) *MockGenerator {
	return &MockGenerator{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockGenerator) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Generate implements Generator.
func (m *MockGenerator) Generate(_ context.Context, prompt string, _ []Message) (string, error) {
	if resp, ok := m.responses[prompt]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", prompt), nil
}

// Info implements Generator.
func (m *MockGenerator) Info() Info { return m.info }
