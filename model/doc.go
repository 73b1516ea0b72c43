// Package model defines the text generation capability admission stages use
// to draft student-facing communications, plus provider adapters for
// Anthropic and OpenAI.
//
// The workflow treats generation as an opaque service: any returned string
// is accepted without validation, and no transition decision ever depends on
// model output. Stages configured without a generator fall back to policy
// templates, so the whole pipeline runs deterministically offline.
package model
