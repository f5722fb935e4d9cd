package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// ProviderName identifies one upstream LLM vendor.
type ProviderName string

const (
	ProviderGemini     ProviderName = "gemini"
	ProviderGroq       ProviderName = "groq"
	ProviderOpenRouter ProviderName = "openrouter"
	ProviderDemo       ProviderName = "demo"
)

func (p ProviderName) IsValid() bool {
	switch p {
	case ProviderGemini, ProviderGroq, ProviderOpenRouter, ProviderDemo:
		return true
	}
	return false
}

// FailureReason classifies why a single provider attempt failed.
type FailureReason string

const (
	ReasonRateLimited     FailureReason = "rate_limited"
	ReasonAuthFailed      FailureReason = "auth_failed"
	ReasonPaymentRequired FailureReason = "payment_required"
	ReasonEmptyResponse   FailureReason = "empty_response"
	ReasonHTTPError       FailureReason = "http_error"
	ReasonTimeout         FailureReason = "timeout"
	ReasonUnknown         FailureReason = "unknown"
)

// ProviderError is the failure of one attempt against one provider. The
// message never carries key material.
type ProviderError struct {
	Provider ProviderName
	Reason   FailureReason
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Reason, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

// BusyMessage is the only failure text callers may surface to end users.
const BusyMessage = "AI services are temporarily busy. Please try again later."

// CascadeError aggregates the per-provider failures of one full cascade
// pass. Its Error() is deliberately generic; Attempts carry the detail.
type CascadeError struct {
	Attempts []ProviderError
}

func (e *CascadeError) Error() string { return BusyMessage }

// Detail renders the per-provider reasons for logs.
func (e *CascadeError) Detail() string {
	parts := make([]string, 0, len(e.Attempts))
	for i := range e.Attempts {
		parts = append(parts, e.Attempts[i].Error())
	}
	return strings.Join(parts, "; ")
}

type Request struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

type Result struct {
	Content  string
	Provider ProviderName
	Demo     bool
}

// JSONResult is the outcome of a JSON-mode generation. Data is nil when the
// provider answered but its output would not parse; Raw then holds the
// cleaned text and ParseWarning says why.
type JSONResult struct {
	Data         map[string]any
	Raw          string
	Provider     ProviderName
	Demo         bool
	ParseWarning string
}

// Client is one upstream provider attempt.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() ProviderName
}

// Generator is the surface the rest of the service depends on. Both the
// cascade and the demo responder implement it.
type Generator interface {
	Generate(ctx context.Context, req Request) (Result, error)
	GenerateJSON(ctx context.Context, req Request) (JSONResult, error)
	Status() Status
}

// Status reports which providers are usable. Booleans only, never keys.
type Status struct {
	Demo      bool                  `json:"demo_mode"`
	Providers map[ProviderName]bool `json:"providers"`
}

var placeholderKey = regexp.MustCompile(`(?i)^your_[a-z0-9_]*_?here$`)

// UsableKey reports whether a configured key is real. Empty strings and
// placeholder values left over from .env templates do not count.
func UsableKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	return !placeholderKey.MatchString(key)
}
