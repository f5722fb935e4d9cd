package llm

import (
	"context"
	"encoding/json"
	"strings"

	"blueprintai/internal/logger"
)

// AttemptObserver records per-provider attempt outcomes.
type AttemptObserver interface {
	RecordSuccess(provider ProviderName)
	RecordFailure(provider ProviderName, reason FailureReason)
}

// Candidate pairs a provider client with the key it was configured with.
// The cascade never dials a candidate whose key is unusable.
type Candidate struct {
	Client Client
	Key    string
}

// Cascade tries providers in strict order, one attempt each, first
// success wins.
type Cascade struct {
	candidates []Candidate
	log        *logger.Logger
	obs        AttemptObserver
}

func NewCascade(log *logger.Logger, obs AttemptObserver, candidates ...Candidate) *Cascade {
	if log == nil {
		log = logger.NewNop()
	}
	return &Cascade{candidates: candidates, log: log, obs: obs}
}

func (c *Cascade) Generate(ctx context.Context, req Request) (Result, error) {
	attempts := make([]ProviderError, 0, len(c.candidates))
	for _, cand := range c.candidates {
		name := cand.Client.Name()
		if !UsableKey(cand.Key) {
			attempts = append(attempts, ProviderError{
				Provider: name,
				Reason:   ReasonAuthFailed,
				Message:  "api key not configured",
			})
			c.log.Debug("provider skipped", "provider", name, "reason", "no usable key")
			continue
		}

		text, err := cand.Client.Generate(ctx, req)
		if err == nil {
			if c.obs != nil {
				c.obs.RecordSuccess(name)
			}
			c.log.Info("provider succeeded", "provider", name, "chars", len(text))
			return Result{Content: text, Provider: name}, nil
		}

		perr := asProviderError(name, err)
		attempts = append(attempts, *perr)
		if c.obs != nil {
			c.obs.RecordFailure(name, perr.Reason)
		}
		c.log.Warn("provider failed", "provider", name, "reason", string(perr.Reason), "status", perr.Status)
	}
	return Result{}, &CascadeError{Attempts: attempts}
}

const jsonOnlyInstruction = "\n\nRespond with raw JSON only. No markdown fences, no explanations, no text outside the JSON object."

func (c *Cascade) GenerateJSON(ctx context.Context, req Request) (JSONResult, error) {
	jsonReq := req
	jsonReq.Prompt = req.Prompt + jsonOnlyInstruction

	res, err := c.Generate(ctx, jsonReq)
	if err != nil {
		return JSONResult{}, err
	}
	return parseJSONContent(res)
}

func (c *Cascade) Status() Status {
	st := Status{Providers: make(map[ProviderName]bool, len(c.candidates))}
	for _, cand := range c.candidates {
		st.Providers[cand.Client.Name()] = UsableKey(cand.Key)
	}
	return st
}

// parseJSONContent applies the markdown cleanup and decodes. A decode
// failure is a soft failure: the caller still gets the cleaned raw text.
func parseJSONContent(res Result) (JSONResult, error) {
	cleaned := CleanJSONText(res.Content)
	out := JSONResult{Raw: cleaned, Provider: res.Provider, Demo: res.Demo}
	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		out.ParseWarning = "provider output was not valid JSON"
		return out, nil
	}
	out.Data = data
	return out, nil
}

// CleanJSONText strips markdown code fences and any prose around the
// outermost JSON object.
func CleanJSONText(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func asProviderError(name ProviderName, err error) *ProviderError {
	if perr, ok := err.(*ProviderError); ok {
		return perr
	}
	return &ProviderError{Provider: name, Reason: ReasonUnknown, Message: "request failed"}
}
