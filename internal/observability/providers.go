// Package observability tracks per-provider outcome counters so that
// operators can see which upstream LLM is actually serving traffic and
// why attempts fail.
package observability

import (
	"sync"

	"blueprintai/internal/llm"
)

// ProviderStats is a point-in-time snapshot for one provider.
type ProviderStats struct {
	Successes uint64            `json:"successes"`
	Failures  uint64            `json:"failures"`
	ByReason  map[string]uint64 `json:"by_reason,omitempty"`
}

// ProviderObserver counts attempt outcomes per provider. It satisfies
// the cascade's attempt observer and is safe for concurrent use.
type ProviderObserver struct {
	mu    sync.Mutex
	stats map[llm.ProviderName]*providerCounters
}

type providerCounters struct {
	successes uint64
	failures  uint64
	byReason  map[llm.FailureReason]uint64
}

func NewProviderObserver() *ProviderObserver {
	return &ProviderObserver{stats: make(map[llm.ProviderName]*providerCounters)}
}

func (o *ProviderObserver) RecordSuccess(provider llm.ProviderName) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.counters(provider).successes++
}

func (o *ProviderObserver) RecordFailure(provider llm.ProviderName, reason llm.FailureReason) {
	o.mu.Lock()
	defer o.mu.Unlock()
	c := o.counters(provider)
	c.failures++
	c.byReason[reason]++
}

func (o *ProviderObserver) counters(provider llm.ProviderName) *providerCounters {
	c, ok := o.stats[provider]
	if !ok {
		c = &providerCounters{byReason: make(map[llm.FailureReason]uint64)}
		o.stats[provider] = c
	}
	return c
}

// Snapshot returns a copy of all counters keyed by provider name.
func (o *ProviderObserver) Snapshot() map[string]ProviderStats {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make(map[string]ProviderStats, len(o.stats))
	for provider, c := range o.stats {
		s := ProviderStats{Successes: c.successes, Failures: c.failures}
		if len(c.byReason) > 0 {
			s.ByReason = make(map[string]uint64, len(c.byReason))
			for reason, n := range c.byReason {
				s.ByReason[string(reason)] = n
			}
		}
		out[string(provider)] = s
	}
	return out
}
