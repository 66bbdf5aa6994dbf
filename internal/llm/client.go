// Package llm abstracts the language-model backends behind a single
// Provider interface and layers retry and usage metering on top.
package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/springwalk/lexwatch/internal/config"
)

// Request is a single completion call.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Usage reports the token counts billed for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response carries the completion text plus the billed usage.
type Response struct {
	Text  string
	Usage Usage
}

// Provider is implemented by each model backend.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// New builds the provider named in the configuration.
func New(cfg config.LLMConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: missing API key for provider %s", cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.Endpoint, cfg.TimeoutSeconds), nil
	case config.ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider: %s", cfg.Provider)
	}
}

// Meter accumulates token usage across calls. Safe for concurrent use.
type Meter struct {
	mu    sync.Mutex
	total Usage
}

func (m *Meter) add(u Usage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total.InputTokens += u.InputTokens
	m.total.OutputTokens += u.OutputTokens
}

// Total returns the usage accumulated so far.
func (m *Meter) Total() Usage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

type metered struct {
	inner Provider
	meter *Meter
}

// Metered wraps a provider so each successful call adds its usage to meter.
func Metered(p Provider, meter *Meter) Provider {
	return &metered{inner: p, meter: meter}
}

func (m *metered) Complete(ctx context.Context, req Request) (*Response, error) {
	resp, err := m.inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	m.meter.add(resp.Usage)
	return resp, nil
}
