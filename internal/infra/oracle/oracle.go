// Package oracle provides generation backends implementing domain.Oracle.
//
// Backends never surface failures as errors: a missing binary, a timeout, a
// non-JSON reply all degrade to an empty result, and the caller falls back
// to deterministic defaults. The only trace of a failure is a log entry.
package oracle

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// Provider names accepted in configuration.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// DefaultTimeout bounds a single generation attempt. There are no retries.
const DefaultTimeout = 120 * time.Second

// Config selects and parameterizes a backend.
// Fields are ordered to minimize memory padding.
type Config struct {
	Provider string        // claude, openai or none
	Command  string        // CLI binary for the claude provider
	BaseURL  string        // API base URL for the openai provider
	APIKey   string        // Bearer token for the openai provider
	Model    string        // Model name for the openai provider
	Timeout  time.Duration // Per-attempt timeout (0 = DefaultTimeout)
}

// New builds the configured backend. An unknown or "none" provider yields a
// backend that always returns empty results.
func New(cfg Config, logger domain.Logger) domain.Oracle {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	switch cfg.Provider {
	case ProviderClaude, "":
		return NewClaudeOracle(cfg.Command, timeout, logger)
	case ProviderOpenAI:
		return NewOpenAIOracle(cfg.BaseURL, cfg.APIKey, cfg.Model, timeout, logger)
	default:
		if cfg.Provider != ProviderNone {
			logger.Warn("", "oracle", "unknown provider "+cfg.Provider+", generation disabled")
		}
		return Disabled{}
	}
}

// Disabled is the backend used when generation is turned off.
type Disabled struct{}

// GenerateDocument always returns nil.
func (Disabled) GenerateDocument(_ context.Context, _ string) domain.Document { return nil }

// GenerateText always returns "".
func (Disabled) GenerateText(_ context.Context, _ string) string { return "" }

var _ domain.Oracle = Disabled{}

// stripCodeFences removes a surrounding Markdown code fence, with or
// without a language tag, from a model reply.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseDocument extracts the first JSON object from a model reply. Prose
// around the object is tolerated; anything without a decodable object is
// rejected.
func parseDocument(reply string) (domain.Document, bool) {
	reply = stripCodeFences(reply)
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	var doc domain.Document
	if err := json.Unmarshal([]byte(reply[start:end+1]), &doc); err != nil {
		return nil, false
	}
	return doc, true
}
