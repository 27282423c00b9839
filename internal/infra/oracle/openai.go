package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// DefaultOpenAIModel is used when the configuration does not name one.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIOracle talks to an OpenAI-compatible chat completions endpoint.
// Fields are ordered to minimize memory padding.
type OpenAIOracle struct {
	client  *http.Client
	logger  domain.Logger
	baseURL string
	apiKey  string
	model   string
}

// NewOpenAIOracle creates an OpenAIOracle. baseURL is the API root, e.g.
// "https://api.openai.com/v1"; a trailing slash is tolerated.
func NewOpenAIOracle(baseURL, apiKey, model string, timeout time.Duration, logger domain.Logger) *OpenAIOracle {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &OpenAIOracle{
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

var _ domain.Oracle = (*OpenAIOracle)(nil)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateDocument asks the endpoint for a JSON document. Any failure
// returns nil.
func (o *OpenAIOracle) GenerateDocument(ctx context.Context, prompt string) domain.Document {
	reply, ok := o.complete(ctx, prompt)
	if !ok {
		return nil
	}
	doc, ok := parseDocument(reply)
	if !ok {
		o.logger.Warn("", "oracle", "completion was not a JSON object")
		return nil
	}
	return doc
}

// GenerateText asks the endpoint for a plain completion. Empty string on
// any failure.
func (o *OpenAIOracle) GenerateText(ctx context.Context, prompt string) string {
	reply, ok := o.complete(ctx, prompt)
	if !ok {
		return ""
	}
	return stripCodeFences(reply)
}

func (o *OpenAIOracle) complete(ctx context.Context, prompt string) (string, bool) {
	body, err := json.Marshal(chatRequest{
		Model:    o.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		o.logger.Warn("", "oracle", fmt.Sprintf("marshal request: %v", err))
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		o.logger.Warn("", "oracle", fmt.Sprintf("build request: %v", err))
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		o.logger.Warn("", "oracle", fmt.Sprintf("completion request: %v", err))
		return "", false
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		o.logger.Warn("", "oracle", fmt.Sprintf("read response: %v", err))
		return "", false
	}
	if resp.StatusCode != http.StatusOK {
		o.logger.Warn("", "oracle", fmt.Sprintf("completion status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload))))
		return "", false
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		o.logger.Warn("", "oracle", fmt.Sprintf("parse response: %v", err))
		return "", false
	}
	if len(parsed.Choices) == 0 {
		o.logger.Warn("", "oracle", "completion had no choices")
		return "", false
	}
	reply := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if reply == "" {
		o.logger.Warn("", "oracle", "completion was empty")
		return "", false
	}
	return reply, true
}
