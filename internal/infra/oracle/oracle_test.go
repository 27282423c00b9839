package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeplan/scopeplan/internal/domain"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestParseDocument(t *testing.T) {
	doc, ok := parseDocument("Here you go:\n```json\n{\"subtasks\": []}\n```\nHope that helps!")
	require.True(t, ok)
	assert.Contains(t, doc, "subtasks")

	_, ok = parseDocument("no json here")
	assert.False(t, ok)

	_, ok = parseDocument("{not valid json}")
	assert.False(t, ok)
}

func TestNewSelectsProvider(t *testing.T) {
	assert.IsType(t, &ClaudeOracle{}, New(Config{Provider: ProviderClaude}, nil))
	assert.IsType(t, &ClaudeOracle{}, New(Config{}, nil))
	assert.IsType(t, &OpenAIOracle{}, New(Config{Provider: ProviderOpenAI}, nil))
	assert.IsType(t, Disabled{}, New(Config{Provider: ProviderNone}, nil))
	assert.IsType(t, Disabled{}, New(Config{Provider: "mystery"}, nil))
}

func TestClaudeOracleMissingBinary(t *testing.T) {
	o := NewClaudeOracle("definitely-not-a-real-binary-name", time.Second, nil)
	assert.Nil(t, o.GenerateDocument(context.Background(), "prompt"))
	assert.Empty(t, o.GenerateText(context.Background(), "prompt"))
}

func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)

		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
		})
	}))
}

func TestOpenAIOracleGenerateDocument(t *testing.T) {
	srv := chatServer(t, "```json\n{\"subtasks\": [{\"title\": \"x\"}]}\n```", http.StatusOK)
	defer srv.Close()

	o := NewOpenAIOracle(srv.URL+"/v1", "test-key", "test-model", time.Second, nil)
	doc := o.GenerateDocument(context.Background(), "break it down")
	require.NotNil(t, doc)
	assert.Len(t, domain.ExtractCandidates(doc), 1)
}

func TestOpenAIOracleGenerateText(t *testing.T) {
	srv := chatServer(t, "A concise title\n", http.StatusOK)
	defer srv.Close()

	o := NewOpenAIOracle(srv.URL+"/v1", "test-key", "", time.Second, nil)
	assert.Equal(t, "A concise title", o.GenerateText(context.Background(), "title please"))
}

func TestOpenAIOracleDegradesOnErrorStatus(t *testing.T) {
	srv := chatServer(t, "irrelevant", http.StatusInternalServerError)
	defer srv.Close()

	o := NewOpenAIOracle(srv.URL+"/v1", "test-key", "", time.Second, nil)
	assert.Nil(t, o.GenerateDocument(context.Background(), "prompt"))
}

func TestOpenAIOracleDegradesOnUnreachableServer(t *testing.T) {
	o := NewOpenAIOracle("http://127.0.0.1:1", "test-key", "", 200*time.Millisecond, nil)
	assert.Nil(t, o.GenerateDocument(context.Background(), "prompt"))
	assert.Empty(t, o.GenerateText(context.Background(), "prompt"))
}
