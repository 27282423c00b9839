package oracle

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// ClaudeOracle runs the claude CLI in print mode for each request.
// Fields are ordered to minimize memory padding.
type ClaudeOracle struct {
	logger  domain.Logger
	command string
	timeout time.Duration
}

// NewClaudeOracle creates a ClaudeOracle. An empty command defaults to
// "claude" on PATH.
func NewClaudeOracle(command string, timeout time.Duration, logger domain.Logger) *ClaudeOracle {
	if command == "" {
		command = "claude"
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &ClaudeOracle{command: command, timeout: timeout, logger: logger}
}

var _ domain.Oracle = (*ClaudeOracle)(nil)

// GenerateDocument asks the CLI for a JSON document. Any failure, from a
// missing binary to a garbled reply, returns nil.
func (o *ClaudeOracle) GenerateDocument(ctx context.Context, prompt string) domain.Document {
	reply, ok := o.run(ctx, prompt)
	if !ok {
		return nil
	}
	doc, ok := parseDocument(reply)
	if !ok {
		o.logger.Warn("", "oracle", "claude reply was not a JSON object")
		return nil
	}
	return doc
}

// GenerateText asks the CLI for a plain completion. Empty string on any
// failure.
func (o *ClaudeOracle) GenerateText(ctx context.Context, prompt string) string {
	reply, ok := o.run(ctx, prompt)
	if !ok {
		return ""
	}
	return stripCodeFences(reply)
}

func (o *ClaudeOracle) run(ctx context.Context, prompt string) (string, bool) {
	if _, err := exec.LookPath(o.command); err != nil {
		o.logger.Warn("", "oracle", fmt.Sprintf("%s not found on PATH, generation disabled", o.command))
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, o.command, "--print", "-p", prompt)
	out, err := cmd.CombinedOutput()
	if err != nil {
		o.logger.Warn("", "oracle", fmt.Sprintf("claude: %s: %v", strings.TrimSpace(string(out)), err))
		return "", false
	}
	reply := strings.TrimSpace(string(out))
	if reply == "" {
		o.logger.Warn("", "oracle", "claude returned empty response")
		return "", false
	}
	return reply, true
}
