package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SubtaskDraft is the editable representation of a candidate subtask,
// rendered as YAML frontmatter plus a free-form description body and opened
// in the user's editor during interactive review.
type SubtaskDraft struct {
	Title        string `yaml:"title"`
	Size         string `yaml:"size"`
	TimeEstimate string `yaml:"time_estimate"`
	Team         string `yaml:"team,omitempty"`
	Description  string `yaml:"-"`
}

// RenderDraft serializes a draft to the frontmatter format:
//
//	---
//	title: Implement parser
//	size: straightforward
//	time_estimate: days
//	team: Backend
//	---
//	Description text here.
func RenderDraft(d SubtaskDraft) (string, error) {
	front, err := yaml.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("render draft: %w", err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n")
	b.WriteString(d.Description)
	if d.Description != "" && !strings.HasSuffix(d.Description, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// ParseDraft parses edited draft content back into a SubtaskDraft. The
// frontmatter block is required; the body after the closing "---" becomes
// the description.
func ParseDraft(content string) (SubtaskDraft, error) {
	trimmed := strings.TrimLeft(content, "\n \t")
	if !strings.HasPrefix(trimmed, "---\n") {
		return SubtaskDraft{}, fmt.Errorf("%w: draft missing frontmatter", ErrInvalidTask)
	}
	rest := trimmed[len("---\n"):]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return SubtaskDraft{}, fmt.Errorf("%w: draft frontmatter not closed", ErrInvalidTask)
	}
	front := rest[:idx+1]
	body := rest[idx+len("\n---"):]
	body = strings.TrimLeft(body, "\n")

	var d SubtaskDraft
	if err := yaml.Unmarshal([]byte(front), &d); err != nil {
		return SubtaskDraft{}, fmt.Errorf("%w: draft frontmatter: %v", ErrInvalidTask, err)
	}
	if strings.TrimSpace(d.Title) == "" {
		return SubtaskDraft{}, fmt.Errorf("%w: %s", ErrInvalidTask, ErrEmptyTitle)
	}
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimRight(body, "\n")
	return d, nil
}
