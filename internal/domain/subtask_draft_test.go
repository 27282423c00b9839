package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderParseDraftRoundTrip(t *testing.T) {
	d := SubtaskDraft{
		Title:        "Wire up exporter",
		Size:         "straightforward",
		TimeEstimate: "days",
		Team:         "Backend",
		Description:  "Emit the report as markdown.\n\nInclude the summary header.",
	}
	content, err := RenderDraft(d)
	require.NoError(t, err)

	got, err := ParseDraft(content)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestParseDraftMissingFrontmatter(t *testing.T) {
	_, err := ParseDraft("just a description, no frontmatter")
	assert.ErrorIs(t, err, ErrInvalidTask)
}

func TestParseDraftUnclosedFrontmatter(t *testing.T) {
	_, err := ParseDraft("---\ntitle: Something\n")
	assert.ErrorIs(t, err, ErrInvalidTask)
}

func TestParseDraftEmptyTitle(t *testing.T) {
	_, err := ParseDraft("---\nsize: trivial\n---\nbody\n")
	assert.ErrorIs(t, err, ErrInvalidTask)
}

func TestParseDraftTrimsTitleAndBody(t *testing.T) {
	got, err := ParseDraft("---\ntitle: '  Padded  '\n---\n\nbody line\n\n")
	require.NoError(t, err)
	assert.Equal(t, "Padded", got.Title)
	assert.Equal(t, "body line", got.Description)
}
