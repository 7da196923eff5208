package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetrack/duetrack/internal/model"
)

func TestEditPatchReplacesMilestones(t *testing.T) {
	require.NoError(t, editCmd.ParseFlags([]string{
		"--milestone", "50:outline",
		"--milestone", "100:submit",
	}))

	p, err := buildPatch(editCmd)
	require.NoError(t, err)

	require.NotNil(t, p.Milestones)
	assert.Equal(t, []model.Milestone{
		{Percent: 50, Label: "outline"},
		{Percent: 100, Label: "submit"},
	}, *p.Milestones)

	// Untouched fields stay absent from the patch.
	assert.Nil(t, p.Name)
	assert.Nil(t, p.DueText)
	assert.Nil(t, p.Deleted)
}

func TestParseMilestoneFlag(t *testing.T) {
	m, err := parseMilestoneFlag("50:outline")
	require.NoError(t, err)
	assert.Equal(t, model.Milestone{Percent: 50, Label: "outline"}, m)

	// Labels may contain colons; only the first one splits.
	m, err = parseMilestoneFlag("75:review: part two")
	require.NoError(t, err)
	assert.Equal(t, model.Milestone{Percent: 75, Label: "review: part two"}, m)

	_, err = parseMilestoneFlag("no-separator")
	assert.Error(t, err)
	_, err = parseMilestoneFlag("fifty:outline")
	assert.Error(t, err)
}
