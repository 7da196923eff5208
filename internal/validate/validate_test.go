package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duetrack/duetrack/internal/errors"
	"github.com/duetrack/duetrack/internal/model"
)

func TestName(t *testing.T) {
	assert.NoError(t, Name("Algebra problem set"))
	assert.Error(t, Name(""))
	assert.Error(t, Name(strings.Repeat("x", MaxNameLength+1)))
	// Length is counted in runes, not bytes.
	assert.NoError(t, Name(strings.Repeat("日", MaxNameLength)))
}

func TestDifficulty(t *testing.T) {
	for d := MinDifficulty; d <= MaxDifficulty; d++ {
		assert.NoError(t, Difficulty(d))
	}
	assert.Error(t, Difficulty(0))
	assert.Error(t, Difficulty(11))
	assert.Error(t, Difficulty(-1))
}

func TestProgress(t *testing.T) {
	assert.NoError(t, Progress(0))
	assert.NoError(t, Progress(50))
	assert.NoError(t, Progress(100))
	assert.Error(t, Progress(-1))
	assert.Error(t, Progress(101))
}

func TestTags(t *testing.T) {
	assert.NoError(t, Tags(nil))
	assert.NoError(t, Tags([]string{"school", "writing"}))
	assert.Error(t, Tags([]string{"school", ""}))
	assert.Error(t, Tags([]string{strings.Repeat("x", MaxTagLength+1)}))
}

func TestMilestones(t *testing.T) {
	assert.NoError(t, Milestones(nil))
	assert.NoError(t, Milestones([]model.Milestone{{Percent: 0, Label: "start"}, {Percent: 100, Label: "done"}}))
	assert.Error(t, Milestones([]model.Milestone{{Percent: 101, Label: "overshoot"}}))
	assert.Error(t, Milestones([]model.Milestone{{Percent: -1, Label: "undershoot"}}))
	assert.Error(t, Milestones([]model.Milestone{{Percent: 50, Label: strings.Repeat("x", MaxMilestoneLabelLength+1)}}))
}

func TestNewHomework(t *testing.T) {
	valid := model.NewHomework{
		Name:       "Essay draft",
		DueText:    "2025-01-10 09:00",
		Difficulty: 6,
		Progress:   20,
	}
	assert.NoError(t, NewHomework(valid))

	t.Run("rejects_bad_due_text", func(t *testing.T) {
		payload := valid
		payload.DueText = "next tuesday"
		err := NewHomework(payload)
		assert.Error(t, err)
		assert.True(t, errors.IsUserError(err))
		assert.NotEmpty(t, errors.GetSuggestion(err))
	})

	t.Run("rejects_negative_time_components", func(t *testing.T) {
		payload := valid
		payload.DueText = "2025-01-05 -1:30"
		err := NewHomework(payload)
		assert.Error(t, err)
		assert.True(t, errors.IsUserError(err))
	})

	t.Run("rejects_bad_difficulty", func(t *testing.T) {
		payload := valid
		payload.Difficulty = 0
		assert.Error(t, NewHomework(payload))
	})

	t.Run("rejects_bad_progress", func(t *testing.T) {
		payload := valid
		payload.Progress = 150
		assert.Error(t, NewHomework(payload))
	})
}
