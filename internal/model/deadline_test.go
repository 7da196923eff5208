package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeadlineDefaults(t *testing.T) {
	due := NewDatetime(2025, 1, 10, 9, 0)
	d := NewDeadline("", "Algebra problem set", due, 6)

	assert.Empty(t, d.ID)
	assert.Equal(t, 0, d.Progress)
	assert.Equal(t, 0.0, d.Urgency)
	assert.Empty(t, d.Milestones)
	assert.Empty(t, d.Tags)
}

func TestUrgencyFormula(t *testing.T) {
	// difficulty=8, progress=80, 10 hours until due => 8*(100-80)/10 = 16.0
	now := NewDatetime(2025, 1, 10, 9, 0)
	due := NewDatetime(2025, 1, 10, 19, 0)

	d := NewDeadline("x", "exam prep", due, 8)
	d.Progress = 80

	assert.InDelta(t, 16.0, d.UrgencyAt(now), 1e-9)
	assert.InDelta(t, 16.0, d.Urgency, 1e-9)
}

func TestUrgencySpikesWhenOverdue(t *testing.T) {
	// Past the due moment the epsilon floor keeps urgency a large positive
	// number instead of flipping sign.
	now := NewDatetime(2025, 1, 10, 19, 0)
	due := NewDatetime(2025, 1, 10, 9, 0)

	d := NewDeadline("x", "late essay", due, 8)
	d.Progress = 80

	urgency := d.UrgencyAt(now)
	assert.Greater(t, urgency, 1e6)
}

func TestUrgencyZeroProgressHigherThanDone(t *testing.T) {
	now := NewDatetime(2025, 1, 10, 9, 0)
	due := NewDatetime(2025, 1, 10, 19, 0)

	fresh := NewDeadline("a", "untouched", due, 5)
	done := NewDeadline("b", "finished", due, 5)
	done.Progress = 100

	assert.Greater(t, fresh.UrgencyAt(now), done.UrgencyAt(now))
	assert.Equal(t, 0.0, done.UrgencyAt(now))
}
