// Package validate provides input validation for deadline fields.
package validate

import (
	"fmt"
	"unicode/utf8"

	"github.com/duetrack/duetrack/internal/errors"
	"github.com/duetrack/duetrack/internal/model"
)

const (
	// MaxNameLength is the maximum length for a deadline name.
	MaxNameLength = 128
	// MaxTagLength is the maximum length for a single tag.
	MaxTagLength = 32
	// MaxMilestoneLabelLength is the maximum length for a milestone label.
	MaxMilestoneLabelLength = 64
	// MinDifficulty and MaxDifficulty bound the difficulty scale.
	MinDifficulty = 1
	MaxDifficulty = 10
)

// Name validates a deadline name.
func Name(name string) error {
	if name == "" {
		return errors.NewUserError("Name cannot be empty", "Provide a deadline name")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Name too long",
			fmt.Sprintf("Names must be %d characters or fewer", MaxNameLength))
	}
	return nil
}

// Difficulty validates a difficulty value (1-10).
func Difficulty(d int) error {
	if d < MinDifficulty || d > MaxDifficulty {
		return errors.NewUserErrorWithField("difficulty", fmt.Sprintf("%d", d),
			"Difficulty out of range",
			fmt.Sprintf("Difficulty must be between %d and %d", MinDifficulty, MaxDifficulty))
	}
	return nil
}

// Progress validates a progress percentage (0-100).
func Progress(p int) error {
	if p < 0 || p > 100 {
		return errors.NewUserErrorWithField("progress", fmt.Sprintf("%d", p),
			"Progress out of range",
			"Progress must be between 0 and 100")
	}
	return nil
}

// Tag validates a single tag.
func Tag(tag string) error {
	if tag == "" {
		return errors.NewUserError("Tag cannot be empty", "Remove the empty tag")
	}
	if utf8.RuneCountInString(tag) > MaxTagLength {
		return errors.NewUserErrorWithField("tag", tag,
			"Tag too long",
			fmt.Sprintf("Tags must be %d characters or fewer", MaxTagLength))
	}
	return nil
}

// Tags validates a tag list.
func Tags(tags []string) error {
	for _, tag := range tags {
		if err := Tag(tag); err != nil {
			return err
		}
	}
	return nil
}

// Milestone validates a single milestone.
func Milestone(m model.Milestone) error {
	if m.Percent < 0 || m.Percent > 100 {
		return errors.NewUserErrorWithField("milestone", fmt.Sprintf("%d", m.Percent),
			"Milestone percentage out of range",
			"Milestone percentages must be between 0 and 100")
	}
	if utf8.RuneCountInString(m.Label) > MaxMilestoneLabelLength {
		return errors.NewUserErrorWithField("milestone", m.Label,
			"Milestone label too long",
			fmt.Sprintf("Labels must be %d characters or fewer", MaxMilestoneLabelLength))
	}
	return nil
}

// Milestones validates a milestone list.
func Milestones(ms []model.Milestone) error {
	for _, m := range ms {
		if err := Milestone(m); err != nil {
			return err
		}
	}
	return nil
}

// NewHomework validates a full creation payload, due text included.
func NewHomework(payload model.NewHomework) error {
	if err := Name(payload.Name); err != nil {
		return err
	}
	if _, err := model.ParseDatetime(payload.DueText); err != nil {
		return errors.NewUserErrorWithField("due", payload.DueText,
			"Invalid due date",
			"Use the format YYYY-MM-DD HH:MM, e.g. 2025-01-05 09:00")
	}
	if err := Difficulty(payload.Difficulty); err != nil {
		return err
	}
	if err := Progress(payload.Progress); err != nil {
		return err
	}
	if err := Tags(payload.Tags); err != nil {
		return err
	}
	return Milestones(payload.Milestones)
}
