package model

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is stamped on every record at creation. There are no
// migrations beyond this single version marker.
const SchemaVersion = 1

// Milestone is a progress checkpoint on a deadline. It serializes as a
// two-element JSON array [percent, label] in both the flat file and the
// SQLite blob columns.
type Milestone struct {
	Percent int
	Label   string
}

// MarshalJSON encodes the milestone as [percent, label].
func (m Milestone) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{m.Percent, m.Label})
}

// UnmarshalJSON decodes a [percent, label] pair.
func (m *Milestone) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("milestone must be a [percent, label] pair: %w", err)
	}
	if err := json.Unmarshal(pair[0], &m.Percent); err != nil {
		return fmt.Errorf("milestone percent: %w", err)
	}
	if err := json.Unmarshal(pair[1], &m.Label); err != nil {
		return fmt.Errorf("milestone label: %w", err)
	}
	return nil
}

// HomeworkRecord is the flat, storage-facing representation of a deadline
// item. UID is assigned once at creation and never reassigned; UpdatedAt is
// refreshed on every successful mutation, including soft delete.
type HomeworkRecord struct {
	UID           string      `json:"uid"`
	Name          string      `json:"name"`
	DueText       string      `json:"due_text"` // "YYYY-MM-DD HH:MM"
	Difficulty    int         `json:"difficulty"`
	Progress      int         `json:"progress"`
	Tags          []string    `json:"tags"`
	Milestones    []Milestone `json:"milestones"`
	Deleted       bool        `json:"deleted"`
	CreatedAt     int64       `json:"created_at"`
	UpdatedAt     int64       `json:"updated_at"`
	SchemaVersion int         `json:"schema_version"`
}

// NewHomework is the creation payload. The backend assigns uid, timestamps,
// the deleted flag, and the schema version.
type NewHomework struct {
	Name       string      `json:"name"`
	DueText    string      `json:"due_text"`
	Difficulty int         `json:"difficulty"`
	Progress   int         `json:"progress"`
	Tags       []string    `json:"tags"`
	Milestones []Milestone `json:"milestones"`
}

// Patch is a sparse update descriptor. Nil fields are left untouched;
// applying a patch always refreshes UpdatedAt even when nothing changed.
type Patch struct {
	Name       *string      `json:"name,omitempty"`
	DueText    *string      `json:"due_text,omitempty"`
	Difficulty *int         `json:"difficulty,omitempty"`
	Progress   *int         `json:"progress,omitempty"`
	Tags       *[]string    `json:"tags,omitempty"`
	Milestones *[]Milestone `json:"milestones,omitempty"`
	Deleted    *bool        `json:"deleted,omitempty"`
}

// ApplyPatch merges the present fields of p into the record and stamps
// UpdatedAt with now.
func (r *HomeworkRecord) ApplyPatch(p Patch, now int64) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.DueText != nil {
		r.DueText = *p.DueText
	}
	if p.Difficulty != nil {
		r.Difficulty = *p.Difficulty
	}
	if p.Progress != nil {
		r.Progress = *p.Progress
	}
	if p.Tags != nil {
		r.Tags = *p.Tags
	}
	if p.Milestones != nil {
		r.Milestones = *p.Milestones
	}
	if p.Deleted != nil {
		r.Deleted = *p.Deleted
	}
	r.UpdatedAt = now
}

// ToDeadline converts the record into the in-memory aggregate, parsing the
// due text. Urgency is left at zero; callers recompute it.
func (r *HomeworkRecord) ToDeadline() (*Deadline, error) {
	due, err := ParseDatetime(r.DueText)
	if err != nil {
		return nil, err
	}
	return &Deadline{
		ID:         r.UID,
		Name:       r.Name,
		DueDate:    due,
		Difficulty: r.Difficulty,
		Progress:   r.Progress,
		Milestones: r.Milestones,
		Tags:       r.Tags,
	}, nil
}

// ToNewHomework builds a creation payload from the aggregate.
func (d *Deadline) ToNewHomework() NewHomework {
	return NewHomework{
		Name:       d.Name,
		DueText:    d.DueDate.String(),
		Difficulty: d.Difficulty,
		Progress:   d.Progress,
		Tags:       d.Tags,
		Milestones: d.Milestones,
	}
}
