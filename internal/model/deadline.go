package model

// urgencyEpsilon floors the hours-until-due divisor. As a deadline passes,
// urgency spikes to a large positive value instead of flipping sign.
const urgencyEpsilon = 0.0001

// Deadline is the in-memory aggregate the presentation layer works with.
// ID is empty for an unsaved draft. Urgency is derived and never persisted;
// consumers recompute it whenever progress, difficulty, or the due date
// changes.
type Deadline struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	DueDate    Datetime    `json:"due_date"`
	Difficulty int         `json:"difficulty"` // 1-10
	Progress   int         `json:"progress"`   // 0-100
	Milestones []Milestone `json:"milestones"`
	Urgency    float64     `json:"urgency"` // derived, see UpdateUrgency
	Tags       []string    `json:"tags"`
}

// NewDeadline creates a deadline with zero progress and no milestones or tags.
func NewDeadline(id, name string, due Datetime, difficulty int) *Deadline {
	return &Deadline{
		ID:         id,
		Name:       name,
		DueDate:    due,
		Difficulty: difficulty,
		Progress:   0,
		Milestones: []Milestone{},
		Urgency:    0,
		Tags:       []string{},
	}
}

// HoursUntilDue returns the signed hours between the due date and now.
// Negative means overdue.
func (d *Deadline) HoursUntilDue() float64 {
	return d.DueDate.Diff(Now()).ToHours()
}

// UpdateUrgency recomputes and stores the urgency score:
//
//	difficulty * (100 - progress) / max(hours_until_due, epsilon)
func (d *Deadline) UpdateUrgency() float64 {
	return d.updateUrgencyFromHours(d.HoursUntilDue())
}

// UrgencyAt recomputes urgency as of the given reference moment.
func (d *Deadline) UrgencyAt(now Datetime) float64 {
	return d.updateUrgencyFromHours(d.DueDate.Diff(now).ToHours())
}

func (d *Deadline) updateUrgencyFromHours(hoursLeft float64) float64 {
	if hoursLeft < urgencyEpsilon {
		hoursLeft = urgencyEpsilon
	}
	d.Urgency = float64(d.Difficulty) * (100 - float64(d.Progress)) / hoursLeft
	return d.Urgency
}
