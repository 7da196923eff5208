package output

import (
	"github.com/duetrack/duetrack/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// DeadlineOutput represents a record in JSON output, with the derived
// urgency attached. Urgency is computed at render time and is not part of
// the stored record.
type DeadlineOutput struct {
	UID        string            `json:"uid"`
	Name       string            `json:"name"`
	DueText    string            `json:"due_text"`
	Difficulty int               `json:"difficulty"`
	Progress   int               `json:"progress"`
	Tags       []string          `json:"tags"`
	Milestones []model.Milestone `json:"milestones"`
	Deleted    bool              `json:"deleted,omitempty"`
	CreatedAt  int64             `json:"created_at"`
	UpdatedAt  int64             `json:"updated_at"`
	Urgency    float64           `json:"urgency"`
}

// NewDeadlineOutput builds the JSON view of a record, recomputing urgency
// against the given reference moment.
func NewDeadlineOutput(rec *model.HomeworkRecord, now model.Datetime) *DeadlineOutput {
	out := &DeadlineOutput{
		UID:        rec.UID,
		Name:       rec.Name,
		DueText:    rec.DueText,
		Difficulty: rec.Difficulty,
		Progress:   rec.Progress,
		Tags:       rec.Tags,
		Milestones: rec.Milestones,
		Deleted:    rec.Deleted,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
	if dl, err := rec.ToDeadline(); err == nil {
		out.Urgency = dl.UrgencyAt(now)
	}
	return out
}

// DeadlineListResponse represents a listing in JSON output.
type DeadlineListResponse struct {
	Deadlines []*DeadlineOutput `json:"deadlines"`
	Count     int               `json:"count"`
}

// NewDeadlineListResponse builds the JSON view of a listing.
func NewDeadlineListResponse(records []model.HomeworkRecord) *DeadlineListResponse {
	now := model.Now()
	resp := &DeadlineListResponse{Deadlines: make([]*DeadlineOutput, 0, len(records))}
	for i := range records {
		resp.Deadlines = append(resp.Deadlines, NewDeadlineOutput(&records[i], now))
	}
	resp.Count = len(resp.Deadlines)
	return resp
}
