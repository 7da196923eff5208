package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/duetrack/duetrack/internal/model"
)

// Styles for CLI output.
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleUrgent = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	styleSoon = lipgloss.NewStyle().
			Foreground(colorWarning)
)

// Urgency thresholds for list highlighting.
const (
	urgencyHigh = 10.0
	urgencyMid  = 2.0
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints a de-emphasized message.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// urgencyStyle picks a style for an urgency score.
func (c *CLIFormatter) urgencyStyle(urgency float64) lipgloss.Style {
	switch {
	case urgency >= urgencyHigh:
		return styleUrgent
	case urgency >= urgencyMid:
		return styleSoon
	default:
		return styleMuted
	}
}

// DeadlineLine renders one record as a list line with its recomputed urgency.
func (c *CLIFormatter) DeadlineLine(rec *model.HomeworkRecord, urgency float64) string {
	line := fmt.Sprintf("%-14s  %s  %3d%%  d%-2d  %7.1f  %s",
		rec.UID[:min(14, len(rec.UID))], rec.DueText, rec.Progress, rec.Difficulty, urgency, rec.Name)
	if !c.IsColorEnabled() {
		return line
	}
	return c.urgencyStyle(urgency).Render(line)
}

// DeadlineList renders a full listing with a header.
func (c *CLIFormatter) DeadlineList(records []model.HomeworkRecord) {
	if len(records) == 0 {
		c.Muted("No deadlines.")
		return
	}
	header := fmt.Sprintf("%-14s  %-16s  %4s  %-3s  %7s  %s",
		"UID", "DUE", "PROG", "DIF", "URGENCY", "NAME")
	c.Muted(header)
	now := model.Now()
	for i := range records {
		urgency := 0.0
		if dl, err := records[i].ToDeadline(); err == nil {
			urgency = dl.UrgencyAt(now)
		}
		c.Println(c.DeadlineLine(&records[i], urgency))
	}
}
