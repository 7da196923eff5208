package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duetrack/duetrack/internal/errors"
	"github.com/duetrack/duetrack/internal/model"
	"github.com/duetrack/duetrack/internal/output"
	"github.com/duetrack/duetrack/internal/parser"
	"github.com/duetrack/duetrack/internal/validate"
)

// Add flags.
var (
	addFlagDifficulty int
	addFlagProgress   int
	addFlagTags       []string
	addFlagMilestones []string
)

// addCmd creates a new deadline.
var addCmd = &cobra.Command{
	Use:   "add NAME DUE",
	Short: "Add a deadline",
	Long: `Add a deadline with a name and a due date.

The due date accepts the canonical "YYYY-MM-DD HH:MM" form, relative
offsets like "+2d", or natural language like "friday 5pm".

Examples:
  duetrack add "Algebra problem set" "2025-01-05 09:00" --difficulty 6
  duetrack add "Essay draft" "+2d" --tags school,writing --milestone 50:outline`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().IntVarP(&addFlagDifficulty, "difficulty", "d", 5, "Difficulty from 1 to 10")
	addCmd.Flags().IntVarP(&addFlagProgress, "progress", "p", 0, "Initial progress from 0 to 100")
	addCmd.Flags().StringSliceVarP(&addFlagTags, "tags", "t", nil, "Comma-separated tags")
	addCmd.Flags().StringArrayVarP(&addFlagMilestones, "milestone", "m", nil, "Milestone as PERCENT:LABEL (repeatable)")
	rootCmd.AddCommand(addCmd)
}

// parseMilestoneFlag parses a "PERCENT:LABEL" milestone flag value.
func parseMilestoneFlag(s string) (model.Milestone, error) {
	percentStr, label, found := strings.Cut(s, ":")
	if !found {
		return model.Milestone{}, errors.NewUserErrorWithField("milestone", s,
			"Invalid milestone", "Use PERCENT:LABEL, e.g. 50:outline")
	}
	percent, err := strconv.Atoi(percentStr)
	if err != nil {
		return model.Milestone{}, errors.NewUserErrorWithField("milestone", s,
			"Invalid milestone percentage", "Use PERCENT:LABEL, e.g. 50:outline")
	}
	return model.Milestone{Percent: percent, Label: label}, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	due, err := parser.ParseDue(args[1])
	if err != nil {
		return errors.NewUserErrorWithField("due", args[1],
			"Invalid due date", "Use YYYY-MM-DD HH:MM, a relative offset like +2d, or natural language")
	}

	milestones := make([]model.Milestone, 0, len(addFlagMilestones))
	for _, raw := range addFlagMilestones {
		m, err := parseMilestoneFlag(raw)
		if err != nil {
			return err
		}
		milestones = append(milestones, m)
	}

	payload := model.NewHomework{
		Name:       name,
		DueText:    due.String(),
		Difficulty: addFlagDifficulty,
		Progress:   addFlagProgress,
		Tags:       addFlagTags,
		Milestones: milestones,
	}
	if err := validate.NewHomework(payload); err != nil {
		return err
	}

	rec, err := ctx.Repo.Create(payload)
	if err != nil {
		return errors.NewSystemErrorWithOp("create", "could not save deadline", err)
	}

	if ctx.Formatter.Format == output.FormatJSON {
		return ctx.Formatter.JSON(output.NewDeadlineOutput(rec, model.Now()))
	}
	ctx.CLI.Success(fmt.Sprintf("Added %q due %s (%s)", rec.Name, rec.DueText, rec.UID))
	return nil
}
