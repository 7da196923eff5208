package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duetrack/duetrack/internal/errors"
	"github.com/duetrack/duetrack/internal/model"
	"github.com/duetrack/duetrack/internal/output"
	"github.com/duetrack/duetrack/internal/parser"
	"github.com/duetrack/duetrack/internal/storage"
	"github.com/duetrack/duetrack/internal/validate"
)

// Edit flags.
var (
	editFlagName       string
	editFlagDue        string
	editFlagDifficulty int
	editFlagProgress   int
	editFlagTags       []string
	editFlagMilestones []string
	editFlagRestore    bool
)

// editCmd patches fields of an existing deadline.
var editCmd = &cobra.Command{
	Use:   "edit UID",
	Short: "Edit fields of a deadline",
	Long: `Edit a deadline. Only the fields given as flags change; everything
else is left untouched. Editing always bumps the updated timestamp.

Examples:
  duetrack edit 01HV... --progress 40
  duetrack edit 01HV... --due "+1w" --difficulty 8
  duetrack edit 01HV... --milestone 50:outline --milestone 100:submit
  duetrack edit 01HV... --restore`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editFlagName, "name", "n", "", "New name")
	editCmd.Flags().StringVar(&editFlagDue, "due", "", "New due date")
	editCmd.Flags().IntVarP(&editFlagDifficulty, "difficulty", "d", 0, "New difficulty (1-10)")
	editCmd.Flags().IntVarP(&editFlagProgress, "progress", "p", -1, "New progress (0-100)")
	editCmd.Flags().StringSliceVarP(&editFlagTags, "tags", "t", nil, "Replace tags")
	editCmd.Flags().StringArrayVarP(&editFlagMilestones, "milestone", "m", nil, "Replace milestones, each PERCENT:LABEL (repeatable)")
	editCmd.Flags().BoolVar(&editFlagRestore, "restore", false, "Restore a soft-deleted deadline")
	rootCmd.AddCommand(editCmd)
}

// buildPatch assembles a sparse patch from the flags that were set.
func buildPatch(cmd *cobra.Command) (model.Patch, error) {
	var p model.Patch

	if cmd.Flags().Changed("name") {
		if err := validate.Name(editFlagName); err != nil {
			return p, err
		}
		p.Name = &editFlagName
	}
	if cmd.Flags().Changed("due") {
		due, err := parser.ParseDue(editFlagDue)
		if err != nil {
			return p, errors.NewUserErrorWithField("due", editFlagDue,
				"Invalid due date", "Use YYYY-MM-DD HH:MM, a relative offset like +2d, or natural language")
		}
		dueText := due.String()
		p.DueText = &dueText
	}
	if cmd.Flags().Changed("difficulty") {
		if err := validate.Difficulty(editFlagDifficulty); err != nil {
			return p, err
		}
		p.Difficulty = &editFlagDifficulty
	}
	if cmd.Flags().Changed("progress") {
		if err := validate.Progress(editFlagProgress); err != nil {
			return p, err
		}
		p.Progress = &editFlagProgress
	}
	if cmd.Flags().Changed("tags") {
		if err := validate.Tags(editFlagTags); err != nil {
			return p, err
		}
		p.Tags = &editFlagTags
	}
	if cmd.Flags().Changed("milestone") {
		milestones := make([]model.Milestone, 0, len(editFlagMilestones))
		for _, raw := range editFlagMilestones {
			m, err := parseMilestoneFlag(raw)
			if err != nil {
				return p, err
			}
			milestones = append(milestones, m)
		}
		if err := validate.Milestones(milestones); err != nil {
			return p, err
		}
		p.Milestones = &milestones
	}
	if editFlagRestore {
		restored := false
		p.Deleted = &restored
	}
	return p, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	uid := args[0]

	patch, err := buildPatch(cmd)
	if err != nil {
		return err
	}

	rec, err := ctx.Repo.Patch(uid, patch)
	if storage.IsNotFound(err) {
		return errors.NewUserErrorWithField("uid", uid,
			"No such deadline", "Run 'duetrack list' to see known uids")
	}
	if err != nil {
		return errors.NewSystemErrorWithOp("patch", "could not update deadline", err)
	}

	if ctx.Formatter.Format == output.FormatJSON {
		return ctx.Formatter.JSON(output.NewDeadlineOutput(rec, model.Now()))
	}
	ctx.CLI.Success(fmt.Sprintf("Updated %q", rec.Name))
	return nil
}
