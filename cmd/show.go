package cmd

import (
	"github.com/spf13/cobra"

	"github.com/duetrack/duetrack/internal/errors"
	"github.com/duetrack/duetrack/internal/model"
	"github.com/duetrack/duetrack/internal/output"
	"github.com/duetrack/duetrack/internal/storage"
)

// showCmd shows one deadline by uid.
var showCmd = &cobra.Command{
	Use:     "show UID",
	Aliases: []string{"get"},
	Short:   "Show a deadline by uid",
	Long: `Show a single deadline, soft-deleted or not. Unlike list, show still
returns a deadline after it has been removed with rm.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	uid := args[0]

	rec, err := ctx.Repo.Get(uid)
	if storage.IsNotFound(err) {
		return errors.NewUserErrorWithField("uid", uid,
			"No such deadline", "Run 'duetrack list' to see known uids")
	}
	if err != nil {
		return errors.NewSystemErrorWithOp("get", "could not load deadline", err)
	}

	now := model.Now()
	if ctx.Formatter.Format == output.FormatJSON {
		return ctx.Formatter.JSON(output.NewDeadlineOutput(rec, now))
	}

	ctx.CLI.Title(rec.Name)
	ctx.Formatter.Printf("uid:        %s\n", rec.UID)
	ctx.Formatter.Printf("due:        %s\n", rec.DueText)
	ctx.Formatter.Printf("difficulty: %d\n", rec.Difficulty)
	ctx.Formatter.Printf("progress:   %d%%\n", rec.Progress)
	if dl, err := rec.ToDeadline(); err == nil {
		ctx.Formatter.Printf("urgency:    %.2f\n", dl.UrgencyAt(now))
		ctx.Formatter.Printf("time left:  %s\n", dl.DueDate.Diff(now).String())
	}
	if len(rec.Tags) > 0 {
		ctx.Formatter.Printf("tags:       %v\n", rec.Tags)
	}
	for _, m := range rec.Milestones {
		ctx.Formatter.Printf("milestone:  %3d%% %s\n", m.Percent, m.Label)
	}
	if rec.Deleted {
		ctx.CLI.Muted("(deleted)")
	}
	return nil
}
