package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duetrack/duetrack/internal/errors"
	"github.com/duetrack/duetrack/internal/model"
	"github.com/duetrack/duetrack/internal/output"
	"github.com/duetrack/duetrack/internal/storage"
)

// doneCmd marks a deadline as fully complete.
var doneCmd = &cobra.Command{
	Use:   "done UID",
	Short: "Mark a deadline as 100% complete",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	uid := args[0]

	progress := 100
	rec, err := ctx.Repo.Patch(uid, model.Patch{Progress: &progress})
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
	ctx.CLI.Success(fmt.Sprintf("Completed %q", rec.Name))
	return nil
}
