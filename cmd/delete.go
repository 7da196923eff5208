package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duetrack/duetrack/internal/errors"
	"github.com/duetrack/duetrack/internal/storage"
)

// deleteCmd soft-deletes a deadline.
var deleteCmd = &cobra.Command{
	Use:     "rm UID",
	Aliases: []string{"delete", "remove"},
	Short:   "Remove a deadline",
	Long: `Remove a deadline from listings. The removal is soft: the record
stays in storage and can still be fetched with show or restored with
'edit --restore'.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	uid := args[0]

	err := ctx.Repo.Delete(uid)
	if storage.IsNotFound(err) {
		return errors.NewUserErrorWithField("uid", uid,
			"No such deadline", "Run 'duetrack list' to see known uids")
	}
	if err != nil {
		return errors.NewSystemErrorWithOp("delete", "could not remove deadline", err)
	}

	ctx.CLI.Success(fmt.Sprintf("Removed %s", uid))
	return nil
}
