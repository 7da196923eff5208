package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/duetrack/duetrack/internal/errors"
	"github.com/duetrack/duetrack/internal/model"
	"github.com/duetrack/duetrack/internal/output"
)

// List flags.
var (
	listFlagByUrgency bool
	listFlagTag       string
)

// listCmd lists non-deleted deadlines.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List deadlines sorted by due date",
	Long: `List all deadlines that have not been deleted, sorted ascending by
due date. Urgency is recomputed at render time and never read from storage.

Examples:
  duetrack list
  duetrack list --by-urgency
  duetrack list --tag school`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listFlagByUrgency, "by-urgency", "u", false, "Sort by urgency instead of due date")
	listCmd.Flags().StringVarP(&listFlagTag, "tag", "t", "", "Only show deadlines carrying this tag")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	records, err := ctx.Repo.List()
	if err != nil {
		return errors.NewSystemErrorWithOp("list", "could not list deadlines", err)
	}

	if listFlagTag != "" {
		filtered := records[:0]
		for _, rec := range records {
			for _, tag := range rec.Tags {
				if tag == listFlagTag {
					filtered = append(filtered, rec)
					break
				}
			}
		}
		records = filtered
	}

	if listFlagByUrgency {
		now := model.Now()
		urgency := make(map[string]float64, len(records))
		for i := range records {
			if dl, err := records[i].ToDeadline(); err == nil {
				urgency[records[i].UID] = dl.UrgencyAt(now)
			}
		}
		sort.SliceStable(records, func(i, j int) bool {
			return urgency[records[i].UID] > urgency[records[j].UID]
		})
	}

	if ctx.Formatter.Format == output.FormatJSON {
		return ctx.Formatter.JSON(output.NewDeadlineListResponse(records))
	}
	ctx.CLI.DeadlineList(records)
	return nil
}
