package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/tudu-dev/tudu"
)

var (
	listPending bool
	listDone    bool
	listLimit   int
	listCursor  string
	listAll     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks as a checklist.

Examples:
  tudu list
  tudu list --pending
  tudu list --done --limit 10
  tudu list --all
  tudu list --cursor "MTA="`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	addListFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

// addListFlags registers the list flags. The root command registers them too
// so that a bare tudu invocation accepts the same flags.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&listPending, "pending", false, "show only pending tasks")
	cmd.Flags().BoolVar(&listDone, "done", false, "show only done tasks")
	cmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "max results per page (max: 1000)")
	cmd.Flags().StringVar(&listCursor, "cursor", "", "pagination cursor")
	cmd.Flags().BoolVar(&listAll, "all", false, "fetch all pages")
}

func runList(cmd *cobra.Command, args []string) error {
	if listPending && listDone {
		return errors.New("--pending and --done are mutually exclusive")
	}

	filter := tudu.FilterAll
	switch {
	case listPending:
		filter = tudu.FilterPending
	case listDone:
		filter = tudu.FilterDone
	}

	service, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	query := tudu.ListQuery{
		Filter: filter,
		Limit:  listLimit,
		Cursor: listCursor,
	}

	result, err := service.List(cmd.Context(), query)
	if err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		return err
	}

	if listAll {
		for result.NextCursor != "" {
			query.Cursor = result.NextCursor

			page, err := service.List(cmd.Context(), query)
			if err != nil {
				_ = getFormatter().FormatError(os.Stderr, err)
				return err
			}

			result.Items = append(result.Items, page.Items...)
			result.NextCursor = page.NextCursor
		}
	}

	return getFormatter().FormatList(os.Stdout, &result)
}
