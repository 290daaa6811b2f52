package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a new task",
	Long: `Add a new task to the list.

Multiple arguments are joined into a single description.

Examples:
  tudu add "buy milk"
  tudu add walk the dog`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	service, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	description := strings.Join(args, " ")

	task, err := service.Add(cmd.Context(), description)
	if err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		return err
	}

	return getFormatter().FormatTask(os.Stdout, task)
}
