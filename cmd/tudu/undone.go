package main

import (
	"os"

	"github.com/spf13/cobra"
)

var undoneCmd = &cobra.Command{
	Use:   "undone <id>",
	Short: "Mark a done task as pending again",
	Long: `Mark a done task as pending again, clearing its completion time.

Examples:
  tudu undone 3`,
	Args: cobra.ExactArgs(1),
	RunE: runUndone,
}

func init() {
	rootCmd.AddCommand(undoneCmd)
}

func runUndone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	service, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	task, err := service.Reopen(cmd.Context(), id)
	if err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		return err
	}

	return getFormatter().FormatTask(os.Stdout, task)
}
