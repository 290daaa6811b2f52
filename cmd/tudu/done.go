package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as done",
	Long: `Mark a task as done.

Completing an already done task keeps its original completion time.

Examples:
  tudu done 3`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	service, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	task, err := service.Complete(cmd.Context(), id)
	if err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		return err
	}

	return getFormatter().FormatTask(os.Stdout, task)
}

// parseID parses a task id argument, rejecting non-positive values.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %q", arg)
	}
	return id, nil
}
