package main

import (
	"os"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task permanently.

Examples:
  tudu remove 3
  tudu rm 3`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	service, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := service.Delete(cmd.Context(), id); err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		return err
	}

	return getFormatter().FormatDeleted(os.Stdout, id)
}
