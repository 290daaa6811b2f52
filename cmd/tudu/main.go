package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tudu-dev/tudu/config"
)

var version = "dev"

var (
	cfgFile    string
	jsonOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "tudu",
	Short:   "Todo list manager backed by SQLite or Postgres",
	Long: `Tudu is a todo list manager that stores tasks in SQLite or
PostgreSQL, selected at runtime via configuration.

Running tudu with no subcommand lists your tasks.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var configFiles []string
		if cfgFile != "" {
			configFiles = append(configFiles, cfgFile)
		}

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg)

		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
	RunE: runList,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: sqlite, postgres (default: sqlite, env: TUDU_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (default: todos.db, env: TUDU_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("database-url", "", "database URL, backend inferred from scheme (env: DATABASE_URL)")
	rootCmd.PersistentFlags().String("table", "", "tasks table name (default: todos, env: TUDU_DATABASE_TABLES_TASKS)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	// Running tudu with no subcommand behaves like tudu list.
	addListFlags(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
