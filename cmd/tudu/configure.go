package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tudu-dev/tudu"
	"github.com/tudu-dev/tudu/database"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write a config file interactively",
	Long: `Write a config file interactively.

You will be prompted for:
  - Database type (sqlite or postgres)
  - Connection string
  - Tasks table name
  - HTTP server port

The database connection is tested before saving. The file is written to
the path given with --config, or ./config.yaml by default.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
	// The file may not exist yet, so skip the usual config load.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

// configFile mirrors the yaml layout read by config.Load.
type configFile struct {
	Database struct {
		Type   string `yaml:"type"`
		DSN    string `yaml:"dsn"`
		Tables struct {
			Tasks string `yaml:"tasks"`
		} `yaml:"tables"`
		AutoMigrate bool `yaml:"auto_migrate"`
	} `yaml:"database"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func runConfigure(_ *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Config file %s already exists. Overwrite it", path),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	typePrompt := promptui.Select{
		Label: "Database type",
		Items: []string{"sqlite", "postgres"},
	}
	_, dbType, err := typePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	defaultDSN := "todos.db"
	if dbType == "postgres" {
		defaultDSN = "postgres://localhost:5432/tudu"
	}

	dsnPrompt := promptui.Prompt{
		Label:   "Connection string",
		Default: defaultDSN,
		Validate: func(input string) error {
			if input == "" {
				return errors.New("connection string is required")
			}
			return nil
		},
	}
	dsn, err := dsnPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	tablePrompt := promptui.Prompt{
		Label:   "Tasks table name",
		Default: "todos",
		Validate: func(input string) error {
			if !tudu.IsValidTableName(input) {
				return errors.New("table name must be lowercase letters, digits, and underscores")
			}
			return nil
		},
	}
	table, err := tablePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	portPrompt := promptui.Prompt{
		Label:   "HTTP server port",
		Default: "5800",
		Validate: func(input string) error {
			port, parseErr := strconv.Atoi(input)
			if parseErr != nil || port < 1 || port > 65535 {
				return errors.New("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	port, _ := strconv.Atoi(portStr)

	fmt.Print("Testing connection... ")
	if connErr := testDatabaseConnection(dbType, dsn, table); connErr != nil {
		fmt.Println("FAILED")
		fmt.Printf("Warning: Could not connect to database: %v\n", connErr)

		continuePrompt := promptui.Prompt{
			Label:     "Save config anyway",
			IsConfirm: true,
		}
		if _, promptErr := continuePrompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	} else {
		fmt.Println("OK")
	}

	var cf configFile
	cf.Database.Type = dbType
	cf.Database.DSN = dsn
	cf.Database.Tables.Tasks = table
	cf.Database.AutoMigrate = true
	cf.Server.Port = port
	cf.Log.Level = "info"

	data, err := yaml.Marshal(&cf)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Config written to %s\n", path)
	return nil
}

// testDatabaseConnection opens the database and pings it.
func testDatabaseConnection(dbType, dsn, table string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, database.Config{
		Type:   dbType,
		DSN:    dsn,
		Tables: tudu.Tables{Tasks: table},
	})
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.Ping(ctx)
}

// handlePromptError maps prompt interrupts to a clean cancel.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
