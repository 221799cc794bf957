package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/wayfare/internal/config"
	"github.com/theirongolddev/wayfare/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:       %s\n", cfg.General.Currency)
	fmt.Printf("    Data directory: %s\n", cfg.DataDir())
	fmt.Printf("    Log level:      %s\n", cfg.General.LogLevel)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Dark mode: %v\n", cfg.Appearance.DarkMode)
	fmt.Println()

	fmt.Println("  [Calendar]")
	fmt.Printf("    Week starts on: %s\n", strings.ToLower(cfg.FirstWeekday().String()))
	fmt.Printf("    Adjacent days:  %v\n", cfg.Calendar.ShowAdjacent)
	fmt.Println()

	fmt.Println("  [Files]")
	fmt.Printf("    Database: %s\n", cfg.DBPath())
	fmt.Printf("    Log:      %s\n", cfg.LogPath())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	v, ok, err := schemaVersion(ctx, cfg.DBPath())
	switch {
	case err != nil:
		return err
	case ok:
		fmt.Printf("    Schema:   version %d\n", v)
	default:
		fmt.Println("    Schema:   not created yet")
	}
	fmt.Println()

	fmt.Println("  Run `wayfare setup` to reconfigure.")
	return nil
}

// schemaVersion reports the migration version of the database at path.
// ok is false when no database has been created there yet.
func schemaVersion(ctx context.Context, path string) (v int64, ok bool, err error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	st, err := store.Open(ctx, path)
	if err != nil {
		return 0, false, fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	if v, err = st.SchemaVersion(ctx); err != nil {
		return 0, false, fmt.Errorf("reading schema version: %w", err)
	}
	return v, true, nil
}
