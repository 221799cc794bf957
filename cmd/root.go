// Package cmd implements the wayfare CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/wayfare/internal/config"
	"github.com/theirongolddev/wayfare/internal/logger"
	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/service"
	"github.com/theirongolddev/wayfare/internal/store"
)

var (
	flagDataDir string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "wayfare",
	Short:         "Solo travel organizer",
	Long:          "Plan trips, destinations, itineraries, expenses and travel documents from the terminal.",
	RunE:          runTripList,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default "+config.DefaultDataDir()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
}

// env is what a command needs to talk to the store.
type env struct {
	cfg   config.Config
	log   *zap.Logger
	svc   *service.Services
	close func()
}

// loadConfig reads the config file and applies the --data-dir flag.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg, nil
}

// openEnv loads config, starts the logger and opens the database.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logger.New(logger.Options{
		Path:    cfg.LogPath(),
		Level:   cfg.General.LogLevel,
		Verbose: flagVerbose,
	})
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.DBPath())
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	log.Debug("database opened", zap.String("path", cfg.DBPath()))

	return &env{
		cfg: cfg,
		log: log,
		svc: service.New(st, cfg.General.Currency, log),
		close: func() {
			if err := st.Close(); err != nil {
				log.Warn("closing database", zap.Error(err))
			}
			_ = closeLog()
		},
	}, nil
}

// withEnv runs fn against an open environment and closes it afterwards.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	if err := fn(ctx, e); err != nil {
		e.log.Error("command failed", zap.String("command", cmd.CommandPath()), zap.Error(err))
		return err
	}
	return nil
}

func (e *env) tripID(ctx context.Context, prefix string) (model.Trip, error) {
	id, err := e.svc.Trips.Resolve(ctx, prefix)
	if err != nil {
		return model.Trip{}, err
	}
	return e.svc.Trips.Get(ctx, id)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", service.ErrValidation, s)
	}
	return t, nil
}

// parseDateTime reads "YYYY-MM-DD HH:MM" (or a bare date) in the local zone.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", model.DateLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: time %q must be YYYY-MM-DD HH:MM", service.ErrValidation, s)
}

func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q must be YYYY-MM", service.ErrValidation, s)
	}
	return t, nil
}
