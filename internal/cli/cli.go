// Package cli wires the cptask commands: each one gathers its parameters
// (prompt or --params file), runs one service against MongoDB or CSV files
// and prints the console report.
package cli

import (
	"context"
	"cptask-tools/internal/config"
	"cptask-tools/internal/database"
	"cptask-tools/internal/logging"
	"cptask-tools/internal/models"
	"cptask-tools/internal/prompt"
	"cptask-tools/internal/services"
	"cptask-tools/internal/ui"
	"cptask-tools/internal/utils"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Store is everything the commands need from MongoDB
type Store interface {
	services.TaskStore
	services.TaskFinder
	services.CompanyStreamer
	CountTasksByStatus(ctx context.Context, taskType string) ([]models.StatusCount, error)
	DatabaseName() string
}

// Prompter supplies parameters interactively
type Prompter interface {
	Transition(oldStatus, newStatus models.TaskStatus) (models.TransitionRequest, error)
	ExportTaskCompanies(defaultLimit int64) (models.ExportTaskCompaniesRequest, error)
	ExportShortNames(defaultLimit int64, batchSize int32) (models.ExportShortNamesRequest, error)
	TaskType() (string, error)
	SelectFile(title string, files []string) (string, error)
	Confirm(title, description string) error
}

// ConnectFunc opens a store for the duration of fn
type ConnectFunc func(ctx context.Context, cfg config.MongoDBConfig, logger *zap.Logger, fn func(Store) error) error

func connectMongoDB(ctx context.Context, cfg config.MongoDBConfig, logger *zap.Logger, fn func(Store) error) error {
	return database.WithClient(ctx, cfg, logger, func(c *database.MongoDBClient) error {
		return fn(c)
	})
}

type app struct {
	configPath string
	verbose    bool
	out        io.Writer
	prompter   Prompter
	connect    ConnectFunc
}

// paramOptions are the flags shared by every subcommand
type paramOptions struct {
	params string
	yes    bool
}

func (o *paramOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.params, "params", "p", "", "JSON parameters file (skips the prompts)")
	cmd.Flags().BoolVarP(&o.yes, "yes", "y", false, "Do not ask for confirmation")
}

// runContext is what a command body gets once configuration and logging are set up
type runContext struct {
	ctx     context.Context
	cfg     *config.Config
	logger  *zap.Logger
	printer *ui.Printer
	runID   string
}

// BuildCLI returns the root command writing its report to stdout
func BuildCLI() *cobra.Command {
	return newApp(os.Stdout, prompt.New(), connectMongoDB).command()
}

func newApp(out io.Writer, prompter Prompter, connect ConnectFunc) *app {
	return &app{out: out, prompter: prompter, connect: connect}
}

func (a *app) command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cptask",
		Short:         "Company identifier and cp_task maintenance tools",
		Long:          "Exports company identifiers and short names from MongoDB, maps them onto CSV extracts, builds profile URLs and moves cp_task documents between statuses.",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (environment variables still take precedence)")
	rootCmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(a.buildExportTaskCompaniesCommand())
	rootCmd.AddCommand(a.buildExportShortNamesCommand())
	rootCmd.AddCommand(a.buildMapShortNamesCommand())
	rootCmd.AddCommand(a.buildProfileURLsCommand())
	rootCmd.AddCommand(a.buildUpdateStatusCommand())
	rootCmd.AddCommand(a.buildStatusCountsCommand())

	return rootCmd
}

// run prints the banner, loads config, builds the logger and runs body.
// Every path ends with a closing block.
func (a *app) run(cmd *cobra.Command, title string, body func(rc *runContext) error) error {
	start := time.Now()
	p := ui.NewPrinter(a.out)
	p.Banner(title)

	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return a.fail(p, start, "", fmt.Errorf("%w: %w", models.ErrValidation, err))
	}

	logger, err := logging.New(cfg.Log, a.verbose)
	if err != nil {
		return a.fail(p, start, "", fmt.Errorf("%w: %w", models.ErrValidation, err))
	}
	defer func() { _ = logger.Sync() }()

	runID := utils.GenerateUUID()
	logger = logger.With(zap.String("run_id", runID), zap.String("command", cmd.Name()))
	logger.Debug("Starting run", zap.String("started_at", utils.FormatISO(start)))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	err = body(&runContext{
		ctx:     ctx,
		cfg:     cfg,
		logger:  logger,
		printer: p,
		runID:   runID,
	})
	switch {
	case errors.Is(err, models.ErrDeclined):
		p.Warn("Cancelled, no changes were made")
		p.Field("Run ID", runID)
		p.Elapsed(time.Since(start))
		return reportedError{err}
	case err != nil:
		logger.Error("Run failed", zap.Error(err))
		return a.fail(p, start, runID, err)
	}

	p.Field("Run ID", runID)
	p.Elapsed(time.Since(start))
	p.Result(true, "SUCCESS!")
	return nil
}

func (a *app) fail(p *ui.Printer, start time.Time, runID string, err error) error {
	p.Blank()
	p.Fail("Error: %v", err)
	if runID != "" {
		p.Field("Run ID", runID)
	}
	p.Elapsed(time.Since(start))
	p.Result(false, "FAILED")
	return reportedError{err}
}

// reportedError marks an error the console report already shows
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// Reported reports whether err was already printed by a command
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// ExitCode maps a command error to the process exit status.
// A declined confirmation is a normal exit.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, models.ErrDeclined) {
		return 0
	}
	return 1
}
