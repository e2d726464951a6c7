package cli

import (
	"database/sql"
	"fmt"
	"strings"

	"wardrobe-budget/internal/amqp"
	"wardrobe-budget/internal/cli/output"
	"wardrobe-budget/internal/config"
	"wardrobe-budget/internal/notify"
	"wardrobe-budget/internal/observability"
	sqlitestore "wardrobe-budget/internal/store/sqlite"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// skipDBAnnotation marks commands that never touch the database.
const skipDBAnnotation = "wardrobe-budget/skip-db"

type RootOptions struct {
	Output        string
	Timezone      string
	DBPath        string
	MigrationsDir string
	ConfigPath    string
	LogLevel      string

	cfg     config.Config
	logger  *zap.Logger
	db      *sql.DB
	closers []func() error
}

func NewRootCmd() *cobra.Command {
	defaultDBPath, err := config.DefaultDBPath()
	if err != nil {
		defaultDBPath = config.DefaultDBFile
	}
	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfigPath = config.DefaultConfigFile
	}

	opts := &RootOptions{
		Output:     output.FormatHuman,
		Timezone:   "UTC",
		DBPath:     defaultDBPath,
		ConfigPath: defaultConfigPath,
		cfg:        config.DefaultConfig(),
	}

	cmd := &cobra.Command{
		Use:           "wardrobe-budget",
		Short:         "Wardrobe budget allocation and spend tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !output.IsValidFormat(opts.Output) {
				return fmt.Errorf("invalid --output value %q: supported values are %s|%s", opts.Output, output.FormatHuman, output.FormatJSON)
			}
			opts.Output = strings.ToLower(strings.TrimSpace(opts.Output))

			if err := output.SetDisplayTimezone(opts.Timezone); err != nil {
				return fmt.Errorf("invalid --timezone value %q: %w", opts.Timezone, err)
			}

			if err := opts.loadConfig(cmd); err != nil {
				_ = output.Print(cmd.OutOrStdout(), opts.Output, output.NewErrorEnvelope(
					output.ErrorCodeConfigError,
					"configuration is invalid",
					map[string]any{"reason": err.Error(), "config_path": opts.ConfigPath},
					nil,
				))
				return err
			}

			logger, err := observability.NewLogger(opts.LogLevel)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			opts.logger = logger

			if skipsDB(cmd) {
				return nil
			}

			db, err := sqlitestore.OpenAndMigrate(cmd.Context(), opts.DBPath, opts.MigrationsDir)
			if err != nil {
				return fmt.Errorf("initialize sqlite: %w", err)
			}
			opts.db = db
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := sqlitestore.SchemaVersion(cmd.Context(), opts.db, opts.MigrationsDir)
			if err != nil {
				return printError(cmd, opts, err)
			}

			return printSuccess(cmd, opts, map[string]any{
				"command":        "root",
				"message":        "wardrobe-budget ready",
				"timezone":       opts.Timezone,
				"db_path":        opts.DBPath,
				"migrations_dir": opts.MigrationsDir,
				"config_path":    opts.ConfigPath,
				"schema_version": version,
			}, nil)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.close()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Output, "output", output.FormatHuman, "Output format: human|json")
	cmd.PersistentFlags().StringVar(&opts.Timezone, "timezone", "UTC", "Display timezone (IANA, e.g. Europe/Rome)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db-path", opts.DBPath, "SQLite database path")
	cmd.PersistentFlags().StringVar(&opts.MigrationsDir, "migrations-dir", "", "Migrations directory path (embedded migrations when empty)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "TOML config file path")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug|info|warn|error")

	cmd.AddCommand(
		NewBudgetCmd(opts),
		NewPurchaseCmd(opts),
		NewStatusCmd(opts),
		NewAllocateCmd(opts),
		NewPeriodCmd(opts),
		NewConfigCmd(opts),
	)

	return cmd
}

// loadConfig layers the config file and environment under explicit flags.
func (o *RootOptions) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	flags := cmd.Flags()
	if !flags.Changed("db-path") && cfg.Database.Path != "" {
		o.DBPath = cfg.Database.Path
	}
	if !flags.Changed("migrations-dir") && cfg.Database.MigrationsDir != "" {
		o.MigrationsDir = cfg.Database.MigrationsDir
	}
	if !flags.Changed("log-level") {
		o.LogLevel = cfg.Log.Level
	}
	return nil
}

// notifier returns the log notifier, plus an AMQP publisher when one is
// configured and reachable.
func (o *RootOptions) notifier() notify.Notifier {
	logger := o.log()
	notifiers := notify.Multi{notify.NewLogNotifier(logger)}

	if o.cfg.Notify.AMQPURL == "" {
		return notifiers
	}

	client, err := amqp.NewClient(o.cfg.Notify.AMQPURL, o.cfg.Notify.AMQPExchange, o.cfg.Notify.AMQPQueue, logger)
	if err != nil {
		logger.Warn("amqp notifier unavailable", zap.Error(err))
		return notifiers
	}
	o.closers = append(o.closers, client.Close)
	return append(notifiers, client)
}

func (o *RootOptions) log() *zap.Logger {
	if o == nil || o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}

func (o *RootOptions) close() error {
	for i := len(o.closers) - 1; i >= 0; i-- {
		if err := o.closers[i](); err != nil {
			o.log().Warn("close resource", zap.Error(err))
		}
	}
	o.closers = nil

	if o.logger != nil {
		_ = o.logger.Sync()
	}

	if o.db != nil {
		if err := o.db.Close(); err != nil {
			return fmt.Errorf("close sqlite db: %w", err)
		}
		o.db = nil
	}
	return nil
}

func skipsDB(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if _, ok := current.Annotations[skipDBAnnotation]; ok {
			return true
		}
	}
	return false
}

func dbUnavailable() error {
	return &commandError{
		Code:    output.ErrorCodeDBError,
		Message: "database operation failed",
		Details: map[string]any{"reason": "database connection unavailable"},
	}
}
