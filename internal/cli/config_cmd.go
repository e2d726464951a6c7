package cli

import (
	"os"

	"wardrobe-budget/internal/cli/output"
	"wardrobe-budget/internal/config"

	"github.com/spf13/cobra"
)

func NewConfigCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Inspect and initialize configuration",
		Annotations: map[string]string{skipDBAnnotation: "true"},
	}

	cmd.AddCommand(
		newConfigShowCmd(opts),
		newConfigInitCmd(opts),
	)

	return cmd
}

func newConfigShowCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rejectPositionalArgs("config show", args); err != nil {
				return printError(cmd, opts, err)
			}

			cfg := opts.cfg
			if cfg.Notify.AMQPURL != "" {
				cfg.Notify.AMQPURL = "<redacted>"
			}

			return printSuccess(cmd, opts, map[string]any{
				"config_path":    opts.ConfigPath,
				"db_path":        opts.DBPath,
				"migrations_dir": opts.MigrationsDir,
				"log_level":      opts.LogLevel,
				"config":         cfg,
			}, nil)
		},
	}
}

func newConfigInitCmd(opts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rejectPositionalArgs("config init", args); err != nil {
				return printError(cmd, opts, err)
			}

			if _, err := os.Stat(opts.ConfigPath); err == nil && !force {
				return printError(cmd, opts, &commandError{
					Code:    output.ErrorCodeConflict,
					Message: "config file already exists",
					Details: map[string]any{"config_path": opts.ConfigPath, "hint": "pass --force to overwrite"},
				})
			}

			cfg := config.DefaultConfig()
			if err := config.Save(opts.ConfigPath, cfg); err != nil {
				return printError(cmd, opts, &commandError{
					Code:    output.ErrorCodeConfigError,
					Message: "could not write config file",
					Details: map[string]any{"reason": err.Error(), "config_path": opts.ConfigPath},
				})
			}

			return printSuccess(cmd, opts, map[string]any{
				"config_path": opts.ConfigPath,
				"config":      cfg,
			}, nil)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
