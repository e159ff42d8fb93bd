package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nicholasgasior/xlfpack/internal/config"
	"github.com/nicholasgasior/xlfpack/internal/logging"
)

type commandContext struct {
	configFlag    string
	logLevelFlag  string
	logFormatFlag string

	once   sync.Once
	config *config.Config
	logger *slog.Logger
	err    error
}

// setup loads the configuration once and builds the logger from it,
// letting flags override the file.
func (c *commandContext) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	c.once.Do(func() {
		cfg, _, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.err = err
			return
		}
		if c.logLevelFlag != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(c.logLevelFlag))
		}
		if c.logFormatFlag != "" {
			cfg.Logging.Format = strings.ToLower(strings.TrimSpace(c.logFormatFlag))
		}
		if err := cfg.Validate(); err != nil {
			c.err = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cmd.ErrOrStderr(),
		})
		if err != nil {
			c.err = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.logger, c.err
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "xlfpack",
		Short:         "Embed original documents and manifests into XLIFF packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (.toml or .yaml)")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&ctx.logFormatFlag, "log-format", "", "Log format: auto, console, json")

	rootCmd.AddCommand(newBuildCommand(ctx))
	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "xlfpack %s\n", version)
		},
	})

	return rootCmd
}
