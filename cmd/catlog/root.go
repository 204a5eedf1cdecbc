package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/catlog/config"
	"github.com/kbukum/catlog/logger"
	"github.com/kbukum/catlog/version"
)

type rootOptions struct {
	configFile string
	envFile    string
	level      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "catlog",
		Short:         "Emit and render category-scoped log records",
		Version:       version.Get().Short(),
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "logging config file (default: ./catlog.{yml,yaml,json,toml} if present)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", ".env file to load before reading CATLOG_* variables")
	cmd.PersistentFlags().StringVar(&opts.level, "level", "", "minimum severity, overrides config (debug, info, warn, error, none)")

	cmd.AddCommand(
		newEmitCmd(opts),
		newRenderCmd(),
		newCategoriesCmd(),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig resolves the logging configuration shared by subcommands.
func (o *rootOptions) loadConfig() (logger.Config, error) {
	var copts []config.Option
	if o.configFile != "" {
		copts = append(copts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		copts = append(copts, config.WithEnvFile(o.envFile))
	}
	cfg, err := logger.LoadConfig(copts...)
	if err != nil {
		return logger.Config{}, err
	}
	if o.level != "" {
		cfg.MinLevel = o.level
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return logger.Config{}, err
		}
	}
	return cfg, nil
}
