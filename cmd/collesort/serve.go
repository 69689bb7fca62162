package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/collesort"
	"github.com/hupe1980/collesort/server"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	*rootOptions
	addr       string
	configPath string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}

			s, err := server.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.Run(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	return cmd
}

// load merges the config file, flags and log level into a server config.
func (o *serveOptions) load(cmd *cobra.Command) (server.Config, *collesort.Logger, error) {
	cfg := server.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = server.LoadConfig(o.configPath); err != nil {
			return server.Config{}, nil, err
		}
	}
	if o.addr != "" {
		cfg.Addr = o.addr
	}
	if cmd.Flags().Changed("log-level") || o.configPath == "" {
		cfg.LogLevel = o.logLevel
	}

	o.logLevel = cfg.LogLevel
	logger, err := o.logger(cmd)
	if err != nil {
		return server.Config{}, nil, err
	}
	return cfg, logger, cfg.Validate()
}
