package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gowrivallaban/account-open-agenticAI/api"
	"github.com/gowrivallaban/account-open-agenticAI/logging"
	"github.com/gowrivallaban/account-open-agenticAI/observability"
	"github.com/gowrivallaban/account-open-agenticAI/orchestrator"
	"github.com/gowrivallaban/account-open-agenticAI/tools"
)

func newServeCmd() *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the account opening HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			if err := logging.Init(cfg.Logging); err != nil {
				return err
			}
			defer logging.Close()

			if err := tools.RegisterAccountTools(); err != nil && !errors.Is(err, tools.ErrAlreadyExists) {
				return err
			}

			observer := observability.NewMultiObserver(
				observability.NewSlogObserver(logging.L()),
				auditObserver{logger: logging.Audit()},
			)
			o, err := orchestrator.New(&cfg.Orchestrator, orchestrator.WithObserver(observer))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = api.NewServer(cfg.Server, o).Start(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return serveCmd
}
