package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gowrivallaban/account-open-agenticAI/logging"
	"github.com/gowrivallaban/account-open-agenticAI/observability"
	"github.com/gowrivallaban/account-open-agenticAI/orchestrator"
	"github.com/gowrivallaban/account-open-agenticAI/tools"
)

func newChatCmd() *cobra.Command {
	var (
		message       string
		model         string
		maxIterations int
	)

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the account opening agent from the terminal",
		Long:  "chat starts an interactive session with the banking assistant. Pass --message for a single exchange; otherwise messages are read line by line until EOF or \"exit\".",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if model != "" {
				cfg.Orchestrator.Engine.Model = model
			}
			if maxIterations > 0 {
				cfg.Orchestrator.MaxIterations = maxIterations
			}

			cfg.Logging.Level = "error" // keep the transcript readable
			if err := logging.Init(cfg.Logging); err != nil {
				return err
			}
			defer logging.Close()

			if err := tools.RegisterAccountTools(); err != nil && !errors.Is(err, tools.ErrAlreadyExists) {
				return err
			}

			o, err := orchestrator.New(&cfg.Orchestrator,
				orchestrator.WithObserver(observability.NoOpObserver{}),
			)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if message != "" {
				result, err := o.Process(ctx, "", message)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, result.Reply)
				printAccountLine(out, result)
				return nil
			}

			fmt.Fprintln(out, "Connected to Apex. Type a message, or \"exit\" to quit.")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			sessionID := ""
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
					return nil
				}

				result, err := o.Process(ctx, sessionID, line)
				if err != nil {
					return err
				}
				sessionID = result.SessionID
				fmt.Fprintln(out, result.Reply)
				printAccountLine(out, result)
			}
		},
	}

	chatCmd.Flags().StringVar(&message, "message", "", "send a single message and exit")
	chatCmd.Flags().StringVar(&model, "model", "", "engine model (overrides config)")
	chatCmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "dialogue loop budget (overrides config)")
	return chatCmd
}

// printAccountLine surfaces account details after the reply when a turn
// created one.
func printAccountLine(out io.Writer, result *orchestrator.Result) {
	if !result.Metadata.AccountCreated {
		return
	}
	fmt.Fprintf(out, "[account %s opened, routing %s]\n", result.Metadata.AccountNumber, result.Metadata.RoutingNumber)
}
