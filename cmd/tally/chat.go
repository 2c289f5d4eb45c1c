package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/advisor"
	"github.com/Veraticus/tally/internal/chat"
	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask a question about your transactions",
		Long: `Ask a free-form question about your ingested transactions. Answers
are grounded only in your own data.

Example:
  tally chat "How much did I spend on food last month?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := strings.Join(args, " ")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	transactions, err := store.GetAllTransactions(ctx, config.UserID())
	if err != nil {
		return err
	}

	client, err := createLLMClient()
	if err != nil {
		return err
	}

	agent := chat.NewAgent(advisor.New(client, slog.Default()), slog.Default())
	answer := agent.Answer(ctx, question, transactions)

	fmt.Println(cli.RenderBox(cli.ChatIcon+" Answer", answer))
	return nil
}
