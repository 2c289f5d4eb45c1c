package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the spending categories used for classification",
		RunE:  runCategories,
	}
}

func runCategories(cmd *cobra.Command, _ []string) error {
	fmt.Println(cli.TitleStyle.Render(cli.MoneyIcon + " Spending categories"))
	for _, category := range model.Categories() {
		fmt.Printf("  • %s\n", category)
	}
	fmt.Println()
	fmt.Println(cli.FormatInfo("Transactions that match no category fall back to Others."))
	return nil
}
