package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashcast/cashcast/internal/cli"
	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Show and maintain the forecast",
		RunE:  runForecastList,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "categorize",
		Short: "Fill in missing transaction categories from matching planned operations",
		RunE:  runCategorize,
	})
	return cmd
}

func runForecastList(cmd *cobra.Command, _ []string) error {
	state, err := loadLedgerState(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println(cli.RenderForecast(state.forecast))
	return nil
}

func runCategorize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	state, err := loadLedgerState(ctx)
	if err != nil {
		return err
	}

	var uncategorized []model.Transaction
	for _, txn := range state.account.Transactions {
		if txn.Category.IsUncategorized() {
			uncategorized = append(uncategorized, txn)
		}
	}
	if len(uncategorized) == 0 {
		fmt.Println(cli.SubtleStyle.Render("Every transaction is categorized."))
		return nil
	}

	categorized := operation.Categorize(uncategorized, activeForecast(state.forecast).Operations)
	updated := 0
	for _, txn := range categorized {
		if txn.Category.IsUncategorized() {
			continue
		}
		if err := state.store.UpdateTransactionCategory(ctx, txn.ID, txn.Category); err != nil {
			return err
		}
		updated++
	}
	if updated > 0 {
		if err := state.store.Save(); err != nil {
			return err
		}
	}

	common.LogInfo("transactions categorized", common.Fields{
		"scanned": len(uncategorized),
		"updated": updated,
	})
	return nil
}
