package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cashcast/cashcast/internal/cli"
	"github.com/cashcast/cashcast/internal/common"
)

func actualizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actualize",
		Short: "Reconcile the forecast against the account history",
		Long: `Advance every planned operation past its paid iterations, postpone the
late ones, and shrink current budgets by what their transactions consumed.
The updated forecast is written back to the ledger.`,
		RunE: runActualize,
	}

	cmd.Flags().Bool("dry-run", false, "Show the actualized forecast without saving it")
	_ = viper.BindPFlag("actualize.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runActualize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	state, err := loadLedgerState(ctx)
	if err != nil {
		return err
	}

	actual, err := state.actualized()
	if err != nil {
		return fmt.Errorf("reconciling forecast: %w", err)
	}

	// Archived operations skip reconciliation but stay in the ledger.
	for _, op := range state.forecast.Operations {
		if op.Archived {
			actual.Operations = append(actual.Operations, op)
		}
	}

	fmt.Println(cli.RenderForecast(actual))

	if viper.GetBool("actualize.dry_run") {
		return nil
	}

	if err := state.store.ReplaceForecast(ctx, actual); err != nil {
		return fmt.Errorf("updating ledger: %w", err)
	}
	if err := state.store.Save(); err != nil {
		return err
	}
	common.LogInfo("forecast actualized", common.Fields{
		"operations": len(actual.Operations),
		"budgets":    len(actual.Budgets),
	})
	return nil
}
