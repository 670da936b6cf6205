package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cashcast/cashcast/internal/cli"
	"github.com/cashcast/cashcast/internal/forecast"
	"github.com/cashcast/cashcast/internal/interval"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the account balance to a future date",
		Long: `Reconcile the forecast against the account history, then project the
balance forward. Planned operations contribute on their due dates; budgets
spread their remaining amount over their remaining days.`,
		RunE: runProject,
	}

	cmd.Flags().StringP("date", "d", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().IntP("days", "n", 30, "Days past the balance date when no date is given")

	_ = viper.BindPFlag("project.date", cmd.Flags().Lookup("date"))
	_ = viper.BindPFlag("project.days", cmd.Flags().Lookup("days"))

	return cmd
}

func runProject(cmd *cobra.Command, _ []string) error {
	state, err := loadLedgerState(cmd.Context())
	if err != nil {
		return err
	}

	target := interval.AddDays(state.account.BalanceDate, viper.GetInt("project.days"))
	if s := viper.GetString("project.date"); s != "" {
		if target, err = parseDate(s); err != nil {
			return err
		}
	}

	actual, err := state.actualized()
	if err != nil {
		return fmt.Errorf("reconciling forecast: %w", err)
	}

	projected := forecast.NewForecaster(state.account, actual).At(target)
	fmt.Println(cli.RenderProjection(projected, target))
	return nil
}

func seriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the day-by-day balance evolution over a date range",
		RunE:  runSeries,
	}

	cmd.Flags().String("from", "", "Range start (YYYY-MM-DD, default: balance date)")
	cmd.Flags().String("to", "", "Range end (YYYY-MM-DD, default: 30 days after start)")

	_ = viper.BindPFlag("series.from", cmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("series.to", cmd.Flags().Lookup("to"))

	return cmd
}

func runSeries(cmd *cobra.Command, _ []string) error {
	state, err := loadLedgerState(cmd.Context())
	if err != nil {
		return err
	}

	from := state.account.BalanceDate
	if s := viper.GetString("series.from"); s != "" {
		if from, err = parseDate(s); err != nil {
			return err
		}
	}
	to := interval.AddDays(from, 30)
	if s := viper.GetString("series.to"); s != "" {
		if to, err = parseDate(s); err != nil {
			return err
		}
	}

	actual, err := state.actualized()
	if err != nil {
		return fmt.Errorf("reconciling forecast: %w", err)
	}

	points, err := forecast.BalanceSeries(state.account, actual, from, to)
	if err != nil {
		return err
	}
	fmt.Println(cli.RenderBalanceSeries(state.account.Currency, points))
	return nil
}
