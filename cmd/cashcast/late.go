package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashcast/cashcast/internal/cli"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/service"
)

func lateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "late",
		Short: "List iterations that are overdue with no matching transaction",
		RunE:  runLate,
	}
}

func runLate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	state, err := loadLedgerState(ctx)
	if err != nil {
		return err
	}

	var entries []cli.LateEntry
	for _, op := range activeForecast(state.forecast).Operations {
		key := service.TargetKey{Type: model.LinkPlannedOperation, ID: op.ID}
		m, err := state.linkedMatcher(ctx, key, op.Range, op.MatcherParams())
		if err != nil {
			return err
		}
		for _, due := range m.LateRanges(state.account.BalanceDate, state.account.Transactions) {
			entries = append(entries, cli.LateEntry{
				Description: op.Description,
				Amount:      op.Amount,
				Due:         due.StartDate(),
			})
		}
	}

	fmt.Println(cli.RenderLate(entries))
	return nil
}

func anticipatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "anticipated",
		Short: "List future iterations that were already paid early",
		RunE:  runAnticipated,
	}
}

func runAnticipated(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	state, err := loadLedgerState(ctx)
	if err != nil {
		return err
	}

	var entries []cli.AnticipatedEntry
	for _, op := range activeForecast(state.forecast).Operations {
		key := service.TargetKey{Type: model.LinkPlannedOperation, ID: op.ID}
		m, err := state.linkedMatcher(ctx, key, op.Range, op.MatcherParams())
		if err != nil {
			return err
		}
		for _, a := range m.AnticipatedRanges(state.account.BalanceDate, state.account.Transactions) {
			entries = append(entries, cli.AnticipatedEntry{
				Description:  op.Description,
				Anticipation: a,
			})
		}
	}

	fmt.Println(cli.RenderAnticipated(entries))
	return nil
}
