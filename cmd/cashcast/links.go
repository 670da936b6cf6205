package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cashcast/cashcast/internal/cli"
	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
	"github.com/cashcast/cashcast/internal/service"
)

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage links between transactions and forecast iterations",
	}

	add := &cobra.Command{
		Use:   "add <txn-id> <operation|budget> <target-id> <iteration-date>",
		Short: "Manually link a transaction to one iteration of a target",
		Args:  cobra.ExactArgs(4),
		RunE:  runLinkAdd,
	}
	add.Flags().String("note", "", "Free-form note stored on the link")
	_ = viper.BindPFlag("link.note", add.Flags().Lookup("note"))

	cmd.AddCommand(add)
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <txn-id>",
		Short: "Remove the link carried by a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  runLinkRemove,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "auto",
		Short: "Create heuristic links for unlinked transactions",
		RunE:  runLinkAuto,
	})
	return cmd
}

func runLinkAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	state, err := loadLedgerState(ctx)
	if err != nil {
		return err
	}

	txnID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q: %w", args[0], err)
	}
	targetType, err := parseTargetType(args[1])
	if err != nil {
		return err
	}
	targetID, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid target id %q: %w", args[2], err)
	}
	iteration, err := parseDate(args[3])
	if err != nil {
		return err
	}
	if _, ok := state.account.TransactionsByID()[txnID]; !ok {
		return fmt.Errorf("%w: transaction %d", common.ErrNotFound, txnID)
	}

	key := service.TargetKey{Type: targetType, ID: targetID}
	rng, params, err := findTarget(state, key)
	if err != nil {
		return err
	}
	m, err := state.linkedMatcher(ctx, key, rng, params)
	if err != nil {
		return err
	}

	links := service.NewLinkService(state.store)
	err = links.CreateManualLink(ctx, m, model.OperationLink{
		TransactionID: txnID,
		TargetType:    targetType,
		TargetID:      targetID,
		IterationDate: iteration,
		Note:          viper.GetString("link.note"),
	})
	if err != nil {
		return err
	}
	return state.store.Save()
}

func runLinkRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	state, err := loadLedgerState(ctx)
	if err != nil {
		return err
	}
	txnID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q: %w", args[0], err)
	}
	if err := service.NewLinkService(state.store).DeleteLink(ctx, txnID); err != nil {
		return err
	}
	return state.store.Save()
}

func runLinkAuto(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	state, err := loadLedgerState(ctx)
	if err != nil {
		return err
	}

	registry, err := state.matcherRegistry(ctx)
	if err != nil {
		return err
	}
	created, err := service.NewLinkService(state.store).
		CreateHeuristicLinks(ctx, state.account.Transactions, registry)
	if err != nil {
		return err
	}
	if len(created) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No new links."))
		return nil
	}
	for _, link := range created {
		fmt.Println(link)
	}
	return state.store.Save()
}

func parseTargetType(s string) (model.LinkType, error) {
	switch s {
	case "operation":
		return model.LinkPlannedOperation, nil
	case "budget":
		return model.LinkBudget, nil
	default:
		return "", fmt.Errorf("invalid target type %q, expected operation or budget", s)
	}
}

func findTarget(state *ledgerState, key service.TargetKey) (rng operation.Range, params operation.MatcherParams, err error) {
	switch key.Type {
	case model.LinkPlannedOperation:
		for _, op := range state.forecast.Operations {
			if op.ID == key.ID {
				return op.Range, op.MatcherParams(), nil
			}
		}
	case model.LinkBudget:
		for _, budget := range state.forecast.Budgets {
			if budget.ID == key.ID {
				return budget.Range, budget.MatcherParams(), nil
			}
		}
	}
	return rng, params, fmt.Errorf("%w: %s %d", common.ErrNotFound, key.Type, key.ID)
}
