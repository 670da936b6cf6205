package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/config"
	"github.com/cashcast/cashcast/internal/forecast"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
	"github.com/cashcast/cashcast/internal/service"
)

// ledgerState is everything a command needs from the ledger file.
type ledgerState struct {
	store    *config.Store
	account  model.Account
	forecast forecast.Forecast
	links    []model.OperationLink
}

func loadLedgerState(ctx context.Context) (*ledgerState, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	store, err := config.OpenStore(settings.LedgerPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open ledger %s", settings.LedgerPath), err)
	}
	account, err := store.GetAccount(ctx, "")
	if err != nil {
		return nil, err
	}
	f, err := store.GetForecast(ctx)
	if err != nil {
		return nil, err
	}
	return &ledgerState{
		store:    store,
		account:  account,
		forecast: f,
		links:    store.Ledger().ToLinks(),
	}, nil
}

// activeForecast drops archived operations; they are kept in the ledger but
// no longer reconciled or projected.
func activeForecast(f forecast.Forecast) forecast.Forecast {
	active := forecast.Forecast{Budgets: f.Budgets}
	for _, op := range f.Operations {
		if !op.Archived {
			active.Operations = append(active.Operations, op)
		}
	}
	return active
}

// actualized reconciles the active forecast against the account history.
func (s *ledgerState) actualized() (forecast.Forecast, error) {
	return forecast.NewActualizer(s.account, s.links).Actualize(activeForecast(s.forecast))
}

// linkedMatcher builds the target's matcher with its persisted links loaded.
func (s *ledgerState) linkedMatcher(ctx context.Context, key service.TargetKey, rng operation.Range, params operation.MatcherParams) (*operation.Matcher, error) {
	return service.NewLinkService(s.store).MatcherFor(ctx, rng, params, key)
}

// matcherRegistry builds link-aware matchers for every active target.
func (s *ledgerState) matcherRegistry(ctx context.Context) (*service.MatcherRegistry, error) {
	registry := service.NewMatcherRegistry()
	for _, op := range activeForecast(s.forecast).Operations {
		if op.ID == 0 {
			continue
		}
		key := service.TargetKey{Type: model.LinkPlannedOperation, ID: op.ID}
		m, err := s.linkedMatcher(ctx, key, op.Range, op.MatcherParams())
		if err != nil {
			return nil, err
		}
		registry.Insert(key, m)
	}
	for _, budget := range s.forecast.Budgets {
		if budget.ID == 0 {
			continue
		}
		key := service.TargetKey{Type: model.LinkBudget, ID: budget.ID}
		m, err := s.linkedMatcher(ctx, key, budget.Range, budget.MatcherParams())
		if err != nil {
			return nil, err
		}
		registry.Insert(key, m)
	}
	return registry, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}
