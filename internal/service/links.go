package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

// LinkService orchestrates the operation link lifecycle between matchers,
// which use links in memory, and the repository, which persists them. Manual
// links are user assertions and are never overwritten; heuristic links are
// recomputed whenever their target changes.
type LinkService struct {
	repo LinkRepository
}

// NewLinkService builds a link service over the given repository.
func NewLinkService(repo LinkRepository) *LinkService {
	return &LinkService{repo: repo}
}

// MatcherFor builds a matcher for the target pre-loaded with its persisted
// links.
func (s *LinkService) MatcherFor(ctx context.Context, rng operation.Range, params operation.MatcherParams, key TargetKey) (*operation.Matcher, error) {
	links, err := s.repo.GetLinksForTarget(ctx, key.Type, key.ID)
	if err != nil {
		return nil, fmt.Errorf("loading links for %s %d: %w", key.Type, key.ID, err)
	}
	m, err := operation.NewMatcher(rng, params, links...)
	if err != nil {
		return nil, fmt.Errorf("building matcher for %s %d: %w", key.Type, key.ID, err)
	}
	return m, nil
}

// CreateManualLink validates and persists a user-asserted link. The
// transaction must not be linked yet, and the iteration date must be on the
// target's grid, which the target matcher's construction already guarantees
// for its own links; here the date is checked against the given matcher.
func (s *LinkService) CreateManualLink(ctx context.Context, m *operation.Matcher, link model.OperationLink) error {
	if _, exists, err := s.repo.GetLinkForTransaction(ctx, link.TransactionID); err != nil {
		return fmt.Errorf("checking existing link: %w", err)
	} else if exists {
		return fmt.Errorf("%w: transaction %d", common.ErrDuplicateLink, link.TransactionID)
	}

	current := m.Range().Interval.Current(link.IterationDate, 0, 0)
	if current == nil || !current.StartDate().Equal(link.IterationDate) {
		return fmt.Errorf("%w: %s is not an iteration of %q",
			common.ErrInvalidIteration, link.IterationDate.Format(time.DateOnly), m.Range().Description)
	}

	link.Manual = true
	if err := s.repo.CreateLink(ctx, link); err != nil {
		return fmt.Errorf("persisting link: %w", err)
	}
	return nil
}

// DeleteLink removes the link carried by a transaction, if any.
func (s *LinkService) DeleteLink(ctx context.Context, txnID int64) error {
	return s.repo.DeleteLink(ctx, txnID)
}

// DeleteLinksForTarget removes every link pointing at a deleted target.
func (s *LinkService) DeleteLinksForTarget(ctx context.Context, key TargetKey) error {
	return s.repo.DeleteLinksForTarget(ctx, key.Type, key.ID)
}

// CreateHeuristicLinks links each still-unlinked transaction to the best
// matching target from the registry, scoring candidates with MatchScore, and
// persists the created links.
func (s *LinkService) CreateHeuristicLinks(ctx context.Context, txns []model.Transaction, registry *MatcherRegistry) ([]model.OperationLink, error) {
	var created []model.OperationLink

	for _, txn := range txns {
		if _, exists, err := s.repo.GetLinkForTransaction(ctx, txn.ID); err != nil {
			return nil, fmt.Errorf("checking link for transaction %d: %w", txn.ID, err)
		} else if exists {
			continue
		}

		key, iteration, found := bestTarget(txn, registry)
		if !found {
			continue
		}

		link := model.OperationLink{
			TransactionID: txn.ID,
			TargetType:    key.Type,
			TargetID:      key.ID,
			IterationDate: iteration,
			Manual:        false,
		}
		if err := s.repo.CreateLink(ctx, link); err != nil {
			return nil, fmt.Errorf("persisting heuristic link for transaction %d: %w", txn.ID, err)
		}
		created = append(created, link)
	}

	if len(created) > 0 {
		common.LogDebug("created heuristic links", common.Fields{"count": len(created)})
	}
	return created, nil
}

// RecalculateLinksForTarget drops the target's heuristic links and recreates
// them from the given transaction pool. Manual links survive untouched.
func (s *LinkService) RecalculateLinksForTarget(ctx context.Context, key TargetKey, m *operation.Matcher, txns []model.Transaction) ([]model.OperationLink, error) {
	if key.ID == 0 {
		return nil, nil
	}
	if err := s.repo.DeleteHeuristicLinksForTarget(ctx, key.Type, key.ID); err != nil {
		return nil, fmt.Errorf("clearing heuristic links for %s %d: %w", key.Type, key.ID, err)
	}

	registry := NewMatcherRegistry()
	registry.Insert(key, m)
	return s.CreateHeuristicLinks(ctx, txns, registry)
}

// bestTarget returns the highest-scoring matching target for a transaction
// along with the iteration the transaction falls into.
func bestTarget(txn model.Transaction, registry *MatcherRegistry) (TargetKey, time.Time, bool) {
	var (
		bestKey       TargetKey
		bestIteration time.Time
		bestScore     float64
		found         bool
	)
	registry.Each(func(key TargetKey, m *operation.Matcher) bool {
		if !m.Match(txn) {
			return true
		}
		tol := m.Params().DateToleranceDays
		current := m.Range().Interval.Current(txn.Date, tol, tol)
		if current == nil {
			return true
		}
		iteration := current.StartDate()
		score := MatchScore(txn, m.Range(), iteration, m.Params())
		if !found || score > bestScore {
			bestKey, bestIteration, bestScore, found = key, iteration, score, true
		}
		return true
	})
	return bestKey, bestIteration, found
}
