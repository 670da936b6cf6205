package config

import (
	"context"
	"fmt"
	"time"

	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/forecast"
	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

// Store is the ledger-file persistence layer. It loads the whole document
// into memory, serves the repository interfaces from it, and writes it back
// on Save. Mutations are invisible to other processes until saved.
type Store struct {
	path   string
	ledger *Ledger
}

// OpenStore loads the ledger at path into a store.
func OpenStore(path string) (*Store, error) {
	ledger, err := LoadLedger(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, ledger: ledger}, nil
}

// Ledger exposes the underlying document.
func (s *Store) Ledger() *Ledger { return s.ledger }

// Save writes the document back to its file.
func (s *Store) Save() error {
	return SaveLedger(s.path, s.ledger)
}

// GetAccount returns the stored account snapshot. An empty name matches any
// account; a non-empty one must equal the stored name.
func (s *Store) GetAccount(_ context.Context, name string) (model.Account, error) {
	if name != "" && name != s.ledger.Account.Name {
		return model.Account{}, fmt.Errorf("%w: account %q", common.ErrNotFound, name)
	}
	return s.ledger.ToAccount(), nil
}

// SaveTransactions appends transactions to the account history, assigning
// ids to unpersisted ones.
func (s *Store) SaveTransactions(_ context.Context, account string, txns []model.Transaction) error {
	if account != "" && account != s.ledger.Account.Name {
		return fmt.Errorf("%w: account %q", common.ErrNotFound, account)
	}
	next := s.nextTransactionID()
	for _, txn := range txns {
		if txn.ID == 0 {
			txn.ID = next
			next++
		}
		s.ledger.Account.Transactions = append(s.ledger.Account.Transactions, TransactionDoc{
			ID:          txn.ID,
			Date:        txn.Date,
			Description: txn.Description,
			Category:    string(txn.Category),
			Amount:      txn.Amount.Value,
		})
	}
	return nil
}

// UpdateTransactionCategory rewrites the category of one stored transaction.
func (s *Store) UpdateTransactionCategory(_ context.Context, txnID int64, category model.Category) error {
	for i := range s.ledger.Account.Transactions {
		if s.ledger.Account.Transactions[i].ID == txnID {
			s.ledger.Account.Transactions[i].Category = string(category)
			return nil
		}
	}
	return fmt.Errorf("%w: transaction %d", common.ErrNotFound, txnID)
}

// GetPlannedOperations materializes the stored planned operations.
func (s *Store) GetPlannedOperations(ctx context.Context) ([]operation.PlannedOperation, error) {
	f, err := s.GetForecast(ctx)
	if err != nil {
		return nil, err
	}
	return f.Operations, nil
}

// GetBudgets materializes the stored budgets.
func (s *Store) GetBudgets(ctx context.Context) ([]operation.Budget, error) {
	f, err := s.GetForecast(ctx)
	if err != nil {
		return nil, err
	}
	return f.Budgets, nil
}

// GetForecast materializes the whole stored forecast.
func (s *Store) GetForecast(_ context.Context) (forecast.Forecast, error) {
	return s.ledger.ToForecast()
}

// UpsertPlannedOperation inserts or replaces a planned operation, returning
// its id. Unpersisted operations are assigned the next free one.
func (s *Store) UpsertPlannedOperation(_ context.Context, op operation.PlannedOperation) (int64, error) {
	doc := operationDoc(op.ID, op.Range, op.MatcherParams())
	doc.Archived = op.Archived
	s.ledger.Operations, doc.ID = upsertDoc(s.ledger.Operations, doc)
	return doc.ID, nil
}

// DeletePlannedOperation removes a planned operation and every link pointing
// at it.
func (s *Store) DeletePlannedOperation(ctx context.Context, id int64) error {
	var ok bool
	if s.ledger.Operations, ok = deleteDoc(s.ledger.Operations, id); !ok {
		return fmt.Errorf("%w: planned operation %d", common.ErrNotFound, id)
	}
	return s.DeleteLinksForTarget(ctx, model.LinkPlannedOperation, id)
}

// UpsertBudget inserts or replaces a budget, returning its id.
func (s *Store) UpsertBudget(_ context.Context, budget operation.Budget) (int64, error) {
	doc := operationDoc(budget.ID, budget.Range, budget.MatcherParams())
	s.ledger.Budgets, doc.ID = upsertDoc(s.ledger.Budgets, doc)
	return doc.ID, nil
}

// DeleteBudget removes a budget and every link pointing at it.
func (s *Store) DeleteBudget(ctx context.Context, id int64) error {
	var ok bool
	if s.ledger.Budgets, ok = deleteDoc(s.ledger.Budgets, id); !ok {
		return fmt.Errorf("%w: budget %d", common.ErrNotFound, id)
	}
	return s.DeleteLinksForTarget(ctx, model.LinkBudget, id)
}

// GetLinkForTransaction returns the link carried by a transaction, if any.
func (s *Store) GetLinkForTransaction(_ context.Context, txnID int64) (model.OperationLink, bool, error) {
	for _, doc := range s.ledger.Links {
		if doc.TransactionID == txnID {
			return linkFromDoc(doc), true, nil
		}
	}
	return model.OperationLink{}, false, nil
}

// GetLinksForTarget returns every link pointing at a target.
func (s *Store) GetLinksForTarget(_ context.Context, targetType model.LinkType, targetID int64) ([]model.OperationLink, error) {
	var links []model.OperationLink
	for _, doc := range s.ledger.Links {
		if model.LinkType(doc.TargetType) == targetType && doc.TargetID == targetID {
			links = append(links, linkFromDoc(doc))
		}
	}
	return links, nil
}

// CreateLink stores a link. A transaction can carry at most one.
func (s *Store) CreateLink(_ context.Context, link model.OperationLink) error {
	for _, doc := range s.ledger.Links {
		if doc.TransactionID == link.TransactionID {
			return fmt.Errorf("%w: transaction %d", common.ErrDuplicateLink, link.TransactionID)
		}
	}
	s.ledger.Links = append(s.ledger.Links, LinkDoc{
		TransactionID: link.TransactionID,
		TargetType:    string(link.TargetType),
		TargetID:      link.TargetID,
		IterationDate: link.IterationDate,
		Manual:        link.Manual,
		Note:          link.Note,
	})
	return nil
}

// DeleteLink removes the link carried by a transaction, if any.
func (s *Store) DeleteLink(_ context.Context, txnID int64) error {
	s.ledger.Links = filterLinks(s.ledger.Links, func(doc LinkDoc) bool {
		return doc.TransactionID != txnID
	})
	return nil
}

// DeleteHeuristicLinksForTarget removes the target's non-manual links.
func (s *Store) DeleteHeuristicLinksForTarget(_ context.Context, targetType model.LinkType, targetID int64) error {
	s.ledger.Links = filterLinks(s.ledger.Links, func(doc LinkDoc) bool {
		return doc.Manual || model.LinkType(doc.TargetType) != targetType || doc.TargetID != targetID
	})
	return nil
}

// DeleteLinksForTarget removes every link pointing at a target.
func (s *Store) DeleteLinksForTarget(_ context.Context, targetType model.LinkType, targetID int64) error {
	s.ledger.Links = filterLinks(s.ledger.Links, func(doc LinkDoc) bool {
		return model.LinkType(doc.TargetType) != targetType || doc.TargetID != targetID
	})
	return nil
}

// ReplaceForecast rewrites the stored forecast with an actualized one.
// Stored entities the actualization consumed are dropped along with their
// links; targets that survive with an advanced interval shed the links
// pinned to their consumed iterations, since those are no longer on the
// grid.
func (s *Store) ReplaceForecast(ctx context.Context, f forecast.Forecast) error {
	kept := make(map[int64]bool, len(f.Operations))
	for _, op := range f.Operations {
		if op.ID != 0 {
			kept[op.ID] = true
		}
	}
	for _, doc := range s.ledger.Operations {
		if !kept[doc.ID] {
			if err := s.DeleteLinksForTarget(ctx, model.LinkPlannedOperation, doc.ID); err != nil {
				return err
			}
		}
	}
	// Entities keeping their id go in first so the fresh ids handed to
	// unpersisted ones cannot collide with a kept id.
	s.ledger.Operations = nil
	for _, op := range f.Operations {
		if op.ID == 0 {
			continue
		}
		if _, err := s.UpsertPlannedOperation(ctx, op); err != nil {
			return err
		}
		s.pruneConsumedLinks(model.LinkPlannedOperation, op.ID, op.Interval.StartDate())
	}
	for _, op := range f.Operations {
		if op.ID != 0 {
			continue
		}
		if _, err := s.UpsertPlannedOperation(ctx, op); err != nil {
			return err
		}
	}

	kept = make(map[int64]bool, len(f.Budgets))
	for _, budget := range f.Budgets {
		if budget.ID != 0 {
			kept[budget.ID] = true
		}
	}
	for _, doc := range s.ledger.Budgets {
		if !kept[doc.ID] {
			if err := s.DeleteLinksForTarget(ctx, model.LinkBudget, doc.ID); err != nil {
				return err
			}
		}
	}
	s.ledger.Budgets = nil
	for _, budget := range f.Budgets {
		if budget.ID == 0 {
			continue
		}
		if _, err := s.UpsertBudget(ctx, budget); err != nil {
			return err
		}
		s.pruneConsumedLinks(model.LinkBudget, budget.ID, budget.Interval.StartDate())
	}
	for _, budget := range f.Budgets {
		if budget.ID != 0 {
			continue
		}
		if _, err := s.UpsertBudget(ctx, budget); err != nil {
			return err
		}
	}
	return nil
}

// pruneConsumedLinks drops the target's links pinned to iterations before
// start.
func (s *Store) pruneConsumedLinks(targetType model.LinkType, targetID int64, start time.Time) {
	s.ledger.Links = filterLinks(s.ledger.Links, func(doc LinkDoc) bool {
		if model.LinkType(doc.TargetType) != targetType || doc.TargetID != targetID {
			return true
		}
		return !interval.Normalize(doc.IterationDate).Before(start)
	})
}

func (s *Store) nextTransactionID() int64 {
	var max int64
	for _, doc := range s.ledger.Account.Transactions {
		if doc.ID > max {
			max = doc.ID
		}
	}
	return max + 1
}

func operationDoc(id int64, rng operation.Range, params operation.MatcherParams) OperationDoc {
	doc := OperationDoc{
		ID:          id,
		Description: rng.Description,
		Category:    string(rng.Category),
		Amount:      rng.Amount.Value,
		Interval:    EncodeInterval(rng.Interval),
		Hints:       params.Hints,
	}
	if !params.AmountTolerance.IsUnbounded() {
		ratio := params.AmountTolerance.Ratio()
		doc.AmountTolerance = &ratio
	}
	days := params.DateToleranceDays
	doc.DateToleranceDays = &days
	return doc
}

func upsertDoc(docs []OperationDoc, doc OperationDoc) ([]OperationDoc, int64) {
	if doc.ID == 0 {
		var max int64
		for _, d := range docs {
			if d.ID > max {
				max = d.ID
			}
		}
		doc.ID = max + 1
		return append(docs, doc), doc.ID
	}
	for i, d := range docs {
		if d.ID == doc.ID {
			docs[i] = doc
			return docs, doc.ID
		}
	}
	return append(docs, doc), doc.ID
}

func deleteDoc(docs []OperationDoc, id int64) ([]OperationDoc, bool) {
	for i, d := range docs {
		if d.ID == id {
			return append(docs[:i], docs[i+1:]...), true
		}
	}
	return docs, false
}

func filterLinks(docs []LinkDoc, keep func(LinkDoc) bool) []LinkDoc {
	kept := docs[:0]
	for _, doc := range docs {
		if keep(doc) {
			kept = append(kept, doc)
		}
	}
	return kept
}

func linkFromDoc(doc LinkDoc) model.OperationLink {
	return model.OperationLink{
		TransactionID: doc.TransactionID,
		TargetType:    model.LinkType(doc.TargetType),
		TargetID:      doc.TargetID,
		IterationDate: interval.Normalize(doc.IterationDate),
		Manual:        doc.Manual,
		Note:          doc.Note,
	}
}
