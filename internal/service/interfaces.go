// Package service defines the contracts binding the forecasting core to its
// collaborators, and the link/matcher orchestration built on them. The core
// itself performs no I/O: persistence lives behind the repository interfaces
// declared here and is implemented elsewhere.
package service

import (
	"context"

	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

// AccountRepository supplies account snapshots: balance, balance date and the
// ordered transaction history.
type AccountRepository interface {
	GetAccount(ctx context.Context, name string) (model.Account, error)
	SaveTransactions(ctx context.Context, account string, txns []model.Transaction) error
	UpdateTransactionCategory(ctx context.Context, txnID int64, category model.Category) error
}

// ForecastRepository persists planned operations and budgets. Entities with a
// zero id are inserted and assigned one; entities absent from an actualized
// forecast are deleted by the caller driving the reconciliation.
type ForecastRepository interface {
	GetPlannedOperations(ctx context.Context) ([]operation.PlannedOperation, error)
	UpsertPlannedOperation(ctx context.Context, op operation.PlannedOperation) (int64, error)
	DeletePlannedOperation(ctx context.Context, id int64) error

	GetBudgets(ctx context.Context) ([]operation.Budget, error)
	UpsertBudget(ctx context.Context, budget operation.Budget) (int64, error)
	DeleteBudget(ctx context.Context, id int64) error
}

// LinkRepository persists operation links. At most one link may exist per
// transaction; creating a second one fails.
type LinkRepository interface {
	GetLinkForTransaction(ctx context.Context, txnID int64) (model.OperationLink, bool, error)
	GetLinksForTarget(ctx context.Context, targetType model.LinkType, targetID int64) ([]model.OperationLink, error)
	CreateLink(ctx context.Context, link model.OperationLink) error
	DeleteLink(ctx context.Context, txnID int64) error
	DeleteHeuristicLinksForTarget(ctx context.Context, targetType model.LinkType, targetID int64) error
	DeleteLinksForTarget(ctx context.Context, targetType model.LinkType, targetID int64) error
}
