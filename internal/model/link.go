package model

import (
	"fmt"
	"time"
)

// LinkType identifies the kind of forecast entity a link points at.
type LinkType string

const (
	// LinkPlannedOperation targets a planned operation iteration.
	LinkPlannedOperation LinkType = "planned_operation"
	// LinkBudget targets a budget iteration.
	LinkBudget LinkType = "budget"
)

// OperationLink ties one historic transaction to one iteration of a planned
// operation or budget. A transaction can carry at most one link; the
// iteration date must be a valid iteration start of the target's interval.
// Links always override heuristic matching.
type OperationLink struct {
	IterationDate time.Time
	TargetType    LinkType
	Note          string
	TransactionID int64
	TargetID      int64
	Manual        bool
}

func (l OperationLink) String() string {
	return fmt.Sprintf("txn %d -> %s %d @ %s",
		l.TransactionID, l.TargetType, l.TargetID, l.IterationDate.Format(time.DateOnly))
}
