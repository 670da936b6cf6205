package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/forecast"
	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

// Ledger is the YAML document a cashcast file holds: one account snapshot,
// the forecast entities, and the links tying transactions to them.
type Ledger struct {
	Account    AccountDoc     `yaml:"account"`
	Operations []OperationDoc `yaml:"operations,omitempty"`
	Budgets    []OperationDoc `yaml:"budgets,omitempty"`
	Links      []LinkDoc      `yaml:"links,omitempty"`
}

// AccountDoc is the stored account snapshot.
type AccountDoc struct {
	Name         string           `yaml:"name"`
	Currency     string           `yaml:"currency"`
	Balance      float64          `yaml:"balance"`
	BalanceDate  time.Time        `yaml:"balance_date"`
	Transactions []TransactionDoc `yaml:"transactions,omitempty"`
}

// TransactionDoc is one stored historic transaction.
type TransactionDoc struct {
	ID          int64     `yaml:"id"`
	Date        time.Time `yaml:"date"`
	Description string    `yaml:"description"`
	Category    string    `yaml:"category,omitempty"`
	Amount      float64   `yaml:"amount"`
}

// IntervalDoc is the stored form of an interval: a start date, a duration,
// and for recurrences a period plus an optional end date.
type IntervalDoc struct {
	Start         time.Time  `yaml:"start"`
	DurationValue int        `yaml:"duration"`
	DurationUnit  string     `yaml:"duration_unit"`
	PeriodValue   *int       `yaml:"period,omitempty"`
	PeriodUnit    *string    `yaml:"period_unit,omitempty"`
	End           *time.Time `yaml:"end,omitempty"`
}

// OperationDoc is one stored planned operation or budget. Tolerances default
// per entity kind when omitted.
type OperationDoc struct {
	ID                int64       `yaml:"id"`
	Description       string      `yaml:"description"`
	Category          string      `yaml:"category,omitempty"`
	Amount            float64     `yaml:"amount"`
	Interval          IntervalDoc `yaml:"interval"`
	Hints             []string    `yaml:"hints,omitempty"`
	AmountTolerance   *float64    `yaml:"amount_tolerance,omitempty"`
	DateToleranceDays *int        `yaml:"date_tolerance_days,omitempty"`
	Archived          bool        `yaml:"archived,omitempty"`
}

// LinkDoc is one stored operation link.
type LinkDoc struct {
	TransactionID int64     `yaml:"transaction_id"`
	TargetType    string    `yaml:"target_type"`
	TargetID      int64     `yaml:"target_id"`
	IterationDate time.Time `yaml:"iteration_date"`
	Manual        bool      `yaml:"manual,omitempty"`
	Note          string    `yaml:"note,omitempty"`
}

// LoadLedger reads and parses a ledger file.
func LoadLedger(path string) (*Ledger, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	var ledger Ledger
	if err := yaml.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("%w: parsing ledger %s: %v", common.ErrInvalidConfig, path, err)
	}
	return &ledger, nil
}

// SaveLedger writes the ledger back to its file.
func SaveLedger(path string, ledger *Ledger) error {
	data, err := yaml.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := os.WriteFile(ExpandPath(path), data, 0o644); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

// ToAccount materializes the stored account snapshot.
func (l *Ledger) ToAccount() model.Account {
	account := model.Account{
		Name:        l.Account.Name,
		Currency:    l.Account.Currency,
		Balance:     l.Account.Balance,
		BalanceDate: interval.Normalize(l.Account.BalanceDate),
	}
	for _, doc := range l.Account.Transactions {
		account.Transactions = append(account.Transactions, model.Transaction{
			ID:          doc.ID,
			Date:        interval.Normalize(doc.Date),
			Description: doc.Description,
			Category:    model.Category(doc.Category),
			Amount:      model.NewAmount(doc.Amount, account.Currency),
		})
	}
	return account
}

// ToForecast materializes the stored operations and budgets, applying links
// from the ledger to each target's matcher.
func (l *Ledger) ToForecast() (forecast.Forecast, error) {
	var f forecast.Forecast

	for _, doc := range l.Operations {
		iv, err := decodeInterval(doc.Interval)
		if err != nil {
			return forecast.Forecast{}, fmt.Errorf("operation %q: %w", doc.Description, err)
		}
		op, err := operation.NewPlannedOperation(doc.ID, doc.Description,
			model.NewAmount(doc.Amount, l.Account.Currency), model.Category(doc.Category), iv)
		if err != nil {
			return forecast.Forecast{}, fmt.Errorf("operation %q: %w", doc.Description, err)
		}
		op = op.WithArchived(doc.Archived).
			WithMatcherParams(docParams(doc, operation.DefaultOperationParams()))
		f.Operations = append(f.Operations, op)
	}

	for _, doc := range l.Budgets {
		iv, err := decodeInterval(doc.Interval)
		if err != nil {
			return forecast.Forecast{}, fmt.Errorf("budget %q: %w", doc.Description, err)
		}
		budget := operation.NewBudget(doc.ID, doc.Description,
			model.NewAmount(doc.Amount, l.Account.Currency), model.Category(doc.Category), iv).
			WithMatcherParams(docParams(doc, operation.DefaultBudgetParams()))
		f.Budgets = append(f.Budgets, budget)
	}

	return f, nil
}

// ToLinks materializes the stored operation links.
func (l *Ledger) ToLinks() []model.OperationLink {
	links := make([]model.OperationLink, 0, len(l.Links))
	for _, doc := range l.Links {
		links = append(links, model.OperationLink{
			TransactionID: doc.TransactionID,
			TargetType:    model.LinkType(doc.TargetType),
			TargetID:      doc.TargetID,
			IterationDate: interval.Normalize(doc.IterationDate),
			Manual:        doc.Manual,
			Note:          doc.Note,
		})
	}
	return links
}

func decodeInterval(doc IntervalDoc) (interval.Interval, error) {
	return interval.Decode(interval.Encoded{
		Start:         interval.Normalize(doc.Start),
		DurationValue: doc.DurationValue,
		DurationUnit:  doc.DurationUnit,
		PeriodValue:   doc.PeriodValue,
		PeriodUnit:    doc.PeriodUnit,
		End:           doc.End,
	})
}

func docParams(doc OperationDoc, defaults operation.MatcherParams) operation.MatcherParams {
	params := defaults
	params.Hints = doc.Hints
	if doc.AmountTolerance != nil {
		params.AmountTolerance = operation.Ratio(*doc.AmountTolerance)
	}
	if doc.DateToleranceDays != nil {
		params.DateToleranceDays = *doc.DateToleranceDays
	}
	return params
}

// EncodeInterval flattens an interval into its stored form, for writing
// forecast entities back to the ledger.
func EncodeInterval(iv interval.Interval) IntervalDoc {
	e := interval.Encode(iv)
	return IntervalDoc{
		Start:         e.Start,
		DurationValue: e.DurationValue,
		DurationUnit:  e.DurationUnit,
		PeriodValue:   e.PeriodValue,
		PeriodUnit:    e.PeriodUnit,
		End:           e.End,
	}
}
