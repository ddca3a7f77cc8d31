// Package summary computes the planned and actual balances shown on the
// dashboard.
package summary

import (
	"context"
	"fmt"

	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/models"
	"github.com/carryforward/backend/pkg/projection"
	"github.com/carryforward/backend/pkg/resolve"
	"github.com/carryforward/backend/pkg/store"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

var ErrWindowInvalid = fmt.Errorf("%w: the start of the window must not be after its end", models.ErrValidation)

// Balances are the balance series of all accounts of a month.
type Balances struct {
	Month    types.Month       `json:"month" example:"2024-03-01T00:00:00Z"`
	Currency string            `json:"currency" example:"EUR"`
	Start    types.Date        `json:"start" example:"2024-03-01"`
	End      types.Date        `json:"end" example:"2024-03-31"`
	Accounts []AccountBalances `json:"accounts"`
}

// AccountBalances compares what was planned for an account with what
// actually happened.
type AccountBalances struct {
	Account models.Account    `json:"account"`
	Planned projection.Series `json:"planned"` // From pay dates and due dates
	Actual  projection.Series `json:"actual"`  // From posted transactions
}

type Service struct {
	db       *gorm.DB
	resolver *resolve.Resolver
	currency currency.Unit
}

func NewService(db *gorm.DB, resolver *resolve.Resolver, unit currency.Unit) *Service {
	return &Service{db: db, resolver: resolver, currency: unit}
}

// Balances resolves the month and projects its accounts over the window.
// A zero start or end defaults to the bounds of the month.
func (s *Service) Balances(ctx context.Context, month types.Month, start, end types.Date) (Balances, error) {
	if start.IsZero() {
		start = month.Start()
	}
	if end.IsZero() {
		end = month.End()
	}
	if start.After(end) {
		return Balances{}, ErrWindowInvalid
	}

	snapshot, err := s.resolver.Resolve(ctx, month)
	if err != nil {
		return Balances{}, err
	}

	transactions, err := s.posted(ctx, snapshot.Accounts, end)
	if err != nil {
		return Balances{}, err
	}

	starting := projection.StartingBalances(snapshot.Accounts)

	scheduled := append(
		projection.IncomeEvents(snapshot.IncomeSources, start, end),
		projection.ExpenseEvents(snapshot.PlannedExpenses, start, end)...,
	)
	planned := projection.Project(starting, scheduled, start, end)

	actual := projection.Project(
		projection.OpeningBalances(starting, transactions, start),
		projection.PostedEvents(transactions, start, end),
		start, end,
	)

	b := Balances{
		Month:    snapshot.Month,
		Currency: s.currency.String(),
		Start:    start,
		End:      end,
		Accounts: make([]AccountBalances, 0, len(snapshot.Accounts)),
	}

	for _, a := range snapshot.Accounts {
		b.Accounts = append(b.Accounts, AccountBalances{
			Account: a,
			Planned: planned[a.ID],
			Actual:  actual[a.ID],
		})
	}

	return b, nil
}

// posted returns all transactions up to end for the accounts. Transactions
// booked on another month's version of an account are attributed to the
// version in accounts.
func (s *Service) posted(ctx context.Context, accounts []models.Account, end types.Date) ([]models.Transaction, error) {
	if len(accounts) == 0 {
		return []models.Transaction{}, nil
	}

	current := make(map[uuid.UUID]uuid.UUID, len(accounts))
	for _, a := range accounts {
		current[a.LineageID] = a.ID
	}

	versions, err := store.Query[models.Account](ctx, s.db, store.Filter{
		"lineage_id": store.In(maps.Keys(current)),
	}, store.Options{IncludeDeleted: true})
	if err != nil {
		return nil, err
	}

	version := make(map[uuid.UUID]uuid.UUID, len(versions))
	for _, v := range versions {
		version[v.ID] = current[v.LineageID]
	}

	transactions, err := store.Query[models.Transaction](ctx, s.db, store.Filter{
		"account_id": store.In(maps.Keys(version)),
		"date":       store.Lte(end),
	}, store.Options{OrderBy: "date"})
	if err != nil {
		return nil, err
	}

	for i := range transactions {
		transactions[i].AccountID = version[transactions[i].AccountID]
	}

	return transactions, nil
}
