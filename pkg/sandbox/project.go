package sandbox

import (
	"context"

	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/projection"
	"github.com/shopspring/decimal"
)

// Project computes the daily balances of all accounts of the session from
// the pay dates and due dates of its entities. Deleted entities are ignored.
func (m *Manager) Project(ctx context.Context, start, end types.Date) (map[ID]projection.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensure(ctx); err != nil {
		return nil, err
	}

	s := m.current
	opening := make(map[ID]decimal.Decimal, len(s.Accounts))
	for id, a := range s.Accounts {
		if !a.IsDeleted {
			opening[id] = a.StartingBalance
		}
	}

	var scheduled []projection.Event[ID]
	for _, i := range s.IncomeSources {
		if !i.IsDeleted {
			scheduled = append(scheduled, projection.Occurrences(i.AccountID, i.Amount, i.PayDates, start, end)...)
		}
	}
	for _, p := range s.PlannedExpenses {
		if !p.IsDeleted {
			scheduled = append(scheduled, projection.Occurrences(p.AccountID, p.Amount.Neg(), p.DueDates, start, projection.Until(end, p.RecurrenceEnd))...)
		}
	}

	return projection.Project(opening, scheduled, start, end), nil
}
