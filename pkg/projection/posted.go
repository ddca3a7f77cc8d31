package projection

import (
	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpeningBalances returns the balance of every account at the start of the
// window: its starting balance plus every transaction posted before start.
//
// starting is not modified.
func OpeningBalances(starting map[uuid.UUID]decimal.Decimal, transactions []models.Transaction, start types.Date) map[uuid.UUID]decimal.Decimal {
	opening := make(map[uuid.UUID]decimal.Decimal, len(starting))
	for id, b := range starting {
		opening[id] = b
	}

	for _, t := range transactions {
		b, ok := opening[t.AccountID]
		if !ok || !t.Date.Before(start) {
			continue
		}
		opening[t.AccountID] = b.Add(t.Signed())
	}

	return opening
}

// PostedEvents turns the transactions in the window into events.
func PostedEvents(transactions []models.Transaction, start, end types.Date) []Event[uuid.UUID] {
	var events []Event[uuid.UUID]
	for _, t := range transactions {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		events = append(events, Event[uuid.UUID]{Account: t.AccountID, Date: t.Date, Amount: t.Signed()})
	}
	return events
}
