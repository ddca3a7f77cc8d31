package projection

import (
	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeEvents synthesizes a positive event for every pay date in the window.
func IncomeEvents(sources []models.IncomeSource, start, end types.Date) []Event[uuid.UUID] {
	var events []Event[uuid.UUID]
	for _, s := range sources {
		events = append(events, Occurrences(s.AccountID, s.Amount, s.PayDates, start, end)...)
	}
	return events
}

// ExpenseEvents synthesizes a negative event for every due date in the
// window. Due dates after the recurrence end of an expense are skipped.
func ExpenseEvents(expenses []models.PlannedExpense, start, end types.Date) []Event[uuid.UUID] {
	var events []Event[uuid.UUID]
	for _, p := range expenses {
		events = append(events, Occurrences(p.AccountID, p.Amount.Neg(), p.DueDates, start, Until(end, p.RecurrenceEnd))...)
	}
	return events
}

// Until returns the earlier of end and the optional recurrence end.
func Until(end types.Date, recurrenceEnd *types.Date) types.Date {
	if recurrenceEnd != nil && recurrenceEnd.Before(end) {
		return *recurrenceEnd
	}
	return end
}

// StartingBalances maps every account to its starting balance.
func StartingBalances(accounts []models.Account) map[uuid.UUID]decimal.Decimal {
	balances := make(map[uuid.UUID]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = a.StartingBalance
	}
	return balances
}
