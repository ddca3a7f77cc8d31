// Package projection computes daily account balances from cash events.
//
// The same calculation serves planning, where events are synthesized from
// pay dates and due dates, and the live dashboard, where events are posted
// transactions.
package projection

import (
	"github.com/carryforward/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Event is a signed cash movement on an account. Income is positive,
// expenses are negative.
type Event[K comparable] struct {
	Account K
	Date    types.Date
	Amount  decimal.Decimal
}

// Point is the balance of an account at the end of a day.
type Point struct {
	Date    types.Date      `json:"date" example:"2024-03-05"`
	Balance decimal.Decimal `json:"balance" example:"1400"`
}

// Series is the balance of an account for every day of a window, in order.
type Series []Point

// Last returns the final balance of the series, or false for an empty series.
func (s Series) Last() (decimal.Decimal, bool) {
	if len(s) == 0 {
		return decimal.Zero, false
	}
	return s[len(s)-1].Balance, true
}

// Project returns the daily balances from start to end, inclusive, for
// every account in opening.
//
// opening is the balance of each account at the start of the window. Events
// outside the window and events for accounts without an opening balance are
// ignored. If start is after end, every series is empty.
func Project[K comparable](opening map[K]decimal.Decimal, events []Event[K], start, end types.Date) map[K]Series {
	byAccount := make(map[K][]Event[K], len(opening))
	for _, e := range events {
		if _, ok := opening[e.Account]; !ok {
			continue
		}

		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}

		byAccount[e.Account] = append(byAccount[e.Account], e)
	}

	days := 0
	if !start.After(end) {
		days = int(end.Time().Sub(start.Time()).Hours()/24) + 1
	}

	result := make(map[K]Series, len(opening))
	for account, balance := range opening {
		pending := byAccount[account]
		slices.SortStableFunc(pending, func(a, b Event[K]) int { return a.Date.Compare(b.Date) })

		series := make(Series, 0, days)
		next := 0
		for day := start; !day.After(end); day = day.AddDays(1) {
			for next < len(pending) && !pending[next].Date.After(day) {
				balance = balance.Add(pending[next].Amount)
				next++
			}
			series = append(series, Point{Date: day, Balance: balance})
		}

		result[account] = series
	}

	return result
}

// Occurrences returns one event of amount for every date in the window.
//
// An entity paid on four dates contributes four events, the amount is never
// scaled.
func Occurrences[K comparable](account K, amount decimal.Decimal, dates types.DateList, start, end types.Date) []Event[K] {
	in := dates.Between(start, end)
	events := make([]Event[K], 0, len(in))
	for _, d := range in {
		events = append(events, Event[K]{Account: account, Date: d, Amount: amount})
	}
	return events
}
