// Package resolve decides which accounts, income sources, categories,
// planned expenses and goals are in effect for a month.
//
// A month that has never been configured inherits the configuration of the
// month the user edited most recently before it: all of its resources are
// copied forward with new ids and references rewritten to the copies.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/events"
	"github.com/carryforward/backend/pkg/models"
	"github.com/carryforward/backend/pkg/store"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrDonorNotBefore is returned when the donor lookup yields a month that is
// not strictly before the previous bound. It indicates a bug and guards the
// resolution loop against running forever.
var ErrDonorNotBefore = errors.New("donor month is not before the month being resolved")

// CarryForward is the payload of the events.MonthCarriedForward event.
type CarryForward struct {
	From types.Month `json:"from"`
	To   types.Month `json:"to"`
	Rows int         `json:"rows"`
}

// Resolver resolves months against the database. Resolutions are
// serialized so that a month is never copied forward twice.
type Resolver struct {
	db  *gorm.DB
	bus *events.Bus
	mu  sync.Mutex
}

func NewResolver(db *gorm.DB, bus *events.Bus) *Resolver {
	return &Resolver{db: db, bus: bus}
}

// Resolve returns the snapshot for the month, copying forward the most
// recently edited earlier month if the month has no resources yet.
//
// If nothing has ever been configured before the month, the empty snapshot
// is returned.
func (r *Resolver) Resolve(ctx context.Context, month types.Month) (Snapshot, error) {
	month = types.MonthOf(time.Time(month))

	r.mu.Lock()
	defer r.mu.Unlock()

	// Every iteration moves bound to a strictly earlier month, so the loop
	// ends after at most one iteration per month that has data.
	bound := month
	for {
		snapshot, err := r.Load(ctx, month)
		if err != nil {
			return Snapshot{}, err
		}

		if !snapshot.Empty() {
			return snapshot, nil
		}

		donor, found, err := r.LatestEditedBefore(ctx, bound)
		if err != nil {
			return Snapshot{}, err
		}

		if !found {
			return snapshot, nil
		}

		if !donor.Before(bound) {
			return Snapshot{}, fmt.Errorf("%w: donor %s, bound %s", ErrDonorNotBefore, donor, bound)
		}

		_, err = r.copyForward(ctx, donor, month)
		if err != nil {
			return Snapshot{}, err
		}

		bound = donor
	}
}

// Load reads the snapshot of the month without copying anything.
//
// The five tables are read in parallel, the first failure cancels the
// remaining reads and is returned.
func (r *Resolver) Load(ctx context.Context, month types.Month) (Snapshot, error) {
	s := Snapshot{Month: month}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { s.Accounts, err = inMonth[models.Account](ctx, r.db, month); return })
	g.Go(func() (err error) { s.IncomeSources, err = inMonth[models.IncomeSource](ctx, r.db, month); return })
	g.Go(func() (err error) { s.Categories, err = inMonth[models.Category](ctx, r.db, month); return })
	g.Go(func() (err error) { s.PlannedExpenses, err = inMonth[models.PlannedExpense](ctx, r.db, month); return })
	g.Go(func() (err error) { s.Goals, err = inMonth[models.Goal](ctx, r.db, month); return })

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return s, nil
}

func inMonth[T any](ctx context.Context, db *gorm.DB, month types.Month) ([]T, error) {
	return store.Query[T](ctx, db, store.Filter{
		"effective_from": store.Between(month.Start(), month.End()),
	}, store.Options{OrderBy: "created_at"})
}

// candidate is the most recently updated row of one table.
type candidate struct {
	found     bool
	updatedAt time.Time
	month     types.Month
}

// LatestEditedBefore returns the month of the most recently updated live
// resource that is effective before the month.
//
// This is the month the user touched last, not the closest month with data.
func (r *Resolver) LatestEditedBefore(ctx context.Context, month types.Month) (types.Month, bool, error) {
	var candidates [5]candidate
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { candidates[0], err = latest[models.Account](ctx, r.db, month); return })
	g.Go(func() (err error) { candidates[1], err = latest[models.IncomeSource](ctx, r.db, month); return })
	g.Go(func() (err error) { candidates[2], err = latest[models.Category](ctx, r.db, month); return })
	g.Go(func() (err error) { candidates[3], err = latest[models.PlannedExpense](ctx, r.db, month); return })
	g.Go(func() (err error) { candidates[4], err = latest[models.Goal](ctx, r.db, month); return })

	if err := g.Wait(); err != nil {
		return types.Month{}, false, err
	}

	var best candidate
	for _, c := range candidates {
		if c.found && (!best.found || c.updatedAt.After(best.updatedAt)) {
			best = c
		}
	}

	return best.month, best.found, nil
}

func latest[T any, P interface {
	*T
	models.Temporal
}](ctx context.Context, db *gorm.DB, before types.Month) (candidate, error) {
	row, found, err := store.First[T](ctx, db, store.Filter{
		"effective_from": store.Lt(before),
	}, store.Options{OrderBy: "updated_at", Order: store.Desc})
	if err != nil || !found {
		return candidate{}, err
	}

	t := P(&row).Temporal()
	return candidate{
		found:     true,
		updatedAt: t.UpdatedAt,
		month:     types.MonthOf(time.Time(t.EffectiveFrom)),
	}, nil
}
