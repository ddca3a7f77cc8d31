package resolve

import (
	"context"

	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/events"
	"github.com/carryforward/backend/pkg/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	carryForwards = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carry_forwards_total",
		Help: "How many months have been configured by copying an earlier month.",
	})

	carriedRows = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carry_forward_rows_total",
		Help: "How many resources have been copied forward.",
	})
)

// Collectors returns the Prometheus metrics of the package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{carryForwards, carriedRows}
}

// idMap maps the ids of donor resources to the ids of their copies.
type idMap map[uuid.UUID]uuid.UUID

// of returns the id of the copy. References to resources outside the donor
// month are kept as they are.
func (m idMap) of(id uuid.UUID) uuid.UUID {
	if n, ok := m[id]; ok {
		return n
	}
	return id
}

func (m idMap) ofPtr(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	n := m.of(*id)
	return &n
}

// copyForward copies every resource of the donor month into the target month.
//
// Tables are copied in dependency order so that references can be rewritten
// to the new ids. All inserts happen in one transaction: either the whole
// month is copied or nothing is. If the target month already has resources
// when the transaction starts, nothing is copied.
func (r *Resolver) copyForward(ctx context.Context, donor, target types.Month) (int, error) {
	source, err := r.Load(ctx, donor)
	if err != nil {
		return 0, err
	}

	if source.Empty() {
		return 0, nil
	}

	ids := idMap{}
	skipped := false
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		configured, err := hasResources(tx, target)
		if err != nil {
			return err
		}

		if configured {
			skipped = true
			return nil
		}

		err = copyRows(tx, source.Accounts, target, ids, nil)
		if err != nil {
			return err
		}

		err = copyRows(tx, source.Categories, target, ids, nil)
		if err != nil {
			return err
		}

		err = copyRows(tx, source.IncomeSources, target, ids, func(i *models.IncomeSource) {
			i.AccountID = ids.of(i.AccountID)
		})
		if err != nil {
			return err
		}

		err = copyRows(tx, source.PlannedExpenses, target, ids, func(p *models.PlannedExpense) {
			p.AccountID = ids.of(p.AccountID)
			p.CategoryID = ids.ofPtr(p.CategoryID)
		})
		if err != nil {
			return err
		}

		return copyRows(tx, source.Goals, target, ids, func(g *models.Goal) {
			g.AccountID = ids.ofPtr(g.AccountID)
		})
	})
	if err != nil {
		return 0, err
	}

	if skipped {
		log.Debug().Str("month", target.String()).Msg("month was configured concurrently, not copying")
		return 0, nil
	}

	rows := source.Len()
	carryForwards.Inc()
	carriedRows.Add(float64(rows))

	log.Info().Str("from", donor.String()).Str("to", target.String()).Int("rows", rows).Msg("carried month forward")
	r.bus.Emit(events.MonthCarriedForward, CarryForward{From: donor, To: target, Rows: rows})

	return rows, nil
}

// hasResources reports whether any temporal table has a live row in the
// month. It runs on tx so that it sees the state inside the transaction.
func hasResources(tx *gorm.DB, month types.Month) (bool, error) {
	for _, model := range []any{&models.Account{}, &models.Category{}, &models.IncomeSource{}, &models.PlannedExpense{}, &models.Goal{}} {
		var n int64
		err := tx.Model(model).
			Where("effective_from BETWEEN ? AND ?", month.Start(), month.End()).
			Limit(1).
			Count(&n).Error
		if err != nil {
			return false, err
		}

		if n > 0 {
			return true, nil
		}
	}

	return false, nil
}

// copyRows inserts a copy of every row for the target month and records the
// new ids. remap rewrites references before the insert.
func copyRows[T any, P interface {
	*T
	models.Temporal
}](tx *gorm.DB, rows []T, target types.Month, ids idMap, remap func(P)) error {
	for i := range rows {
		row := P(&rows[i])
		old := row.Temporal().ID

		row.Temporal().ResetForCopy(target)
		if remap != nil {
			remap(row)
		}

		if err := tx.Create(row).Error; err != nil {
			return err
		}

		ids[old] = row.Temporal().ID
	}

	return nil
}
