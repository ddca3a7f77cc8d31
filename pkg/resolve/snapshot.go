package resolve

import (
	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/models"
)

// Snapshot is the set of live temporal resources effective in a month.
type Snapshot struct {
	Month           types.Month             `json:"month" example:"2024-03-01T00:00:00Z"`
	Accounts        []models.Account        `json:"accounts"`
	IncomeSources   []models.IncomeSource   `json:"incomeSources"`
	Categories      []models.Category       `json:"categories"`
	PlannedExpenses []models.PlannedExpense `json:"plannedExpenses"`
	Goals           []models.Goal           `json:"goals"`
}

// Len is the number of resources across all tables.
func (s Snapshot) Len() int {
	return len(s.Accounts) + len(s.IncomeSources) + len(s.Categories) + len(s.PlannedExpenses) + len(s.Goals)
}

// Empty reports if the month has no resources in any table.
//
// A month with resources in only one table counts as configured.
func (s Snapshot) Empty() bool {
	return s.Len() == 0
}
