package models

import (
	"strings"

	"github.com/carryforward/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeSource is a paycheck or other income that is paid into an account
// on a list of dates.
type IncomeSource struct {
	TemporalModel
	Name      string          `json:"name" example:"Salary"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"400"` // Amount paid on every pay date
	AccountID uuid.UUID       `json:"accountId" gorm:"type:uuid;index" example:"8d4e1a2a-1b36-4a44-8d5e-52f5e8a3c3a1"`
	PayDates  types.DateList  `json:"payDates" example:"2024-03-05,2024-03-19"`
}

func (i IncomeSource) Self() string {
	return "Income Source"
}

func (i *IncomeSource) BeforeSave(_ *gorm.DB) error {
	i.Name = strings.TrimSpace(i.Name)
	if i.PayDates == nil {
		i.PayDates = types.DateList{}
	}

	return i.Validate()
}

// Validate checks the income source for consistency.
func (i IncomeSource) Validate() error {
	if err := i.validateMonth(); err != nil {
		return err
	}

	if i.Name == "" {
		return ErrNameEmpty
	}

	if i.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if i.AccountID == uuid.Nil {
		return ErrAccountMissing
	}

	return nil
}
