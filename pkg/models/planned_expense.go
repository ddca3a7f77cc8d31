package models

import (
	"strings"

	"github.com/carryforward/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlannedExpense is a bill or other expected spending paid from an account
// on a list of due dates.
type PlannedExpense struct {
	TemporalModel
	Name          string          `json:"name" example:"Rent"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1200"` // Amount due on every due date
	BucketID      *uuid.UUID      `json:"bucketId" gorm:"type:uuid" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	CategoryID    *uuid.UUID      `json:"categoryId" gorm:"type:uuid;index" example:"0b1c0d8e-7f9e-4c1b-a2b8-1f0f5f6a0e3d"`
	AccountID     uuid.UUID       `json:"accountId" gorm:"type:uuid;index" example:"8d4e1a2a-1b36-4a44-8d5e-52f5e8a3c3a1"` // The account paying the expense
	DueDates      types.DateList  `json:"dueDates" example:"2024-03-01"`
	Recurring     bool            `json:"recurring" example:"true" default:"false"`
	RecurrenceEnd *types.Date     `json:"recurrenceEnd" example:"2024-12-31"` // Last day the expense recurs on
}

func (p PlannedExpense) Self() string {
	return "Planned Expense"
}

func (p *PlannedExpense) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.DueDates == nil {
		p.DueDates = types.DateList{}
	}

	// Ensure that optional references are nil and not a pointer to a nil UUID
	if p.BucketID != nil && *p.BucketID == uuid.Nil {
		p.BucketID = nil
	}
	if p.CategoryID != nil && *p.CategoryID == uuid.Nil {
		p.CategoryID = nil
	}

	return p.Validate()
}

// Validate checks the planned expense for consistency.
func (p PlannedExpense) Validate() error {
	if err := p.validateMonth(); err != nil {
		return err
	}

	if p.Name == "" {
		return ErrNameEmpty
	}

	if p.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if p.AccountID == uuid.Nil {
		return ErrAccountMissing
	}

	if p.RecurrenceEnd != nil && !p.Recurring {
		return ErrRecurrenceEndInvalid
	}

	return nil
}
