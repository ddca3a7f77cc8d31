package models

import (
	"strings"

	"github.com/carryforward/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings target.
type Goal struct {
	TemporalModel
	Name         string          `json:"name" example:"Vacation"`
	TargetAmount decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)" example:"3000"`
	TargetDate   *types.Date     `json:"targetDate" example:"2025-06-30"`
	FundedAmount decimal.Decimal `json:"fundedAmount" gorm:"type:DECIMAL(20,8)" example:"750"`
	AccountID    *uuid.UUID      `json:"accountId" gorm:"type:uuid" example:"8d4e1a2a-1b36-4a44-8d5e-52f5e8a3c3a1"` // Account the goal is saved in
}

func (g Goal) Self() string {
	return "Goal"
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	if g.AccountID != nil && *g.AccountID == uuid.Nil {
		g.AccountID = nil
	}

	return g.Validate()
}

// Validate checks the goal for consistency.
func (g Goal) Validate() error {
	if err := g.validateMonth(); err != nil {
		return err
	}

	if g.Name == "" {
		return ErrNameEmpty
	}

	if !g.TargetAmount.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	if g.FundedAmount.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

// Remaining is the amount still missing to reach the target.
func (g Goal) Remaining() decimal.Decimal {
	r := g.TargetAmount.Sub(g.FundedAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
