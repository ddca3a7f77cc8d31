package models

import (
	"strings"

	"github.com/carryforward/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is money that actually moved in or out of an account.
// Transactions are not versioned by month.
type Transaction struct {
	DefaultModel
	Date       types.Date      `json:"date" gorm:"index" example:"2024-02-15"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"200"` // Always positive, the direction is given by the type
	Type       TransactionType `json:"type" example:"expense"`
	AccountID  uuid.UUID       `json:"accountId" gorm:"type:uuid;index" example:"8d4e1a2a-1b36-4a44-8d5e-52f5e8a3c3a1"`
	CategoryID *uuid.UUID      `json:"categoryId" gorm:"type:uuid" example:"0b1c0d8e-7f9e-4c1b-a2b8-1f0f5f6a0e3d"`
	Note       string          `json:"note" example:"Groceries at the farmers market"`
}

func (t Transaction) Self() string {
	return "Transaction"
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	return t.Validate()
}

// Validate checks the transaction for consistency.
func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if t.Type != TransactionIncome && t.Type != TransactionExpense {
		return ErrTransactionTypeUnknown
	}

	if t.AccountID == uuid.Nil {
		return ErrAccountMissing
	}

	return nil
}

// Signed returns the amount with the sign of its direction.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
