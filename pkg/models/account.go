package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountCash       AccountType = "cash"
	AccountInvestment AccountType = "investment"
)

// Account is a bank account, wallet or card for one month.
type Account struct {
	TemporalModel
	Name            string          `json:"name" example:"Checking"`
	Institution     string          `json:"institution" example:"Acme Bank"`
	Type            AccountType     `json:"type" example:"checking" default:"checking"`
	StartingBalance decimal.Decimal `json:"startingBalance" gorm:"type:DECIMAL(20,8)" example:"1000"` // Balance at the start of the month
}

func (a Account) Self() string {
	return "Account"
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Institution = strings.TrimSpace(a.Institution)

	if a.Type == "" {
		a.Type = AccountChecking
	}

	return a.Validate()
}

// Validate checks the account for consistency.
func (a Account) Validate() error {
	if err := a.validateMonth(); err != nil {
		return err
	}

	if a.Name == "" {
		return ErrNameEmpty
	}

	switch a.Type {
	case AccountChecking, AccountSavings, AccountCredit, AccountCash, AccountInvestment:
	default:
		return ErrAccountTypeUnknown
	}

	return nil
}
