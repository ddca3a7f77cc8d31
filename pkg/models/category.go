package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups planned expenses within a bucket.
type Category struct {
	TemporalModel
	Name         string          `json:"name" example:"Groceries"`
	BucketID     uuid.UUID       `json:"bucketId" gorm:"type:uuid;index" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit" gorm:"type:DECIMAL(20,8)" example:"450"` // Optional spending limit, zero for none
}

func (c Category) Self() string {
	return "Category"
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return c.Validate()
}

// Validate checks the category for consistency.
func (c Category) Validate() error {
	if err := c.validateMonth(); err != nil {
		return err
	}

	if c.Name == "" {
		return ErrNameEmpty
	}

	if c.BucketID == uuid.Nil {
		return ErrBucketMissing
	}

	if c.MonthlyLimit.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}
