package models

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Bucket is one entry of the small fixed taxonomy categories and planned
// expenses are filed under. Buckets are not versioned by month.
type Bucket struct {
	DefaultModel
	Name     string `json:"name" gorm:"uniqueIndex" example:"Needs"`
	Position int    `json:"position" example:"1"`
}

func (b Bucket) Self() string {
	return "Bucket"
}

func (b *Bucket) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return ErrNameEmpty
	}
	return nil
}

// DefaultBuckets is the taxonomy seeded on migration.
var DefaultBuckets = []string{"Needs", "Wants", "Savings", "Debt", "Giving"}

// seedBuckets creates all default buckets that do not exist yet.
func seedBuckets(db *gorm.DB) error {
	for i, name := range DefaultBuckets {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&Bucket{Name: name, Position: i + 1}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
