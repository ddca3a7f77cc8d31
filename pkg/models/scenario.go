package models

import (
	"strings"

	"github.com/carryforward/backend/internal/types"
	"gorm.io/gorm"
)

// Scenario is a named, serialized copy of a sandbox session.
//
// Data is opaque to the store.
type Scenario struct {
	DefaultModel
	Name  string      `json:"name" example:"Move to a cheaper flat"`
	Month types.Month `json:"month" example:"2024-03-01T00:00:00Z"` // The month the sandbox was bootstrapped from
	Data  string      `json:"-" gorm:"type:text"`
}

func (s Scenario) Self() string {
	return "Scenario"
}

func (s *Scenario) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return ErrNameEmpty
	}
	return nil
}
