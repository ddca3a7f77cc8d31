package models

import (
	"time"

	"github.com/carryforward/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base model for all models.
type DefaultModel struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID for the resource
	Timestamps
}

// Timestamps only contains the timestamps that gorm sets automatically.
type Timestamps struct {
	CreatedAt time.Time      `json:"createdAt" example:"2022-04-02T19:28:44.491514Z"`              // Time the resource was created
	UpdatedAt time.Time      `json:"updatedAt" example:"2022-04-17T20:14:01.048145Z"`              // Last time the resource was updated
	DeletedAt gorm.DeletedAt `json:"deletedAt" gorm:"index" example:"2022-04-22T21:01:05.058161Z"` // Time the resource was marked as deleted
}

// IsDeleted reports if the resource has been soft deleted.
func (t Timestamps) IsDeleted() bool {
	return t.DeletedAt.Valid
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	if m.DeletedAt.Valid {
		m.DeletedAt.Time = m.DeletedAt.Time.In(time.UTC)
	}

	return nil
}

// BeforeCreate generates a UUID for the resource unless one is set.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TemporalModel is the base for all resources that are versioned by month.
//
// The same logical account has one row per month it is configured in, the
// EffectiveFrom month tells them apart.
type TemporalModel struct {
	DefaultModel
	EffectiveFrom types.Month `json:"effectiveFrom" gorm:"index;not null" example:"2024-03-01T00:00:00Z"`              // First day of the month this version applies to
	LineageID     uuid.UUID   `json:"lineageId" gorm:"type:uuid;index" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the first version, shared by all copies
}

// BeforeCreate generates the ID. A resource that is not a copy starts a new
// lineage.
func (t *TemporalModel) BeforeCreate(tx *gorm.DB) (err error) {
	_ = t.DefaultModel.BeforeCreate(tx)

	if t.LineageID == uuid.Nil {
		t.LineageID = t.ID
	}
	return nil
}

// Temporal returns the embedded TemporalModel so that generic code can
// reset ids, timestamps and the effective month.
func (t *TemporalModel) Temporal() *TemporalModel {
	return t
}

// ResetForCopy prepares a loaded row to be inserted as a new version for
// the month m. The lineage is kept.
func (t *TemporalModel) ResetForCopy(m types.Month) {
	t.ID = uuid.Nil
	t.CreatedAt = time.Time{}
	t.UpdatedAt = time.Time{}
	t.DeletedAt = gorm.DeletedAt{}
	t.EffectiveFrom = m
}

func (t TemporalModel) validateMonth() error {
	if t.EffectiveFrom.IsZero() {
		return ErrEffectiveFromMissing
	}
	return nil
}

// Temporal is implemented by pointers to all month-versioned models.
type Temporal interface {
	Temporal() *TemporalModel
}
