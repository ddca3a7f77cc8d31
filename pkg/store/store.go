// Package store implements the persistent record store used by month
// resolution and the sandbox.
//
// Every function works on any gorm model. Deleting is always a soft delete,
// deleted records are excluded from all reads unless requested explicitly.
// Errors wrap the sentinel errors of the models package: ErrValidation for
// records rejected by the model hooks, ErrResourceNotFound, ErrInvalidFilter
// and ErrGeneral for everything the database reports.
package store

import (
	"context"
	"fmt"

	"github.com/carryforward/backend/pkg/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Insert validates and creates the record. The id and the timestamps are
// assigned by the database layer.
func Insert[T any](ctx context.Context, db *gorm.DB, record T) (T, error) {
	err := db.WithContext(ctx).Create(&record).Error
	if err != nil {
		var zero T
		return zero, err
	}

	return record, nil
}

// GetByID returns the record with the given id.
func GetByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, o ...Options) (T, error) {
	var record T

	tx := db.WithContext(ctx)
	if len(o) > 0 && o[0].IncludeDeleted {
		tx = tx.Unscoped()
	}

	err := tx.First(&record, "id = ?", id).Error
	return record, err
}

// Update loads the record, applies the changes and saves it again.
//
// The updated record is validated by the model hooks before it is written.
func Update[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, changes func(*T)) (T, error) {
	var record T

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&record, "id = ?", id).Error
		if err != nil {
			return err
		}

		changes(&record)
		return tx.Save(&record).Error
	})

	if err != nil {
		var zero T
		return zero, err
	}

	return record, nil
}

// Delete marks the record as deleted. It stays in the database.
func Delete[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	tx := db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return notFound(tx, new(T))
	}

	return nil
}

// Query returns all records matching the filter.
func Query[T any](ctx context.Context, db *gorm.DB, f Filter, o Options) ([]T, error) {
	tx, err := apply(db.WithContext(ctx).Model(new(T)), new(T), f, o)
	if err != nil {
		return nil, err
	}

	records := []T{}
	err = tx.Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// First returns the first record matching the filter and options.
func First[T any](ctx context.Context, db *gorm.DB, f Filter, o Options) (T, bool, error) {
	o.Limit = 1

	records, err := Query[T](ctx, db, f, o)
	if err != nil || len(records) == 0 {
		var zero T
		return zero, false, err
	}

	return records[0], true, nil
}

func notFound(tx *gorm.DB, model any) error {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return models.ErrResourceNotFound
	}

	return fmt.Errorf("%w %s matching your query", models.ErrResourceNotFound, stmt.Schema.Table)
}
