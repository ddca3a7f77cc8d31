package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var pluralIES = regexp.MustCompile("ies$")

// Connect opens the database, migrates all models and registers the
// callbacks that translate database errors.
func Connect(dialector gorm.Dialector) (*gorm.DB, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	if db.Dialector.Name() == "sqlite" {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	if err := registerCallbacks(db); err != nil {
		return nil, err
	}

	return db, nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "carryforward:after_query", queryCallback},
		{db.Callback().Query().After("*"), "carryforward:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "carryforward:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "carryforward:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "carryforward:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return err
		}
	}

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		name = pluralIES.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// Migrate migrates all models to the schema defined in the code and seeds
// the bucket taxonomy.
func Migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Bucket{}, Account{}, IncomeSource{}, Category{}, PlannedExpense{}, Goal{}, Transaction{}, Scenario{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	err = seedBuckets(db)
	if err != nil {
		return fmt.Errorf("error seeding buckets: %w", err)
	}

	return nil
}
