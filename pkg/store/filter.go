package store

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/carryforward/backend/pkg/models"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type operator string

const (
	opEq      operator = "="
	opIn      operator = "IN"
	opGt      operator = ">"
	opGte     operator = ">="
	opLt      operator = "<"
	opLte     operator = "<="
	opBetween operator = "BETWEEN"
)

// Condition is a single comparison applied to a column.
type Condition struct {
	op     operator
	values []any
}

// Eq matches rows where the column equals v.
func Eq(v any) Condition { return Condition{op: opEq, values: []any{v}} }

// In matches rows where the column is one of vs.
func In(vs ...any) Condition { return Condition{op: opIn, values: vs} }

func Gt(v any) Condition  { return Condition{op: opGt, values: []any{v}} }
func Gte(v any) Condition { return Condition{op: opGte, values: []any{v}} }
func Lt(v any) Condition  { return Condition{op: opLt, values: []any{v}} }
func Lte(v any) Condition { return Condition{op: opLte, values: []any{v}} }

// Between matches rows where the column is in the inclusive range [a, b].
func Between(a, b any) Condition { return Condition{op: opBetween, values: []any{a, b}} }

// Filter maps column names to the condition that must hold for them.
// All conditions must hold.
type Filter map[string]Condition

// Order is the sort direction for query results.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Options modify how a query is executed.
type Options struct {
	IncludeDeleted bool
	OrderBy        string
	Order          Order
	Limit          int
}

func (c Condition) valid() error {
	switch c.op {
	case opEq, opGt, opGte, opLt, opLte:
		if len(c.values) != 1 {
			return fmt.Errorf("%w: %s needs exactly one value", models.ErrInvalidFilter, c.op)
		}
	case opIn:
		if len(c.values) == 0 {
			return fmt.Errorf("%w: IN needs at least one value", models.ErrInvalidFilter)
		}
	case opBetween:
		if len(c.values) != 2 {
			return fmt.Errorf("%w: BETWEEN needs exactly two values", models.ErrInvalidFilter)
		}
	default:
		return fmt.Errorf("%w: unknown operator", models.ErrInvalidFilter)
	}

	for _, v := range c.values {
		if v == nil {
			return fmt.Errorf("%w: nil value for %s", models.ErrInvalidFilter, c.op)
		}
	}

	return nil
}

// column resolves a field or column name of the schema to its database
// column name.
func column(s *schema.Schema, name string) (string, error) {
	field := s.LookUpField(name)
	if field == nil || field.DBName == "" {
		return "", fmt.Errorf("%w: %s has no column %q", models.ErrInvalidFilter, s.Table, name)
	}
	return field.DBName, nil
}

// apply validates the filter and options against the schema of the model
// and adds the matching clauses to the query.
func apply(tx *gorm.DB, model any, f Filter, o Options) (*gorm.DB, error) {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidFilter, err)
	}

	// Iterate in a stable order so that generated SQL is deterministic
	keys := maps.Keys(f)
	slices.Sort(keys)

	for _, name := range keys {
		c := f[name]
		if err := c.valid(); err != nil {
			return nil, fmt.Errorf("%w (column %s)", err, name)
		}

		col, err := column(stmt.Schema, name)
		if err != nil {
			return nil, err
		}
		quoted := tx.Statement.Quote(col)

		switch c.op {
		case opIn:
			tx = tx.Where(fmt.Sprintf("%s IN ?", quoted), flatten(c.values))
		case opBetween:
			tx = tx.Where(fmt.Sprintf("%s BETWEEN ? AND ?", quoted), c.values[0], c.values[1])
		default:
			tx = tx.Where(fmt.Sprintf("%s %s ?", quoted, c.op), c.values[0])
		}
	}

	if o.IncludeDeleted {
		tx = tx.Unscoped()
	}

	if o.OrderBy != "" {
		col, err := column(stmt.Schema, o.OrderBy)
		if err != nil {
			return nil, err
		}

		direction := strings.ToLower(string(o.Order))
		switch direction {
		case "", string(Asc):
			direction = "ASC"
		case string(Desc):
			direction = "DESC"
		default:
			return nil, fmt.Errorf("%w: unknown order %q", models.ErrInvalidFilter, o.Order)
		}

		tx = tx.Order(fmt.Sprintf("%s %s", tx.Statement.Quote(col), direction))
	}

	if o.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", models.ErrInvalidFilter)
	}
	if o.Limit > 0 {
		tx = tx.Limit(o.Limit)
	}

	return tx, nil
}

// flatten allows In to be called with a single slice argument as well as
// with variadic values.
func flatten(values []any) []any {
	if len(values) != 1 {
		return values
	}

	v := reflect.ValueOf(values[0])
	if v.Kind() != reflect.Slice || v.Type().Elem().Kind() == reflect.Uint8 {
		return values
	}

	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out
}
