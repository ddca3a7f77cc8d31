package sandbox

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/models"
	"github.com/carryforward/backend/pkg/resolve"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Collection holds the entities of one kind, keyed by id.
type Collection[T any] map[ID]*T

// Session is an isolated working copy of the budget of one month.
//
// Changes to a session never reach the database, only saving it as a
// scenario does.
type Session struct {
	Month           types.Month                `json:"month" example:"2024-03-01T00:00:00Z"`
	Accounts        Collection[Account]        `json:"accounts"`
	IncomeSources   Collection[IncomeSource]   `json:"incomeSources"`
	Categories      Collection[Category]       `json:"categories"`
	PlannedExpenses Collection[PlannedExpense] `json:"plannedExpenses"`
	Goals           Collection[Goal]           `json:"goals"`
	Buckets         []models.Bucket            `json:"buckets"`
	NextLocal       int64                      `json:"nextLocal"` // Last pending id that was allocated
}

func newSession(month types.Month) *Session {
	s := &Session{Month: month}
	s.init()
	return s
}

// init replaces nil collections with empty ones.
func (s *Session) init() {
	if s.Accounts == nil {
		s.Accounts = Collection[Account]{}
	}
	if s.IncomeSources == nil {
		s.IncomeSources = Collection[IncomeSource]{}
	}
	if s.Categories == nil {
		s.Categories = Collection[Category]{}
	}
	if s.PlannedExpenses == nil {
		s.PlannedExpenses = Collection[PlannedExpense]{}
	}
	if s.Goals == nil {
		s.Goals = Collection[Goal]{}
	}
	if s.Buckets == nil {
		s.Buckets = []models.Bucket{}
	}
}

// fromSnapshot builds a session from a resolved month.
func fromSnapshot(snapshot resolve.Snapshot, buckets []models.Bucket) *Session {
	s := newSession(snapshot.Month)
	s.Buckets = slices.Clone(buckets)

	for _, a := range snapshot.Accounts {
		s.Accounts[Persisted(a.ID)] = accountOf(a)
	}
	for _, i := range snapshot.IncomeSources {
		s.IncomeSources[Persisted(i.ID)] = incomeSourceOf(i)
	}
	for _, c := range snapshot.Categories {
		s.Categories[Persisted(c.ID)] = categoryOf(c)
	}
	for _, p := range snapshot.PlannedExpenses {
		s.PlannedExpenses[Persisted(p.ID)] = plannedExpenseOf(p)
	}
	for _, g := range snapshot.Goals {
		s.Goals[Persisted(g.ID)] = goalOf(g)
	}

	return s
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	return &Session{
		Month:           s.Month,
		Accounts:        cloneCollection(s.Accounts),
		IncomeSources:   cloneCollection(s.IncomeSources),
		Categories:      cloneCollection(s.Categories),
		PlannedExpenses: cloneCollection(s.PlannedExpenses),
		Goals:           cloneCollection(s.Goals),
		Buckets:         slices.Clone(s.Buckets),
		NextLocal:       s.NextLocal,
	}
}

func cloneCollection[T any, P entity[T]](c Collection[T]) Collection[T] {
	n := make(Collection[T], len(c))
	for id, e := range c {
		n[id] = P(e).clone()
	}
	return n
}

// allocate returns a new pending id.
func (s *Session) allocate() ID {
	s.NextLocal++
	return Pending(s.NextLocal)
}

// table returns the collection of the kind.
func (s *Session) table(k Kind) (table, error) {
	switch k {
	case KindAccounts:
		return typedTable[Account, *Account]{s.Accounts}, nil
	case KindIncomeSources:
		return typedTable[IncomeSource, *IncomeSource]{s.IncomeSources}, nil
	case KindCategories:
		return typedTable[Category, *Category]{s.Categories}, nil
	case KindPlannedExpenses:
		return typedTable[PlannedExpense, *PlannedExpense]{s.PlannedExpenses}, nil
	case KindGoals:
		return typedTable[Goal, *Goal]{s.Goals}, nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownKind, k)
}

// table is the kind independent view of a collection. All returned entities
// are copies.
type table interface {
	get(id ID) (any, error)
	list() []any
	create(id ID, data []byte, meta Meta) (any, error)
	update(id ID, changes []byte, now time.Time) (any, error)
	remove(id ID, now time.Time) (any, error)
}

type typedTable[T any, P entity[T]] struct {
	c Collection[T]
}

func (t typedTable[T, P]) get(id ID) (any, error) {
	e, ok := t.c[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, id)
	}
	return P(e).clone(), nil
}

// list returns the entities that are not deleted, oldest first.
func (t typedTable[T, P]) list() []any {
	ids := maps.Keys(t.c)
	slices.SortFunc(ids, func(a, b ID) int {
		if c := P(t.c[a]).meta().CreatedAt.Compare(P(t.c[b]).meta().CreatedAt); c != 0 {
			return c
		}
		return compareIDs(a, b)
	})

	entities := make([]any, 0, len(ids))
	for _, id := range ids {
		e := P(t.c[id])
		if e.meta().IsDeleted {
			continue
		}
		entities = append(entities, e.clone())
	}
	return entities
}

func (t typedTable[T, P]) create(id ID, data []byte, meta Meta) (any, error) {
	var e T
	if err := decode(data, &e); err != nil {
		return nil, err
	}

	p := P(&e)
	*p.meta() = meta
	if err := p.validate(); err != nil {
		return nil, err
	}

	t.c[id] = &e
	return p.clone(), nil
}

// update merges the JSON changes into the entity. Fields that are not part
// of changes keep their value.
func (t typedTable[T, P]) update(id ID, changes []byte, now time.Time) (any, error) {
	current, ok := t.c[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, id)
	}

	next := P(P(current).clone())
	meta := *next.meta()
	if err := decode(changes, (*T)(next)); err != nil {
		return nil, err
	}

	*next.meta() = meta
	next.meta().UpdatedAt = now
	if err := next.validate(); err != nil {
		return nil, err
	}

	t.c[id] = (*T)(next)
	return next.clone(), nil
}

func (t typedTable[T, P]) remove(id ID, now time.Time) (any, error) {
	e, ok := t.c[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, id)
	}

	p := P(e)
	p.meta().IsDeleted = true
	p.meta().UpdatedAt = now
	return p.clone(), nil
}

// decode strictly decodes JSON into v.
func decode(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}

	d := json.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	return nil
}

// compareIDs orders persisted ids before pending ones.
func compareIDs(a, b ID) int {
	switch {
	case a.IsPending() && b.IsPending():
		return cmp.Compare(a.local, b.local)
	case a.IsPending():
		return 1
	case b.IsPending():
		return -1
	}

	return bytes.Compare(a.persisted[:], b.persisted[:])
}
