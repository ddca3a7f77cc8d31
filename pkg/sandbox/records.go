package sandbox

import (
	"strings"
	"time"

	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind names a collection of the session.
type Kind string

const (
	KindAccounts        Kind = "accounts"
	KindIncomeSources   Kind = "income-sources"
	KindCategories      Kind = "categories"
	KindPlannedExpenses Kind = "planned-expenses"
	KindGoals           Kind = "goals"
)

// Kinds lists all kinds in dependency order.
var Kinds = []Kind{KindAccounts, KindCategories, KindIncomeSources, KindPlannedExpenses, KindGoals}

// Meta holds the fields every sandbox entity has. They are managed by the
// session and cannot be changed by updates.
type Meta struct {
	ID            ID          `json:"id" example:"l:1"`
	EffectiveFrom types.Month `json:"effectiveFrom" example:"2024-03-01T00:00:00Z"`
	IsDeleted     bool        `json:"isDeleted" example:"false"`
	CreatedAt     time.Time   `json:"createdAt" example:"2024-03-02T09:12:44Z"`
	UpdatedAt     time.Time   `json:"updatedAt" example:"2024-03-02T09:12:44Z"`
}

func (m *Meta) meta() *Meta {
	return m
}

func metaOf(t models.TemporalModel) Meta {
	return Meta{
		ID:            Persisted(t.ID),
		EffectiveFrom: t.EffectiveFrom,
		IsDeleted:     t.IsDeleted(),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (m Meta) temporal() models.TemporalModel {
	return models.TemporalModel{EffectiveFrom: m.EffectiveFrom}
}

// entity is implemented by pointers to all sandbox records.
type entity[T any] interface {
	*T
	meta() *Meta
	clone() *T
	validate() error
}

type Account struct {
	Meta
	Name            string             `json:"name" example:"Checking"`
	Institution     string             `json:"institution" example:"Acme Bank"`
	Type            models.AccountType `json:"type" example:"checking"`
	StartingBalance decimal.Decimal    `json:"startingBalance" example:"1000"`
}

func accountOf(a models.Account) *Account {
	return &Account{
		Meta:            metaOf(a.TemporalModel),
		Name:            a.Name,
		Institution:     a.Institution,
		Type:            a.Type,
		StartingBalance: a.StartingBalance,
	}
}

func (a *Account) clone() *Account {
	c := *a
	return &c
}

func (a *Account) validate() error {
	a.Name = strings.TrimSpace(a.Name)
	a.Institution = strings.TrimSpace(a.Institution)
	if a.Type == "" {
		a.Type = models.AccountChecking
	}

	return models.Account{
		TemporalModel:   a.temporal(),
		Name:            a.Name,
		Type:            a.Type,
		StartingBalance: a.StartingBalance,
	}.Validate()
}

type IncomeSource struct {
	Meta
	Name      string          `json:"name" example:"Salary"`
	Amount    decimal.Decimal `json:"amount" example:"400"`
	AccountID ID              `json:"accountId" example:"p:8d4e1a2a-1b36-4a44-8d5e-52f5e8a3c3a1"`
	PayDates  types.DateList  `json:"payDates"`
}

func incomeSourceOf(i models.IncomeSource) *IncomeSource {
	return &IncomeSource{
		Meta:      metaOf(i.TemporalModel),
		Name:      i.Name,
		Amount:    i.Amount,
		AccountID: Persisted(i.AccountID),
		PayDates:  i.PayDates.Clone(),
	}
}

func (i *IncomeSource) clone() *IncomeSource {
	c := *i
	c.PayDates = i.PayDates.Clone()
	return &c
}

func (i *IncomeSource) validate() error {
	i.Name = strings.TrimSpace(i.Name)
	if i.PayDates == nil {
		i.PayDates = types.DateList{}
	}

	return models.IncomeSource{
		TemporalModel: i.temporal(),
		Name:          i.Name,
		Amount:        i.Amount,
		AccountID:     i.AccountID.ref(),
	}.Validate()
}

type Category struct {
	Meta
	Name         string          `json:"name" example:"Groceries"`
	BucketID     uuid.UUID       `json:"bucketId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit" example:"450"`
}

func categoryOf(c models.Category) *Category {
	return &Category{
		Meta:         metaOf(c.TemporalModel),
		Name:         c.Name,
		BucketID:     c.BucketID,
		MonthlyLimit: c.MonthlyLimit,
	}
}

func (c *Category) clone() *Category {
	n := *c
	return &n
}

func (c *Category) validate() error {
	c.Name = strings.TrimSpace(c.Name)

	return models.Category{
		TemporalModel: c.temporal(),
		Name:          c.Name,
		BucketID:      c.BucketID,
		MonthlyLimit:  c.MonthlyLimit,
	}.Validate()
}

type PlannedExpense struct {
	Meta
	Name          string          `json:"name" example:"Rent"`
	Amount        decimal.Decimal `json:"amount" example:"1200"`
	BucketID      *uuid.UUID      `json:"bucketId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	CategoryID    *ID             `json:"categoryId" example:"l:2"`
	AccountID     ID              `json:"accountId" example:"p:8d4e1a2a-1b36-4a44-8d5e-52f5e8a3c3a1"`
	DueDates      types.DateList  `json:"dueDates"`
	Recurring     bool            `json:"recurring" example:"true"`
	RecurrenceEnd *types.Date     `json:"recurrenceEnd" example:"2024-12-31"`
}

func plannedExpenseOf(p models.PlannedExpense) *PlannedExpense {
	e := &PlannedExpense{
		Meta:       metaOf(p.TemporalModel),
		Name:       p.Name,
		Amount:     p.Amount,
		CategoryID: persistedPtr(p.CategoryID),
		AccountID:  Persisted(p.AccountID),
		DueDates:   p.DueDates.Clone(),
		Recurring:  p.Recurring,
	}

	if p.BucketID != nil {
		b := *p.BucketID
		e.BucketID = &b
	}

	if p.RecurrenceEnd != nil {
		end := *p.RecurrenceEnd
		e.RecurrenceEnd = &end
	}

	return e
}

func (p *PlannedExpense) clone() *PlannedExpense {
	c := *p
	c.DueDates = p.DueDates.Clone()

	if p.BucketID != nil {
		b := *p.BucketID
		c.BucketID = &b
	}

	if p.CategoryID != nil {
		id := *p.CategoryID
		c.CategoryID = &id
	}

	if p.RecurrenceEnd != nil {
		end := *p.RecurrenceEnd
		c.RecurrenceEnd = &end
	}

	return &c
}

func (p *PlannedExpense) validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.DueDates == nil {
		p.DueDates = types.DateList{}
	}
	if p.CategoryID != nil && p.CategoryID.IsZero() {
		p.CategoryID = nil
	}

	return models.PlannedExpense{
		TemporalModel: p.temporal(),
		Name:          p.Name,
		Amount:        p.Amount,
		CategoryID:    refPtr(p.CategoryID),
		AccountID:     p.AccountID.ref(),
		Recurring:     p.Recurring,
		RecurrenceEnd: p.RecurrenceEnd,
	}.Validate()
}

type Goal struct {
	Meta
	Name         string          `json:"name" example:"Vacation"`
	TargetAmount decimal.Decimal `json:"targetAmount" example:"3000"`
	TargetDate   *types.Date     `json:"targetDate" example:"2025-06-30"`
	FundedAmount decimal.Decimal `json:"fundedAmount" example:"750"`
	AccountID    *ID             `json:"accountId" example:"p:8d4e1a2a-1b36-4a44-8d5e-52f5e8a3c3a1"`
}

func goalOf(g models.Goal) *Goal {
	n := &Goal{
		Meta:         metaOf(g.TemporalModel),
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		FundedAmount: g.FundedAmount,
		AccountID:    persistedPtr(g.AccountID),
	}

	if g.TargetDate != nil {
		d := *g.TargetDate
		n.TargetDate = &d
	}

	return n
}

func (g *Goal) clone() *Goal {
	c := *g

	if g.TargetDate != nil {
		d := *g.TargetDate
		c.TargetDate = &d
	}

	if g.AccountID != nil {
		id := *g.AccountID
		c.AccountID = &id
	}

	return &c
}

func (g *Goal) validate() error {
	g.Name = strings.TrimSpace(g.Name)
	if g.AccountID != nil && g.AccountID.IsZero() {
		g.AccountID = nil
	}

	return models.Goal{
		TemporalModel: g.temporal(),
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		FundedAmount:  g.FundedAmount,
	}.Validate()
}
