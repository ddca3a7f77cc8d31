package models_test

import (
	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestSelf() {
	suite.Assert().Equal("Account", models.Account{}.Self())
	suite.Assert().Equal("Bucket", models.Bucket{}.Self())
	suite.Assert().Equal("Category", models.Category{}.Self())
	suite.Assert().Equal("Goal", models.Goal{}.Self())
	suite.Assert().Equal("Income Source", models.IncomeSource{}.Self())
	suite.Assert().Equal("Planned Expense", models.PlannedExpense{}.Self())
	suite.Assert().Equal("Scenario", models.Scenario{}.Self())
	suite.Assert().Equal("Transaction", models.Transaction{}.Self())
}

func (suite *TestSuiteStandard) TestAccountTrimAndDefaults() {
	account := suite.createTestAccount(models.Account{
		Name:        "  Checking \t",
		Institution: " Acme Bank ",
	})

	suite.Assert().Equal("Checking", account.Name)
	suite.Assert().Equal("Acme Bank", account.Institution)
	suite.Assert().Equal(models.AccountChecking, account.Type)
}

func (suite *TestSuiteStandard) TestValidation() {
	march := models.TemporalModel{EffectiveFrom: types.NewMonth(2024, 3)}
	accountID := uuid.New()
	end := types.NewDate(2024, 12, 31)

	tests := []struct {
		name  string
		model any
		err   error
	}{
		{"account without month", &models.Account{Name: "Checking"}, models.ErrEffectiveFromMissing},
		{"account without name", &models.Account{TemporalModel: march, Name: " "}, models.ErrNameEmpty},
		{"account type", &models.Account{TemporalModel: march, Name: "Checking", Type: "piggy"}, models.ErrAccountTypeUnknown},
		{"category without bucket", &models.Category{TemporalModel: march, Name: "Groceries"}, models.ErrBucketMissing},
		{"category limit", &models.Category{TemporalModel: march, Name: "Groceries", BucketID: uuid.New(), MonthlyLimit: hundred.Neg()}, models.ErrAmountNegative},
		{"income without account", &models.IncomeSource{TemporalModel: march, Name: "Salary"}, models.ErrAccountMissing},
		{"income amount", &models.IncomeSource{TemporalModel: march, Name: "Salary", AccountID: accountID, Amount: hundred.Neg()}, models.ErrAmountNegative},
		{"expense recurrence end", &models.PlannedExpense{TemporalModel: march, Name: "Rent", AccountID: accountID, RecurrenceEnd: &end}, models.ErrRecurrenceEndInvalid},
		{"expense without account", &models.PlannedExpense{TemporalModel: march, Name: "Rent"}, models.ErrAccountMissing},
		{"goal target", &models.Goal{TemporalModel: march, Name: "Vacation"}, models.ErrGoalTargetNotPositive},
		{"goal funded", &models.Goal{TemporalModel: march, Name: "Vacation", TargetAmount: hundred, FundedAmount: hundred.Neg()}, models.ErrAmountNegative},
		{"transaction type", &models.Transaction{AccountID: accountID, Amount: hundred}, models.ErrTransactionTypeUnknown},
		{"transaction amount", &models.Transaction{AccountID: accountID, Amount: hundred.Neg(), Type: models.TransactionIncome}, models.ErrAmountNegative},
		{"scenario name", &models.Scenario{Name: "\t"}, models.ErrNameEmpty},
		{"bucket name", &models.Bucket{}, models.ErrNameEmpty},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := suite.db.Create(tt.model).Error
			suite.Assert().ErrorIs(err, tt.err)
			suite.Assert().ErrorIs(err, models.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestOptionalReferencesNil() {
	account := suite.createTestAccount(models.Account{})
	needs := suite.bucket("Needs")

	expense := models.PlannedExpense{
		TemporalModel: models.TemporalModel{EffectiveFrom: account.EffectiveFrom},
		Name:          "Rent",
		AccountID:     account.ID,
		BucketID:      &uuid.Nil,
		CategoryID:    &uuid.Nil,
	}
	suite.Require().Nil(suite.db.Create(&expense).Error)
	suite.Assert().Nil(expense.BucketID)
	suite.Assert().Nil(expense.CategoryID)
	suite.Assert().NotNil(expense.DueDates, "date lists must be empty, not nil")

	expense.BucketID = &needs.ID
	suite.Require().Nil(suite.db.Save(&expense).Error)
	suite.Assert().Equal(needs.ID, *expense.BucketID)

	goal := models.Goal{
		TemporalModel: models.TemporalModel{EffectiveFrom: account.EffectiveFrom},
		Name:          "Vacation",
		TargetAmount:  hundred,
		AccountID:     &uuid.Nil,
	}
	suite.Require().Nil(suite.db.Create(&goal).Error)
	suite.Assert().Nil(goal.AccountID)
}

func (suite *TestSuiteStandard) TestGoalRemaining() {
	tests := []struct {
		funded    int64
		remaining int64
	}{
		{0, 100},
		{40, 60},
		{150, 0},
	}

	for _, tt := range tests {
		g := models.Goal{TargetAmount: hundred, FundedAmount: decimal.NewFromInt(tt.funded)}
		suite.Assert().True(decimal.NewFromInt(tt.remaining).Equal(g.Remaining()), "funded %d", tt.funded)
	}
}

func (suite *TestSuiteStandard) TestTransactionSigned() {
	income := models.Transaction{Amount: hundred, Type: models.TransactionIncome}
	expense := models.Transaction{Amount: hundred, Type: models.TransactionExpense}

	suite.Assert().True(hundred.Equal(income.Signed()))
	suite.Assert().True(hundred.Neg().Equal(expense.Signed()))
}

func (suite *TestSuiteStandard) TestDateListRoundTrip() {
	account := suite.createTestAccount(models.Account{})

	income := models.IncomeSource{
		TemporalModel: models.TemporalModel{EffectiveFrom: account.EffectiveFrom},
		Name:          "Salary",
		AccountID:     account.ID,
		Amount:        hundred,
		PayDates:      types.DateList{types.NewDate(2024, 3, 5), types.NewDate(2024, 3, 19)},
	}
	suite.Require().Nil(suite.db.Create(&income).Error)

	var loaded models.IncomeSource
	suite.Require().Nil(suite.db.First(&loaded, "id = ?", income.ID).Error)
	suite.Assert().Equal(income.PayDates, loaded.PayDates)
	suite.Assert().True(hundred.Equal(loaded.Amount))
}
