package models_test

import (
	"encoding/json"
	"time"

	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestModelTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	model := models.DefaultModel{
		Timestamps: models.Timestamps{
			CreatedAt: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
			UpdatedAt: time.Date(2001, 2, 3, 4, 5, 6, 7, tz),
			DeletedAt: gorm.DeletedAt{Time: time.Now().In(tz), Valid: true},
		},
	}

	suite.Require().Nil(model.AfterFind(suite.db))

	suite.Assert().Equal(time.UTC, model.CreatedAt.Location(), "Timezone for model is not UTC")
	suite.Assert().Equal(time.UTC, model.UpdatedAt.Location(), "Timezone for model is not UTC")
	suite.Assert().Equal(time.UTC, model.DeletedAt.Time.Location(), "Timezone for model is not UTC")
	suite.Assert().True(model.IsDeleted())
}

func (suite *TestSuiteStandard) TestDeletedAtJSON() {
	model := models.DefaultModel{}

	b, err := json.Marshal(model)
	suite.Require().Nil(err)
	suite.Assert().Contains(string(b), `"deletedAt":null`)

	model.DeletedAt = gorm.DeletedAt{Time: time.Date(2022, 4, 22, 21, 1, 5, 0, time.UTC), Valid: true}
	b, err = json.Marshal(model)
	suite.Require().Nil(err)
	suite.Assert().Contains(string(b), `"deletedAt":"2022-04-22T21:01:05Z"`)
}

func (suite *TestSuiteStandard) TestLineageStartsWithFirstVersion() {
	account := suite.createTestAccount(models.Account{})

	suite.Assert().NotEqual(uuid.Nil, account.ID)
	suite.Assert().Equal(account.ID, account.LineageID)
}

func (suite *TestSuiteStandard) TestResetForCopy() {
	account := suite.createTestAccount(models.Account{})
	suite.Require().Nil(suite.db.Delete(&account).Error)
	suite.Require().Nil(suite.db.Unscoped().First(&account, "id = ?", account.ID).Error)
	suite.Require().True(account.IsDeleted())

	april := types.NewMonth(2024, 4)
	copied := account
	copied.ResetForCopy(april)

	suite.Assert().Equal(uuid.Nil, copied.ID)
	suite.Assert().True(copied.CreatedAt.IsZero())
	suite.Assert().False(copied.IsDeleted())
	suite.Assert().Equal(april, copied.EffectiveFrom)

	suite.Require().Nil(suite.db.Create(&copied).Error)
	suite.Assert().NotEqual(account.ID, copied.ID)
	suite.Assert().Equal(account.LineageID, copied.LineageID, "copies keep the lineage")
}

func (suite *TestSuiteStandard) TestTemporal() {
	temporal := []models.Temporal{
		&models.Account{},
		&models.IncomeSource{},
		&models.Category{},
		&models.PlannedExpense{},
		&models.Goal{},
	}

	for _, m := range temporal {
		m.Temporal().EffectiveFrom = types.NewMonth(2024, 3)
		suite.Assert().Equal(types.NewMonth(2024, 3), m.Temporal().EffectiveFrom)
	}
}
