package v1_test

import (
	"net/http"
	"testing"

	"github.com/carryforward/backend/internal/types"
	v1 "github.com/carryforward/backend/pkg/controllers/v1"
	"github.com/carryforward/backend/test"
)

func (suite *TestSuiteStandard) TestMonthsGet() {
	var month v1.MonthResponse

	account := suite.persistAccount("Checking", types.NewMonth(2024, 1))

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/months/2024-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &month)

	suite.Require().Nil(month.Error)
	suite.Require().Len(month.Data.Accounts, 1)
	suite.Assert().Equal(types.NewMonth(2024, 3), month.Data.Month)
	suite.Assert().Equal(types.NewMonth(2024, 3), month.Data.Accounts[0].EffectiveFrom)
	suite.Assert().NotEqual(account.ID, month.Data.Accounts[0].ID, "carried forward accounts must be new records")
	suite.Assert().Equal(account.LineageID, month.Data.Accounts[0].LineageID)
}

func (suite *TestSuiteStandard) TestMonthsGetEmpty() {
	var month v1.MonthResponse

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/months/2024-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &month)

	suite.Require().NotNil(month.Data)
	suite.Assert().NotNil(month.Data.Accounts, "lists must be empty, not nil")
	suite.Assert().Empty(month.Data.Accounts)
}

func (suite *TestSuiteStandard) TestMonthsGetInvalidMonth() {
	var month v1.MonthResponse

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/months/2024-13", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	test.DecodeResponse(suite.T(), &r, &month)

	suite.Assert().Nil(month.Data)
	suite.Assert().Equal("the month must be formatted as YYYY-MM", *month.Error)
}

func (suite *TestSuiteStandard) TestBalancesGet() {
	var balances v1.BalancesResponse

	suite.persistAccount("Checking", types.NewMonth(2024, 3))

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/months/2024-03/balances?start=2024-03-05&end=2024-03-11", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &balances)

	suite.Assert().Equal("EUR", balances.Data.Currency)
	suite.Assert().Equal(types.NewDate(2024, 3, 5), balances.Data.Start)
	suite.Require().Len(balances.Data.Accounts, 1)
	suite.Assert().Len(balances.Data.Accounts[0].Planned, 7)
	suite.Assert().True(balances.Data.Accounts[0].Planned[0].Balance.IntPart() == 1000)
}

func (suite *TestSuiteStandard) TestBalancesGetErrors() {
	tests := []struct {
		name  string
		query string
		err   string
	}{
		{"invalid start", "?start=yesterday", "dates must be formatted as YYYY-MM-DD"},
		{"invalid end", "?end=2024-03-32", "dates must be formatted as YYYY-MM-DD"},
		{"start after end", "?start=2024-03-12&end=2024-03-11", "the start of the window must not be after its end"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var balances v1.BalancesResponse

			r := test.Request(t, suite.router, http.MethodGet, "http://example.com/v1/months/2024-03/balances"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			test.DecodeResponse(t, &r, &balances)
			suite.Assert().Contains(*balances.Error, tt.err)
		})
	}
}
