package v1_test

import (
	"net/http"
	"testing"

	"github.com/carryforward/backend/internal/types"
	v1 "github.com/carryforward/backend/pkg/controllers/v1"
	"github.com/carryforward/backend/pkg/models"
	"github.com/carryforward/backend/pkg/sandbox"
	"github.com/carryforward/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createSandboxAccount(body string) map[string]any {
	var entity v1.EntityResponse

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/sandbox/accounts", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	test.DecodeResponse(suite.T(), &r, &entity)

	return entity.Data.(map[string]any)
}

func (suite *TestSuiteStandard) sandbox() *sandbox.View {
	var response v1.SandboxResponse

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/sandbox", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)

	return response.Data
}

func (suite *TestSuiteStandard) TestSandboxGetBootstraps() {
	account := suite.persistAccount("Checking", types.NewMonth(2024, 3))

	view := suite.sandbox()
	suite.Assert().Equal(types.NewMonth(2024, 3), view.Month)
	suite.Require().Len(view.Accounts, 1)
	suite.Assert().Contains(view.Accounts, sandbox.Persisted(account.ID))
	suite.Assert().Len(view.Buckets, 5)
	suite.Assert().False(view.CanUndo)
}

func (suite *TestSuiteStandard) TestSandboxBootstrap() {
	suite.persistAccount("Checking", types.NewMonth(2024, 1))

	var response v1.SandboxResponse
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/sandbox/bootstrap/2024-02", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(types.NewMonth(2024, 2), response.Data.Month)
	suite.Assert().Len(response.Data.Accounts, 1)

	r = test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/sandbox/bootstrap/02-2024", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSandboxEntityLifecycle() {
	created := suite.createSandboxAccount(`{"name": "Checking", "startingBalance": "1000"}`)
	suite.Assert().Equal("l:1", created["id"])
	suite.Assert().Equal("checking", created["type"])
	suite.Assert().Equal("2024-03-01T00:00:00Z", created["effectiveFrom"])

	var list v1.EntityListResponse
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/sandbox/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 1)

	var entity v1.EntityResponse
	r = test.Request(suite.T(), suite.router, http.MethodPatch, "http://example.com/v1/sandbox/accounts/l:1", `{"name": "Joint checking"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &entity)
	suite.Assert().Equal("Joint checking", entity.Data.(map[string]any)["name"])
	suite.Assert().Equal("1000", entity.Data.(map[string]any)["startingBalance"])

	r = test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/sandbox/accounts/l:1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), suite.router, http.MethodDelete, "http://example.com/v1/sandbox/accounts/l:1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &entity)
	suite.Assert().Equal(true, entity.Data.(map[string]any)["isDeleted"])

	r = test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/sandbox/accounts", "")
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Empty(list.Data)
}

func (suite *TestSuiteStandard) TestSandboxEntityErrors() {
	suite.createSandboxAccount(`{"name": "Checking"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown kind", http.MethodGet, "/v1/sandbox/envelopes", "", http.StatusNotFound},
		{"unknown kind on create", http.MethodPost, "/v1/sandbox/envelopes", `{"name": "Groceries"}`, http.StatusNotFound},
		{"invalid id", http.MethodGet, "/v1/sandbox/accounts/42", "", http.StatusBadRequest},
		{"entity does not exist", http.MethodGet, "/v1/sandbox/accounts/l:2", "", http.StatusNotFound},
		{"empty body", http.MethodPost, "/v1/sandbox/accounts", "", http.StatusBadRequest},
		{"broken body", http.MethodPatch, "/v1/sandbox/accounts/l:1", `{"name": `, http.StatusBadRequest},
		{"unknown field", http.MethodPatch, "/v1/sandbox/accounts/l:1", `{"nickname": "Main"}`, http.StatusBadRequest},
		{"validation", http.MethodPost, "/v1/sandbox/accounts", `{"name": "  "}`, http.StatusBadRequest},
		{"unknown account type", http.MethodPost, "/v1/sandbox/accounts", `{"name": "Piggy bank", "type": "piggy"}`, http.StatusBadRequest},
		{"delete missing", http.MethodDelete, "/v1/sandbox/accounts/l:7", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var entity v1.EntityResponse

			r := test.Request(t, suite.router, tt.method, "http://example.com"+tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
			test.DecodeResponse(t, &r, &entity)
			suite.Assert().NotEmpty(*entity.Error)
			suite.Assert().Nil(entity.Data)
		})
	}
}

func (suite *TestSuiteStandard) TestSandboxUndoRedo() {
	suite.createSandboxAccount(`{"name": "Checking"}`)

	var response v1.SandboxResponse
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/sandbox/undo", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data.Accounts)
	suite.Assert().True(response.Data.CanRedo)

	r = test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/sandbox/redo", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data.Accounts, 1)
	suite.Assert().False(response.Data.CanRedo)
	suite.Assert().True(response.Data.CanUndo)
}

func (suite *TestSuiteStandard) TestSandboxReset() {
	suite.persistAccount("Checking", types.NewMonth(2024, 3))
	suite.createSandboxAccount(`{"name": "Savings"}`)

	var response v1.SandboxResponse
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/sandbox/reset", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data.Accounts, 1)
	suite.Assert().True(response.Data.CanUndo)

	var count int64
	suite.Require().Nil(suite.db.Model(&models.Account{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count, "the sandbox must never write to the budget")
}

func (suite *TestSuiteStandard) TestSandboxResetUsesCurrentMonth() {
	suite.persistAccount("Old", types.NewMonth(2023, 12))
	suite.persistAccount("Checking", types.NewMonth(2024, 3))

	var response v1.SandboxResponse
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/sandbox/bootstrap/2023-12", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.Month.Equal(types.NewMonth(2023, 12)))

	r = test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/sandbox/reset", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Data.Month.Equal(types.NewMonth(2024, 3)), response.Data.Month.String())
	suite.Require().Len(response.Data.Accounts, 1)
	for _, a := range response.Data.Accounts {
		suite.Assert().Equal("Checking", a.Name)
	}
}

func (suite *TestSuiteStandard) TestSandboxProjection() {
	created := suite.createSandboxAccount(`{"name": "Checking", "startingBalance": "1000"}`)

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/sandbox/income-sources", `{"name": "Salary", "amount": "400", "accountId": "`+created["id"].(string)+`", "payDates": ["2024-03-05", "2024-03-19"]}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var projection v1.ProjectionResponse
	r = test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/sandbox/projection", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &projection)

	series := projection.Data[sandbox.Pending(1)]
	suite.Require().Len(series, 31)
	last, _ := series.Last()
	suite.Assert().True(decimal.NewFromInt(1800).Equal(last), "last balance is %s", last)

	r = test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/sandbox/projection?start=2024-03-01&end=2024-03-05", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &projection)
	series = projection.Data[sandbox.Pending(1)]
	suite.Require().Len(series, 5)
	last, _ = series.Last()
	suite.Assert().True(decimal.NewFromInt(1400).Equal(last), "last balance is %s", last)

	r = test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/sandbox/projection?start=2024-03-06&end=2024-03-05", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
