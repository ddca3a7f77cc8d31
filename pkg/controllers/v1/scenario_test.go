package v1_test

import (
	"net/http"

	v1 "github.com/carryforward/backend/pkg/controllers/v1"
	"github.com/carryforward/backend/pkg/models"
	"github.com/carryforward/backend/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) createTestScenario(name string) models.Scenario {
	var scenario v1.ScenarioResponse

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/scenarios", v1.ScenarioEditable{Name: name})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	test.DecodeResponse(suite.T(), &r, &scenario)

	return *scenario.Data
}

func (suite *TestSuiteStandard) TestScenariosCreate() {
	scenario := suite.createTestScenario("  Move to a cheaper flat ")
	suite.Assert().Equal("Move to a cheaper flat", scenario.Name)
	suite.Assert().NotEqual(uuid.Nil, scenario.ID)

	tests := []struct {
		name string
		body any
	}{
		{"empty name", v1.ScenarioEditable{}},
		{"empty body", ""},
		{"broken body", `{"name": Move`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			var response v1.ScenarioResponse

			r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/scenarios", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
			test.DecodeResponse(suite.T(), &r, &response)
			suite.Assert().Nil(response.Data)
		})
	}
}

func (suite *TestSuiteStandard) TestScenariosList() {
	suite.createTestScenario("Move to a cheaper flat")
	suite.createTestScenario("Buy a car")
	suite.createTestScenario("Move abroad")

	tests := []struct {
		query string
		names []string
	}{
		{"", []string{"Move abroad", "Buy a car", "Move to a cheaper flat"}},
		{"?name=Move*", []string{"Move abroad", "Move to a cheaper flat"}},
		{"?name=*car", []string{"Buy a car"}},
		{"?name=Sell*", []string{}},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			var list v1.ScenarioListResponse

			r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/scenarios"+tt.query, "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
			test.DecodeResponse(suite.T(), &r, &list)

			names := []string{}
			for _, s := range list.Data {
				names = append(names, s.Name)
			}
			suite.Assert().Equal(tt.names, names)
		})
	}
}

func (suite *TestSuiteStandard) TestScenariosLoad() {
	suite.createSandboxAccount(`{"name": "Checking"}`)
	scenario := suite.createTestScenario("One account")
	suite.createSandboxAccount(`{"name": "Savings"}`)

	var response v1.SandboxResponse
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/scenarios/"+scenario.ID.String()+"/load", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data.Accounts, 1)
	suite.Assert().False(response.Data.CanUndo, "loading a scenario clears the history")

	r = test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/scenarios/"+uuid.NewString()+"/load", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/scenarios/not-a-uuid/load", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestScenariosLoadCorrupt() {
	scenario := suite.createTestScenario("Broken")
	suite.Require().Nil(suite.db.Exec("UPDATE scenarios SET data = ? WHERE id = ?", "{broken", scenario.ID).Error)

	var response v1.SandboxResponse
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/scenarios/"+scenario.ID.String()+"/load", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(*response.Error, "the data of the scenario is corrupt")
}

func (suite *TestSuiteStandard) TestScenariosDelete() {
	scenario := suite.createTestScenario("Temporary")

	r := test.Request(suite.T(), suite.router, http.MethodDelete, "http://example.com/v1/scenarios/"+scenario.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.router, http.MethodDelete, "http://example.com/v1/scenarios/"+scenario.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), suite.router, http.MethodDelete, "http://example.com/v1/scenarios/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
