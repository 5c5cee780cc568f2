package integration_tests

import (
	"context"
	"log"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/controllers"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/payasyougo/payasyougo.go/lib/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TaxEstimationTestSuite struct {
	suite.Suite
	service *service.PayasyougoService
	echo    *echo.Echo
	user    *models.User
	token   string
}

func (suite *TaxEstimationTestSuite) SetupSuite() {
	svc, err := payasyougoTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	users, userTokens, err := createTestUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.service = svc
	suite.echo = testEcho(svc)
	suite.user = users[0]
	suite.token = userTokens[0]
}

func (suite *TaxEstimationTestSuite) TestSingletonLifecycle() {
	// fresh accounts have no estimation yet
	rec := doRequest(suite.echo, http.MethodGet, "/tax-estimation", nil, suite.token)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	errResp := &responses.ErrorResponse{}
	assert.NoError(suite.T(), decodeResponse(rec, errResp))
	assert.Equal(suite.T(), "NOT_SET", errResp.Code)

	// first create returns 201
	pct := decimal.NewFromFloat(27.5)
	rec = doRequest(suite.echo, http.MethodPost, "/tax-estimation", &controllers.CreateTaxEstimationRequestBody{
		TaxPercentage: &pct,
	}, suite.token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	// a second create updates in place and returns 200
	pct2 := decimal.NewFromFloat(30)
	setAside := decimal.NewFromInt(4200)
	rec = doRequest(suite.echo, http.MethodPost, "/tax-estimation", &controllers.CreateTaxEstimationRequestBody{
		TaxPercentage:           &pct2,
		EstimatedAmountSetAside: &setAside,
	}, suite.token)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	// still exactly one row for this account
	count, err := suite.service.DB.NewSelect().Model((*models.TaxEstimation)(nil)).
		Where("user_id = ?", suite.user.ID).Count(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count)

	// partial update keeps the untouched fields
	pct3 := decimal.NewFromFloat(31)
	rec = doRequest(suite.echo, http.MethodPut, "/tax-estimation", &controllers.UpdateTaxEstimationRequestBody{
		TaxPercentage: &pct3,
	}, suite.token)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = doRequest(suite.echo, http.MethodGet, "/tax-estimation", nil, suite.token)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	estimation := &models.TaxEstimation{}
	assert.NoError(suite.T(), decodeResponse(rec, estimation))
	assert.True(suite.T(), estimation.TaxPercentage.Equal(pct3))
	assert.True(suite.T(), estimation.EstimatedAmountSetAside.Equal(setAside))
}

func (suite *TaxEstimationTestSuite) TestCreateRequiresPercentage() {
	rec := doRequest(suite.echo, http.MethodPost, "/tax-estimation", &controllers.CreateTaxEstimationRequestBody{}, suite.token)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	fieldErrors := map[string]string{}
	assert.NoError(suite.T(), decodeResponse(rec, &fieldErrors))
	assert.Contains(suite.T(), fieldErrors, "tax_percentage")
}

func TestTaxEstimationSuite(t *testing.T) {
	suite.Run(t, new(TaxEstimationTestSuite))
}
