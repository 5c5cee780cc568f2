package integration_tests

import (
	"fmt"
	"log"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/controllers"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SettingTestSuite struct {
	suite.Suite
	service *service.PayasyougoService
	echo    *echo.Echo
	user    *models.User
	token   string
}

func (suite *SettingTestSuite) SetupSuite() {
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

func (suite *SettingTestSuite) TestSettingsLifecycle() {
	rec := doRequest(suite.echo, http.MethodPost, "/settings", &controllers.SettingRequestBody{
		Currency:      "EUR",
		Timezone:      "Europe/Berlin",
		InvoicePrefix: "ACME-",
	}, suite.token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	setting := &models.Setting{}
	assert.NoError(suite.T(), decodeResponse(rec, setting))
	assert.Equal(suite.T(), suite.user.ID, setting.UserID)

	// one settings row per account
	rec = doRequest(suite.echo, http.MethodPost, "/settings", &controllers.SettingRequestBody{Currency: "USD"}, suite.token)
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)

	rec = doRequest(suite.echo, http.MethodPut, fmt.Sprintf("/settings/%d", suite.user.ID), &controllers.SettingRequestBody{
		Currency: "GBP",
		Timezone: "Europe/London",
	}, suite.token)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), decodeResponse(rec, setting))
	assert.Equal(suite.T(), "GBP", setting.Currency)

	rec = doRequest(suite.echo, http.MethodGet, "/settings", nil, suite.token)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	settings := []models.Setting{}
	assert.NoError(suite.T(), decodeResponse(rec, &settings))
	assert.Len(suite.T(), settings, 1)

	rec = doRequest(suite.echo, http.MethodDelete, fmt.Sprintf("/settings/%d", suite.user.ID), nil, suite.token)
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)

	rec = doRequest(suite.echo, http.MethodGet, fmt.Sprintf("/settings/%d", suite.user.ID), nil, suite.token)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *SettingTestSuite) TestCurrencyMustBeThreeLetters() {
	rec := doRequest(suite.echo, http.MethodPost, "/settings", &controllers.SettingRequestBody{
		Currency: "EURO",
	}, suite.token)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	fieldErrors := map[string]string{}
	assert.NoError(suite.T(), decodeResponse(rec, &fieldErrors))
	assert.Contains(suite.T(), fieldErrors, "currency")
}

func TestSettingSuite(t *testing.T) {
	suite.Run(t, new(SettingTestSuite))
}
