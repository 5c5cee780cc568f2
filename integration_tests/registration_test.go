package integration_tests

import (
	"context"
	"log"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"github.com/payasyougo/payasyougo.go/controllers"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RegistrationTestSuite struct {
	suite.Suite
	service *service.PayasyougoService
	echo    *echo.Echo
}

func (suite *RegistrationTestSuite) SetupSuite() {
	svc, err := payasyougoTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	suite.echo = testEcho(svc)
}

func (suite *RegistrationTestSuite) TestRegister() {
	suffix := random.String(8, random.Lowercase)
	body := &controllers.RegisterRequestBody{
		Username:  "alice_" + suffix,
		Email:     "alice_" + suffix + "@example.com",
		Password:  testPassword,
		Password2: testPassword,
		FirstName: "Alice",
	}

	rec := doRequest(suite.echo, http.MethodPost, "/register", body, "")
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	// the password hash must never leak through the API
	assert.NotContains(suite.T(), rec.Body.String(), "password")

	created := &models.User{}
	assert.NoError(suite.T(), decodeResponse(rec, created))
	assert.NotZero(suite.T(), created.ID)
	assert.Equal(suite.T(), body.Username, created.Username)

	// registering the same username again fails on the username field
	rec = doRequest(suite.echo, http.MethodPost, "/register", body, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	fieldErrors := map[string]string{}
	assert.NoError(suite.T(), decodeResponse(rec, &fieldErrors))
	assert.Contains(suite.T(), fieldErrors, "username")
}

func (suite *RegistrationTestSuite) TestRegisterPasswordMismatch() {
	suffix := random.String(8, random.Lowercase)
	body := &controllers.RegisterRequestBody{
		Username:  "bob_" + suffix,
		Email:     "bob_" + suffix + "@example.com",
		Password:  testPassword,
		Password2: "something else entirely",
	}

	rec := doRequest(suite.echo, http.MethodPost, "/register", body, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	fieldErrors := map[string]string{}
	assert.NoError(suite.T(), decodeResponse(rec, &fieldErrors))
	assert.Equal(suite.T(), "Passwords do not match.", fieldErrors["password"])

	// no account may exist after a failed registration
	count, err := suite.service.DB.NewSelect().Model((*models.User)(nil)).
		Where("username = ?", body.Username).Count(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, count)
}

func (suite *RegistrationTestSuite) TestRegisterMissingFields() {
	rec := doRequest(suite.echo, http.MethodPost, "/register", &controllers.RegisterRequestBody{
		Username: "incomplete",
	}, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	fieldErrors := map[string]string{}
	assert.NoError(suite.T(), decodeResponse(rec, &fieldErrors))
	assert.Contains(suite.T(), fieldErrors, "email")
	assert.Contains(suite.T(), fieldErrors, "password")
}

func TestRegistrationSuite(t *testing.T) {
	suite.Run(t, new(RegistrationTestSuite))
}
