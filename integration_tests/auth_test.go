package integration_tests

import (
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

type AuthTestSuite struct {
	suite.Suite
	service *service.PayasyougoService
	echo    *echo.Echo
	user    *models.User
}

func (suite *AuthTestSuite) SetupSuite() {
	svc, err := payasyougoTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	users, _, err := createTestUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.service = svc
	suite.echo = testEcho(svc)
	suite.user = users[0]
}

func (suite *AuthTestSuite) TestLogin() {
	rec := doRequest(suite.echo, http.MethodPost, "/login", &controllers.LoginRequestBody{
		Username: suite.user.Username,
		Password: testPassword,
	}, "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	first := &controllers.LoginResponseBody{}
	assert.NoError(suite.T(), decodeResponse(rec, first))
	assert.NotEmpty(suite.T(), first.Token)
	assert.Equal(suite.T(), suite.user.Username, first.User.Username)

	// logging in again returns the same token, not a fresh one
	rec = doRequest(suite.echo, http.MethodPost, "/login", &controllers.LoginRequestBody{
		Username: suite.user.Username,
		Password: testPassword,
	}, "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	second := &controllers.LoginResponseBody{}
	assert.NoError(suite.T(), decodeResponse(rec, second))
	assert.Equal(suite.T(), first.Token, second.Token)

	// and the token actually authenticates requests
	rec = doRequest(suite.echo, http.MethodGet, "/clients", nil, first.Token)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *AuthTestSuite) TestLoginWrongPassword() {
	rec := doRequest(suite.echo, http.MethodPost, "/login", &controllers.LoginRequestBody{
		Username: suite.user.Username,
		Password: "wrong",
	}, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *AuthTestSuite) TestLoginUnknownUser() {
	rec := doRequest(suite.echo, http.MethodPost, "/login", &controllers.LoginRequestBody{
		Username: "nobody",
		Password: testPassword,
	}, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *AuthTestSuite) TestMissingToken() {
	rec := doRequest(suite.echo, http.MethodGet, "/clients", nil, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *AuthTestSuite) TestBogusToken() {
	rec := doRequest(suite.echo, http.MethodGet, "/clients", nil, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
