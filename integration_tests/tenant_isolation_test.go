package integration_tests

import (
	"fmt"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"github.com/payasyougo/payasyougo.go/controllers"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TenantIsolationTestSuite struct {
	suite.Suite
	service    *service.PayasyougoService
	echo       *echo.Echo
	aliceToken string
	bobToken   string
}

func (suite *TenantIsolationTestSuite) SetupSuite() {
	svc, err := payasyougoTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	_, userTokens, err := createTestUsers(svc, 2)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.service = svc
	suite.echo = testEcho(svc)
	suite.aliceToken = userTokens[0]
	suite.bobToken = userTokens[1]
}

func (suite *TenantIsolationTestSuite) createClient(token string) *models.Client {
	rec := doRequest(suite.echo, http.MethodPost, "/clients", &controllers.ClientRequestBody{
		Name:  "Acme Corp",
		Email: "billing@acme.example",
	}, token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	client := &models.Client{}
	assert.NoError(suite.T(), decodeResponse(rec, client))
	return client
}

func (suite *TenantIsolationTestSuite) createInvoice(token string, clientId int64) *models.Invoice {
	rec := doRequest(suite.echo, http.MethodPost, "/invoices", &controllers.InvoiceRequestBody{
		ClientID:      clientId,
		InvoiceNumber: "INV-" + random.String(10, random.Uppercase),
		IssueDate:     "2026-09-01",
		DueDate:       "2026-09-30",
		TotalAmount:   decimal.NewFromFloat(1250.50),
	}, token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	invoice := &models.Invoice{}
	assert.NoError(suite.T(), decodeResponse(rec, invoice))
	return invoice
}

func (suite *TenantIsolationTestSuite) TestRecordsInvisibleAcrossTenants() {
	client := suite.createClient(suite.aliceToken)
	invoice := suite.createInvoice(suite.aliceToken, client.ID)

	expenseRec := doRequest(suite.echo, http.MethodPost, "/expenses", &controllers.ExpenseRequestBody{
		Description: "Conference ticket",
		Amount:      decimal.NewFromInt(350),
		ExpenseDate: "2026-08-15",
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusCreated, expenseRec.Code)
	expense := &models.Expense{}
	assert.NoError(suite.T(), decodeResponse(expenseRec, expense))

	entryRec := doRequest(suite.echo, http.MethodPost, "/time-entries", &controllers.TimeEntryRequestBody{
		ProjectName: "Website redesign",
		StartTime:   time.Now().Add(-2 * time.Hour),
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusCreated, entryRec.Code)
	entry := &models.TimeEntry{}
	assert.NoError(suite.T(), decodeResponse(entryRec, entry))

	// the owner sees each record
	for _, path := range []string{
		fmt.Sprintf("/clients/%d", client.ID),
		fmt.Sprintf("/invoices/%d", invoice.ID),
		fmt.Sprintf("/expenses/%d", expense.ID),
		fmt.Sprintf("/time-entries/%d", entry.ID),
	} {
		rec := doRequest(suite.echo, http.MethodGet, path, nil, suite.aliceToken)
		assert.Equal(suite.T(), http.StatusOK, rec.Code, path)

		// another tenant gets the same 404 a nonexistent id would give
		rec = doRequest(suite.echo, http.MethodGet, path, nil, suite.bobToken)
		assert.Equal(suite.T(), http.StatusNotFound, rec.Code, path)
	}

	// cross-tenant writes miss as well
	rec := doRequest(suite.echo, http.MethodDelete, fmt.Sprintf("/clients/%d", client.ID), nil, suite.bobToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	rec = doRequest(suite.echo, http.MethodGet, fmt.Sprintf("/clients/%d", client.ID), nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *TenantIsolationTestSuite) TestListsAreOwnerScoped() {
	client := suite.createClient(suite.aliceToken)

	rec := doRequest(suite.echo, http.MethodGet, "/clients", nil, suite.bobToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	bobClients := []models.Client{}
	assert.NoError(suite.T(), decodeResponse(rec, &bobClients))
	for _, c := range bobClients {
		assert.NotEqual(suite.T(), client.ID, c.ID)
	}
}

func TestTenantIsolationSuite(t *testing.T) {
	suite.Run(t, new(TenantIsolationTestSuite))
}
