package integration_tests

import (
	"context"
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

type CascadeTestSuite struct {
	suite.Suite
	service *service.PayasyougoService
	echo    *echo.Echo
}

func (suite *CascadeTestSuite) SetupSuite() {
	svc, err := payasyougoTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	suite.echo = testEcho(svc)
}

// buildTenantGraph creates a user with a client, an invoice carrying
// one item and one payment, a time entry billed against the invoice
// and an expense. Returns the ids needed by the assertions.
func (suite *CascadeTestSuite) buildTenantGraph() (user *models.User, token string, invoice *models.Invoice, client *models.Client, entry *models.TimeEntry) {
	users, userTokens, err := createTestUsers(suite.service, 1)
	assert.NoError(suite.T(), err)
	user = users[0]
	token = userTokens[0]

	rec := doRequest(suite.echo, http.MethodPost, "/clients", &controllers.ClientRequestBody{Name: "Globex"}, token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	client = &models.Client{}
	assert.NoError(suite.T(), decodeResponse(rec, client))

	rec = doRequest(suite.echo, http.MethodPost, "/invoices", &controllers.InvoiceRequestBody{
		ClientID:      client.ID,
		InvoiceNumber: "CSC-" + random.String(10, random.Uppercase),
		IssueDate:     "2026-09-01",
		DueDate:       "2026-09-15",
		TotalAmount:   decimal.NewFromInt(500),
	}, token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	invoice = &models.Invoice{}
	assert.NoError(suite.T(), decodeResponse(rec, invoice))

	rec = doRequest(suite.echo, http.MethodPost, "/invoice-items", &controllers.InvoiceItemRequestBody{
		InvoiceID:   invoice.ID,
		Description: "Consulting",
		Quantity:    decimal.NewFromInt(5),
		UnitPrice:   decimal.NewFromInt(100),
		Amount:      decimal.NewFromInt(500),
	}, token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	rec = doRequest(suite.echo, http.MethodPost, "/payments", &controllers.PaymentRequestBody{
		InvoiceID:   invoice.ID,
		Amount:      decimal.NewFromInt(500),
		PaymentDate: time.Now(),
	}, token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	rec = doRequest(suite.echo, http.MethodPost, "/time-entries", &controllers.TimeEntryRequestBody{
		ClientID:  &client.ID,
		StartTime: time.Now().Add(-time.Hour),
		IsBilled:  true,
		InvoiceID: &invoice.ID,
	}, token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	entry = &models.TimeEntry{}
	assert.NoError(suite.T(), decodeResponse(rec, entry))

	rec = doRequest(suite.echo, http.MethodPost, "/expenses", &controllers.ExpenseRequestBody{
		Description: "Software license",
		Amount:      decimal.NewFromInt(99),
		ExpenseDate: "2026-08-01",
	}, token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	return user, token, invoice, client, entry
}

func (suite *CascadeTestSuite) countWhere(model interface{}, where string, args ...interface{}) int {
	count, err := suite.service.DB.NewSelect().Model(model).Where(where, args...).Count(context.Background())
	assert.NoError(suite.T(), err)
	return count
}

func (suite *CascadeTestSuite) TestInvoiceDeleteCascades() {
	_, token, invoice, _, entry := suite.buildTenantGraph()

	rec := doRequest(suite.echo, http.MethodDelete, fmt.Sprintf("/invoices/%d", invoice.ID), nil, token)
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)

	assert.Zero(suite.T(), suite.countWhere((*models.InvoiceItem)(nil), "invoice_id = ?", invoice.ID))
	assert.Zero(suite.T(), suite.countWhere((*models.Payment)(nil), "invoice_id = ?", invoice.ID))

	// the billed time entry survives with its invoice reference cleared
	refetched := &models.TimeEntry{}
	err := suite.service.DB.NewSelect().Model(refetched).Where("id = ?", entry.ID).Scan(context.Background())
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), refetched.InvoiceID)
}

func (suite *CascadeTestSuite) TestClientDeleteCascades() {
	_, token, invoice, client, entry := suite.buildTenantGraph()

	rec := doRequest(suite.echo, http.MethodDelete, fmt.Sprintf("/clients/%d", client.ID), nil, token)
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)

	assert.Zero(suite.T(), suite.countWhere((*models.Invoice)(nil), "id = ?", invoice.ID))
	assert.Zero(suite.T(), suite.countWhere((*models.InvoiceItem)(nil), "invoice_id = ?", invoice.ID))
	assert.Zero(suite.T(), suite.countWhere((*models.Payment)(nil), "invoice_id = ?", invoice.ID))

	refetched := &models.TimeEntry{}
	err := suite.service.DB.NewSelect().Model(refetched).Where("id = ?", entry.ID).Scan(context.Background())
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), refetched.ClientID)
	assert.Nil(suite.T(), refetched.InvoiceID)
}

func (suite *CascadeTestSuite) TestUserDeleteCascadesEverything() {
	user, token, invoice, client, _ := suite.buildTenantGraph()

	auditBefore := suite.countWhere((*models.AuditLog)(nil), "user_id = ?", user.ID)
	assert.Greater(suite.T(), auditBefore, 0)

	rec := doRequest(suite.echo, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), nil, token)
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)

	assert.Zero(suite.T(), suite.countWhere((*models.User)(nil), "id = ?", user.ID))
	assert.Zero(suite.T(), suite.countWhere((*models.Client)(nil), "id = ?", client.ID))
	assert.Zero(suite.T(), suite.countWhere((*models.Invoice)(nil), "id = ?", invoice.ID))
	assert.Zero(suite.T(), suite.countWhere((*models.TimeEntry)(nil), "user_id = ?", user.ID))
	assert.Zero(suite.T(), suite.countWhere((*models.Expense)(nil), "user_id = ?", user.ID))
	assert.Zero(suite.T(), suite.countWhere((*models.AuthToken)(nil), "user_id = ?", user.ID))

	// the audit trail survives the account, detached from it
	assert.Zero(suite.T(), suite.countWhere((*models.AuditLog)(nil), "user_id = ?", user.ID))

	// and the now-dead token no longer authenticates
	rec = doRequest(suite.echo, http.MethodGet, "/clients", nil, token)
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func TestCascadeSuite(t *testing.T) {
	suite.Run(t, new(CascadeTestSuite))
}
