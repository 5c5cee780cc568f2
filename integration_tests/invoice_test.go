package integration_tests

import (
	"fmt"
	"log"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"github.com/payasyougo/payasyougo.go/controllers"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InvoiceTestSuite struct {
	suite.Suite
	service *service.PayasyougoService
	echo    *echo.Echo
	token   string
	client  *models.Client
}

func (suite *InvoiceTestSuite) SetupSuite() {
	svc, err := payasyougoTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	_, userTokens, err := createTestUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.service = svc
	suite.echo = testEcho(svc)
	suite.token = userTokens[0]

	rec := doRequest(suite.echo, http.MethodPost, "/clients", &controllers.ClientRequestBody{Name: "Stark Industries"}, suite.token)
	suite.client = &models.Client{}
	assert.NoError(suite.T(), decodeResponse(rec, suite.client))
}

func (suite *InvoiceTestSuite) invoiceBody(number string) *controllers.InvoiceRequestBody {
	return &controllers.InvoiceRequestBody{
		ClientID:      suite.client.ID,
		InvoiceNumber: number,
		IssueDate:     "2026-09-01",
		DueDate:       "2026-09-30",
		TotalAmount:   decimal.NewFromFloat(999.99),
	}
}

func (suite *InvoiceTestSuite) TestDuplicateInvoiceNumber() {
	number := "DUP-" + random.String(10, random.Uppercase)

	rec := doRequest(suite.echo, http.MethodPost, "/invoices", suite.invoiceBody(number), suite.token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	rec = doRequest(suite.echo, http.MethodPost, "/invoices", suite.invoiceBody(number), suite.token)
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
}

func (suite *InvoiceTestSuite) TestCreateDefaultsToDraft() {
	rec := doRequest(suite.echo, http.MethodPost, "/invoices", suite.invoiceBody("DFT-"+random.String(10, random.Uppercase)), suite.token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	invoice := &models.Invoice{}
	assert.NoError(suite.T(), decodeResponse(rec, invoice))
	assert.Equal(suite.T(), "draft", invoice.Status)
}

func (suite *InvoiceTestSuite) TestRejectsUnknownStatus() {
	body := suite.invoiceBody("BAD-" + random.String(10, random.Uppercase))
	body.Status = "imaginary"

	rec := doRequest(suite.echo, http.MethodPost, "/invoices", body, suite.token)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	fieldErrors := map[string]string{}
	assert.NoError(suite.T(), decodeResponse(rec, &fieldErrors))
	assert.Contains(suite.T(), fieldErrors, "status")
}

func (suite *InvoiceTestSuite) TestMutationsAppearInAuditLog() {
	number := "AUD-" + random.String(10, random.Uppercase)
	rec := doRequest(suite.echo, http.MethodPost, "/invoices", suite.invoiceBody(number), suite.token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	invoice := &models.Invoice{}
	assert.NoError(suite.T(), decodeResponse(rec, invoice))

	rec = doRequest(suite.echo, http.MethodDelete, fmt.Sprintf("/invoices/%d", invoice.ID), nil, suite.token)
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)

	rec = doRequest(suite.echo, http.MethodGet, "/audit-logs", nil, suite.token)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	logs := []models.AuditLog{}
	assert.NoError(suite.T(), decodeResponse(rec, &logs))

	var sawCreate, sawDelete bool
	for _, entry := range logs {
		if entry.EntityType == "invoice" && entry.EntityID != nil && *entry.EntityID == invoice.ID {
			switch entry.Action {
			case "create":
				sawCreate = true
			case "delete":
				sawDelete = true
			}
		}
	}
	assert.True(suite.T(), sawCreate)
	assert.True(suite.T(), sawDelete)
}

func TestInvoiceSuite(t *testing.T) {
	suite.Run(t, new(InvoiceTestSuite))
}
