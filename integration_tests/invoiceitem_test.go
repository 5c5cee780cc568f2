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

type InvoiceItemTestSuite struct {
	suite.Suite
	service      *service.PayasyougoService
	echo         *echo.Echo
	aliceToken   string
	bobToken     string
	staffToken   string
	aliceInvoice *models.Invoice
}

func (suite *InvoiceItemTestSuite) SetupSuite() {
	svc, err := payasyougoTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	users, userTokens, err := createTestUsers(svc, 3)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	if err := makeStaff(svc, users[2].ID); err != nil {
		log.Fatalf("Error promoting staff user: %v", err)
	}
	suite.service = svc
	suite.echo = testEcho(svc)
	suite.aliceToken = userTokens[0]
	suite.bobToken = userTokens[1]
	suite.staffToken = userTokens[2]

	rec := doRequest(suite.echo, http.MethodPost, "/clients", &controllers.ClientRequestBody{Name: "Initech"}, suite.aliceToken)
	client := &models.Client{}
	assert.NoError(suite.T(), decodeResponse(rec, client))

	rec = doRequest(suite.echo, http.MethodPost, "/invoices", &controllers.InvoiceRequestBody{
		ClientID:      client.ID,
		InvoiceNumber: "ITEM-" + random.String(10, random.Uppercase),
		IssueDate:     "2026-09-01",
		DueDate:       "2026-10-01",
		TotalAmount:   decimal.NewFromInt(900),
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	suite.aliceInvoice = &models.Invoice{}
	assert.NoError(suite.T(), decodeResponse(rec, suite.aliceInvoice))
}

func (suite *InvoiceItemTestSuite) TestCreateItemOnOwnInvoice() {
	rec := doRequest(suite.echo, http.MethodPost, "/invoice-items", &controllers.InvoiceItemRequestBody{
		InvoiceID:   suite.aliceInvoice.ID,
		Description: "Design work",
		Quantity:    decimal.NewFromInt(3),
		UnitPrice:   decimal.NewFromInt(300),
		Amount:      decimal.NewFromInt(900),
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	item := &models.InvoiceItem{}
	assert.NoError(suite.T(), decodeResponse(rec, item))
	assert.Equal(suite.T(), suite.aliceInvoice.ID, item.InvoiceID)

	rec = doRequest(suite.echo, http.MethodGet, fmt.Sprintf("/invoice-items/%d", item.ID), nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *InvoiceItemTestSuite) TestCreateItemOnForeignInvoice() {
	rec := doRequest(suite.echo, http.MethodPost, "/invoice-items", &controllers.InvoiceItemRequestBody{
		InvoiceID:   suite.aliceInvoice.ID,
		Description: "Sneaky line item",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(1),
		Amount:      decimal.NewFromInt(1),
	}, suite.bobToken)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	fieldErrors := map[string]string{}
	assert.NoError(suite.T(), decodeResponse(rec, &fieldErrors))
	assert.Equal(suite.T(), "Invoice not found or does not belong to the current user.", fieldErrors["invoice"])
}

func (suite *InvoiceItemTestSuite) TestStaffSeesForeignItems() {
	rec := doRequest(suite.echo, http.MethodPost, "/invoice-items", &controllers.InvoiceItemRequestBody{
		InvoiceID:   suite.aliceInvoice.ID,
		Description: "Hosting",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(50),
		Amount:      decimal.NewFromInt(50),
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	item := &models.InvoiceItem{}
	assert.NoError(suite.T(), decodeResponse(rec, item))

	// a plain tenant cannot see it
	rec = doRequest(suite.echo, http.MethodGet, fmt.Sprintf("/invoice-items/%d", item.ID), nil, suite.bobToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	// a staff account can
	rec = doRequest(suite.echo, http.MethodGet, fmt.Sprintf("/invoice-items/%d", item.ID), nil, suite.staffToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func TestInvoiceItemSuite(t *testing.T) {
	suite.Run(t, new(InvoiceItemTestSuite))
}
