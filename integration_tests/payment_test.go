package integration_tests

import (
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

type PaymentTestSuite struct {
	suite.Suite
	service *service.PayasyougoService
	echo    *echo.Echo
	token   string
	invoice *models.Invoice
}

func (suite *PaymentTestSuite) SetupSuite() {
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

	rec := doRequest(suite.echo, http.MethodPost, "/clients", &controllers.ClientRequestBody{Name: "Umbrella"}, suite.token)
	client := &models.Client{}
	assert.NoError(suite.T(), decodeResponse(rec, client))

	rec = doRequest(suite.echo, http.MethodPost, "/invoices", &controllers.InvoiceRequestBody{
		ClientID:      client.ID,
		InvoiceNumber: "PAY-" + random.String(10, random.Uppercase),
		IssueDate:     "2026-09-01",
		DueDate:       "2026-09-15",
		TotalAmount:   decimal.NewFromInt(800),
	}, suite.token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	suite.invoice = &models.Invoice{}
	assert.NoError(suite.T(), decodeResponse(rec, suite.invoice))
}

func (suite *PaymentTestSuite) TestDuplicateTransactionId() {
	txid := "tx_" + random.String(16, random.Alphanumeric)
	body := &controllers.PaymentRequestBody{
		InvoiceID:     suite.invoice.ID,
		Amount:        decimal.NewFromInt(800),
		PaymentDate:   time.Now(),
		TransactionID: &txid,
		Status:        "completed",
	}

	rec := doRequest(suite.echo, http.MethodPost, "/payments", body, suite.token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	// same gateway transaction id again is rejected
	rec = doRequest(suite.echo, http.MethodPost, "/payments", body, suite.token)
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
}

func (suite *PaymentTestSuite) TestPaymentsWithoutTransactionId() {
	body := &controllers.PaymentRequestBody{
		InvoiceID:   suite.invoice.ID,
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Now(),
	}

	// multiple payments without a transaction id are fine
	rec := doRequest(suite.echo, http.MethodPost, "/payments", body, suite.token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	rec = doRequest(suite.echo, http.MethodPost, "/payments", body, suite.token)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	payment := &models.Payment{}
	assert.NoError(suite.T(), decodeResponse(rec, payment))
	assert.Equal(suite.T(), "pending", payment.Status)
}

func (suite *PaymentTestSuite) TestInvalidStatus() {
	rec := doRequest(suite.echo, http.MethodPost, "/payments", &controllers.PaymentRequestBody{
		InvoiceID:   suite.invoice.ID,
		Amount:      decimal.NewFromInt(1),
		PaymentDate: time.Now(),
		Status:      "teleported",
	}, suite.token)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	fieldErrors := map[string]string{}
	assert.NoError(suite.T(), decodeResponse(rec, &fieldErrors))
	assert.Contains(suite.T(), fieldErrors, "status")
}

func TestPaymentSuite(t *testing.T) {
	suite.Run(t, new(PaymentTestSuite))
}
