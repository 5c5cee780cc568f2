package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/common"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/payasyougo/payasyougo.go/lib/service"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// InvoiceController : Invoice endpoints, always scoped to the caller
type InvoiceController struct {
	svc *service.PayasyougoService
}

func NewInvoiceController(svc *service.PayasyougoService) *InvoiceController {
	return &InvoiceController{svc: svc}
}

type InvoiceRequestBody struct {
	ClientID      int64               `json:"client_id" validate:"required"`
	InvoiceNumber string              `json:"invoice_number" validate:"required"`
	IssueDate     string              `json:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate       string              `json:"due_date" validate:"required,datetime=2006-01-02"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Status        string              `json:"status" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	Notes         string              `json:"notes"`
	GatewayFee    decimal.NullDecimal `json:"payment_gateway_fee"`
}

func (body *InvoiceRequestBody) apply(invoice *models.Invoice) {
	issueDate, _ := time.Parse(dateLayout, body.IssueDate)
	dueDate, _ := time.Parse(dateLayout, body.DueDate)

	invoice.ClientID = body.ClientID
	invoice.InvoiceNumber = body.InvoiceNumber
	invoice.IssueDate = issueDate
	invoice.DueDate = dueDate
	invoice.TotalAmount = body.TotalAmount
	invoice.Status = body.Status
	if invoice.Status == "" {
		invoice.Status = common.InvoiceStatusDraft
	}
	invoice.Notes = body.Notes
	invoice.GatewayFee = body.GatewayFee
}

// List godoc
// @Summary      List the caller's invoices
// @Produce      json
// @Tags         Invoice
// @Success      200  {object}  []models.Invoice
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /invoices [get]
// @Security     ApiKeyAuth
func (controller *InvoiceController) List(c echo.Context) error {
	invoices, err := controller.svc.InvoicesFor(c.Request().Context(), currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, invoices)
}

// Get godoc
// @Summary      Retrieve an invoice
// @Produce      json
// @Tags         Invoice
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  models.Invoice
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /invoices/{id} [get]
// @Security     ApiKeyAuth
func (controller *InvoiceController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	invoice, err := controller.svc.FindInvoice(c.Request().Context(), id, currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, invoice)
}

// Create godoc
// @Summary      Create an invoice
// @Description  Invoice numbers are unique across the system. A duplicate number returns 409.
// @Accept       json
// @Produce      json
// @Tags         Invoice
// @Param        InvoiceRequestBody  body      InvoiceRequestBody  true  "Invoice details"
// @Success      201                 {object}  models.Invoice
// @Failure      400                 {object}  responses.FieldErrors
// @Failure      409                 {object}  responses.ErrorResponse
// @Router       /invoices [post]
// @Security     ApiKeyAuth
func (controller *InvoiceController) Create(c echo.Context) error {
	var body InvoiceRequestBody

	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	invoice := &models.Invoice{UserID: userId}
	body.apply(invoice)

	ctx := c.Request().Context()
	if err := controller.svc.CreateInvoice(ctx, invoice); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionCreate, common.EntityTypeInvoice, invoice.ID, c.RealIP())
	return c.JSON(http.StatusCreated, invoice)
}

// Update godoc
// @Summary      Update an invoice
// @Accept       json
// @Produce      json
// @Tags         Invoice
// @Param        id                  path      int                 true  "Invoice ID"
// @Param        InvoiceRequestBody  body      InvoiceRequestBody  true  "Invoice details"
// @Success      200                 {object}  models.Invoice
// @Failure      404                 {object}  responses.ErrorResponse
// @Failure      409                 {object}  responses.ErrorResponse
// @Router       /invoices/{id} [put]
// @Security     ApiKeyAuth
func (controller *InvoiceController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	var body InvoiceRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	invoice, err := controller.svc.FindInvoice(ctx, id, userId)
	if err != nil {
		return handleServiceError(c, err)
	}
	body.apply(invoice)

	if err := controller.svc.UpdateInvoice(ctx, invoice, userId); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionUpdate, common.EntityTypeInvoice, invoice.ID, c.RealIP())
	return c.JSON(http.StatusOK, invoice)
}

// Delete godoc
// @Summary      Delete an invoice
// @Description  Also removes the invoice's items and payments. Time entries billed against it keep their rows but lose the invoice reference.
// @Tags         Invoice
// @Param        id  path  int  true  "Invoice ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /invoices/{id} [delete]
// @Security     ApiKeyAuth
func (controller *InvoiceController) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	if err := controller.svc.DeleteInvoice(ctx, id, userId); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionDelete, common.EntityTypeInvoice, id, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}
