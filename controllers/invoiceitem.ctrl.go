package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/common"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/payasyougo/payasyougo.go/lib/service"
	"github.com/shopspring/decimal"
)

// InvoiceItemController : Invoice line item endpoints. Items are
// scoped through the invoice that owns them; staff accounts see
// every item.
type InvoiceItemController struct {
	svc *service.PayasyougoService
}

func NewInvoiceItemController(svc *service.PayasyougoService) *InvoiceItemController {
	return &InvoiceItemController{svc: svc}
}

type InvoiceItemRequestBody struct {
	InvoiceID   int64           `json:"invoice_id" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// List godoc
// @Summary      List invoice items
// @Description  Returns items on the caller's invoices. Staff accounts see items on every invoice.
// @Produce      json
// @Tags         InvoiceItem
// @Success      200  {object}  []models.InvoiceItem
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /invoice-items [get]
// @Security     ApiKeyAuth
func (controller *InvoiceItemController) List(c echo.Context) error {
	items, err := controller.svc.InvoiceItemsFor(c.Request().Context(), currentUserId(c), isStaff(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary      Retrieve an invoice item
// @Produce      json
// @Tags         InvoiceItem
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  models.InvoiceItem
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /invoice-items/{id} [get]
// @Security     ApiKeyAuth
func (controller *InvoiceItemController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	item, err := controller.svc.FindInvoiceItem(c.Request().Context(), id, currentUserId(c), isStaff(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary      Add an item to an invoice
// @Description  The target invoice must exist and belong to the caller.
// @Accept       json
// @Produce      json
// @Tags         InvoiceItem
// @Param        InvoiceItemRequestBody  body      InvoiceItemRequestBody  true  "Item details"
// @Success      201                     {object}  models.InvoiceItem
// @Failure      400                     {object}  responses.FieldErrors
// @Router       /invoice-items [post]
// @Security     ApiKeyAuth
func (controller *InvoiceItemController) Create(c echo.Context) error {
	var body InvoiceItemRequestBody

	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	item := &models.InvoiceItem{
		InvoiceID:   body.InvoiceID,
		Description: body.Description,
		Quantity:    body.Quantity,
		UnitPrice:   body.UnitPrice,
		Amount:      body.Amount,
	}
	ctx := c.Request().Context()
	if err := controller.svc.CreateInvoiceItem(ctx, item, userId); err != nil {
		if errors.Is(err, service.ErrInvoiceNotOwned) {
			return c.JSON(http.StatusBadRequest,
				responses.NewFieldError("invoice", "Invoice not found or does not belong to the current user."))
		}
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionCreate, common.EntityTypeInvoiceItem, item.ID, c.RealIP())
	return c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary      Update an invoice item
// @Accept       json
// @Produce      json
// @Tags         InvoiceItem
// @Param        id                      path      int                     true  "Item ID"
// @Param        InvoiceItemRequestBody  body      InvoiceItemRequestBody  true  "Item details"
// @Success      200                     {object}  models.InvoiceItem
// @Failure      404                     {object}  responses.ErrorResponse
// @Router       /invoice-items/{id} [put]
// @Security     ApiKeyAuth
func (controller *InvoiceItemController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	var body InvoiceItemRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	staff := isStaff(c)
	ctx := c.Request().Context()
	item, err := controller.svc.FindInvoiceItem(ctx, id, userId, staff)
	if err != nil {
		return handleServiceError(c, err)
	}
	item.Description = body.Description
	item.Quantity = body.Quantity
	item.UnitPrice = body.UnitPrice
	item.Amount = body.Amount

	if err := controller.svc.UpdateInvoiceItem(ctx, item, userId, staff); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionUpdate, common.EntityTypeInvoiceItem, item.ID, c.RealIP())
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary      Delete an invoice item
// @Tags         InvoiceItem
// @Param        id  path  int  true  "Item ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /invoice-items/{id} [delete]
// @Security     ApiKeyAuth
func (controller *InvoiceItemController) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	if err := controller.svc.DeleteInvoiceItem(ctx, id, userId, isStaff(c)); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionDelete, common.EntityTypeInvoiceItem, id, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}
