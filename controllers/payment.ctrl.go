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

// PaymentController : Payment endpoints. Payments are owner-scoped;
// staff accounts see every payment.
type PaymentController struct {
	svc *service.PayasyougoService
}

func NewPaymentController(svc *service.PayasyougoService) *PaymentController {
	return &PaymentController{svc: svc}
}

type PaymentRequestBody struct {
	InvoiceID     int64               `json:"invoice_id" validate:"required"`
	Amount        decimal.Decimal     `json:"amount"`
	PaymentDate   time.Time           `json:"payment_date" validate:"required"`
	PaymentMethod string              `json:"payment_method"`
	TransactionID *string             `json:"transaction_id"`
	Status        string              `json:"status" validate:"omitempty,oneof=pending completed failed refunded"`
	FeeCharged    decimal.NullDecimal `json:"fee_charged"`
}

func (body *PaymentRequestBody) apply(payment *models.Payment) {
	payment.InvoiceID = body.InvoiceID
	payment.Amount = body.Amount
	payment.PaymentDate = body.PaymentDate
	payment.PaymentMethod = body.PaymentMethod
	payment.TransactionID = body.TransactionID
	payment.Status = body.Status
	if payment.Status == "" {
		payment.Status = common.PaymentStatusPending
	}
	payment.FeeCharged = body.FeeCharged
}

// List godoc
// @Summary      List payments
// @Description  Returns the caller's payments. Staff accounts see every payment.
// @Produce      json
// @Tags         Payment
// @Success      200  {object}  []models.Payment
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /payments [get]
// @Security     ApiKeyAuth
func (controller *PaymentController) List(c echo.Context) error {
	payments, err := controller.svc.PaymentsFor(c.Request().Context(), currentUserId(c), isStaff(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}

// Get godoc
// @Summary      Retrieve a payment
// @Produce      json
// @Tags         Payment
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {object}  models.Payment
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /payments/{id} [get]
// @Security     ApiKeyAuth
func (controller *PaymentController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	payment, err := controller.svc.FindPayment(c.Request().Context(), id, currentUserId(c), isStaff(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// Create godoc
// @Summary      Record a payment
// @Description  Transaction ids are unique when provided. A duplicate returns 409.
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        PaymentRequestBody  body      PaymentRequestBody  true  "Payment details"
// @Success      201                 {object}  models.Payment
// @Failure      400                 {object}  responses.FieldErrors
// @Failure      409                 {object}  responses.ErrorResponse
// @Router       /payments [post]
// @Security     ApiKeyAuth
func (controller *PaymentController) Create(c echo.Context) error {
	var body PaymentRequestBody

	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	payment := &models.Payment{UserID: userId}
	body.apply(payment)

	ctx := c.Request().Context()
	if err := controller.svc.CreatePayment(ctx, payment); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionCreate, common.EntityTypePayment, payment.ID, c.RealIP())
	return c.JSON(http.StatusCreated, payment)
}

// Update godoc
// @Summary      Update a payment
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        id                  path      int                 true  "Payment ID"
// @Param        PaymentRequestBody  body      PaymentRequestBody  true  "Payment details"
// @Success      200                 {object}  models.Payment
// @Failure      404                 {object}  responses.ErrorResponse
// @Failure      409                 {object}  responses.ErrorResponse
// @Router       /payments/{id} [put]
// @Security     ApiKeyAuth
func (controller *PaymentController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	var body PaymentRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	staff := isStaff(c)
	ctx := c.Request().Context()
	payment, err := controller.svc.FindPayment(ctx, id, userId, staff)
	if err != nil {
		return handleServiceError(c, err)
	}
	body.apply(payment)

	if err := controller.svc.UpdatePayment(ctx, payment, userId, staff); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionUpdate, common.EntityTypePayment, payment.ID, c.RealIP())
	return c.JSON(http.StatusOK, payment)
}

// Delete godoc
// @Summary      Delete a payment
// @Tags         Payment
// @Param        id  path  int  true  "Payment ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /payments/{id} [delete]
// @Security     ApiKeyAuth
func (controller *PaymentController) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	if err := controller.svc.DeletePayment(ctx, id, userId, isStaff(c)); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionDelete, common.EntityTypePayment, id, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}
