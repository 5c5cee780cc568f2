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

// ExpenseController : Expense endpoints, always scoped to the caller
type ExpenseController struct {
	svc *service.PayasyougoService
}

func NewExpenseController(svc *service.PayasyougoService) *ExpenseController {
	return &ExpenseController{svc: svc}
}

type ExpenseRequestBody struct {
	Description     string          `json:"description" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	ExpenseDate     string          `json:"expense_date" validate:"required,datetime=2006-01-02"`
	ReceiptImageUrl string          `json:"receipt_image_url" validate:"omitempty,url"`
	IsReimbursable  bool            `json:"is_reimbursable"`
}

func (body *ExpenseRequestBody) apply(expense *models.Expense) {
	expenseDate, _ := time.Parse(dateLayout, body.ExpenseDate)

	expense.Description = body.Description
	expense.Amount = body.Amount
	expense.Category = body.Category
	expense.ExpenseDate = expenseDate
	expense.ReceiptImageUrl = body.ReceiptImageUrl
	expense.IsReimbursable = body.IsReimbursable
}

// List godoc
// @Summary      List the caller's expenses
// @Produce      json
// @Tags         Expense
// @Success      200  {object}  []models.Expense
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /expenses [get]
// @Security     ApiKeyAuth
func (controller *ExpenseController) List(c echo.Context) error {
	expenses, err := controller.svc.ExpensesFor(c.Request().Context(), currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, expenses)
}

// Get godoc
// @Summary      Retrieve an expense
// @Produce      json
// @Tags         Expense
// @Param        id   path      int  true  "Expense ID"
// @Success      200  {object}  models.Expense
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /expenses/{id} [get]
// @Security     ApiKeyAuth
func (controller *ExpenseController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	expense, err := controller.svc.FindExpense(c.Request().Context(), id, currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, expense)
}

// Create godoc
// @Summary      Create an expense
// @Accept       json
// @Produce      json
// @Tags         Expense
// @Param        ExpenseRequestBody  body      ExpenseRequestBody  true  "Expense details"
// @Success      201                 {object}  models.Expense
// @Failure      400                 {object}  responses.FieldErrors
// @Router       /expenses [post]
// @Security     ApiKeyAuth
func (controller *ExpenseController) Create(c echo.Context) error {
	var body ExpenseRequestBody

	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	expense := &models.Expense{UserID: userId}
	body.apply(expense)

	ctx := c.Request().Context()
	if err := controller.svc.CreateExpense(ctx, expense); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionCreate, common.EntityTypeExpense, expense.ID, c.RealIP())
	return c.JSON(http.StatusCreated, expense)
}

// Update godoc
// @Summary      Update an expense
// @Accept       json
// @Produce      json
// @Tags         Expense
// @Param        id                  path      int                 true  "Expense ID"
// @Param        ExpenseRequestBody  body      ExpenseRequestBody  true  "Expense details"
// @Success      200                 {object}  models.Expense
// @Failure      404                 {object}  responses.ErrorResponse
// @Router       /expenses/{id} [put]
// @Security     ApiKeyAuth
func (controller *ExpenseController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	var body ExpenseRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	expense, err := controller.svc.FindExpense(ctx, id, userId)
	if err != nil {
		return handleServiceError(c, err)
	}
	body.apply(expense)

	if err := controller.svc.UpdateExpense(ctx, expense, userId); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionUpdate, common.EntityTypeExpense, expense.ID, c.RealIP())
	return c.JSON(http.StatusOK, expense)
}

// Delete godoc
// @Summary      Delete an expense
// @Tags         Expense
// @Param        id  path  int  true  "Expense ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /expenses/{id} [delete]
// @Security     ApiKeyAuth
func (controller *ExpenseController) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	if err := controller.svc.DeleteExpense(ctx, id, userId); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionDelete, common.EntityTypeExpense, id, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}
