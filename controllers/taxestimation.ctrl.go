package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/common"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/payasyougo/payasyougo.go/lib/service"
	"github.com/shopspring/decimal"
)

// TaxEstimationController : Singleton tax estimation endpoints. Each
// account has at most one estimation row; both POST and PUT upsert it.
type TaxEstimationController struct {
	svc *service.PayasyougoService
}

func NewTaxEstimationController(svc *service.PayasyougoService) *TaxEstimationController {
	return &TaxEstimationController{svc: svc}
}

type CreateTaxEstimationRequestBody struct {
	TaxPercentage           *decimal.Decimal `json:"tax_percentage" validate:"required"`
	EstimatedAmountSetAside *decimal.Decimal `json:"estimated_amount_set_aside"`
	LastCalculatedAt        *time.Time       `json:"last_calculated_at"`
}

type UpdateTaxEstimationRequestBody struct {
	TaxPercentage           *decimal.Decimal `json:"tax_percentage"`
	EstimatedAmountSetAside *decimal.Decimal `json:"estimated_amount_set_aside"`
	LastCalculatedAt        *time.Time       `json:"last_calculated_at"`
}

// Get godoc
// @Summary      Retrieve the caller's tax estimation
// @Description  Returns 404 with code NOT_SET until an estimation has been created.
// @Produce      json
// @Tags         TaxEstimation
// @Success      200  {object}  models.TaxEstimation
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /tax-estimation [get]
// @Security     ApiKeyAuth
func (controller *TaxEstimationController) Get(c echo.Context) error {
	estimation, err := controller.svc.FindTaxEstimation(c.Request().Context(), currentUserId(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, responses.TaxEstimationNotSetError)
		}
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, estimation)
}

// Create godoc
// @Summary      Create or replace the caller's tax estimation
// @Description  Returns 201 when the estimation did not exist yet and 200 when an existing one was updated.
// @Accept       json
// @Produce      json
// @Tags         TaxEstimation
// @Param        CreateTaxEstimationRequestBody  body      CreateTaxEstimationRequestBody  true  "Estimation fields"
// @Success      200                             {object}  models.TaxEstimation
// @Success      201                             {object}  models.TaxEstimation
// @Failure      400                             {object}  responses.FieldErrors
// @Router       /tax-estimation [post]
// @Security     ApiKeyAuth
func (controller *TaxEstimationController) Create(c echo.Context) error {
	var body CreateTaxEstimationRequestBody

	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	return controller.upsert(c, service.TaxEstimationUpdate{
		TaxPercentage:           body.TaxPercentage,
		EstimatedAmountSetAside: body.EstimatedAmountSetAside,
		LastCalculatedAt:        body.LastCalculatedAt,
	})
}

// Update godoc
// @Summary      Update the caller's tax estimation
// @Description  Partial update; omitted fields keep their current value. Creates the estimation when none exists.
// @Accept       json
// @Produce      json
// @Tags         TaxEstimation
// @Param        UpdateTaxEstimationRequestBody  body      UpdateTaxEstimationRequestBody  true  "Estimation fields"
// @Success      200                             {object}  models.TaxEstimation
// @Success      201                             {object}  models.TaxEstimation
// @Failure      400                             {object}  responses.FieldErrors
// @Router       /tax-estimation [put]
// @Security     ApiKeyAuth
func (controller *TaxEstimationController) Update(c echo.Context) error {
	var body UpdateTaxEstimationRequestBody

	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	return controller.upsert(c, service.TaxEstimationUpdate{
		TaxPercentage:           body.TaxPercentage,
		EstimatedAmountSetAside: body.EstimatedAmountSetAside,
		LastCalculatedAt:        body.LastCalculatedAt,
	})
}

func (controller *TaxEstimationController) upsert(c echo.Context, update service.TaxEstimationUpdate) error {
	userId := currentUserId(c)
	ctx := c.Request().Context()

	estimation, created, err := controller.svc.UpsertTaxEstimation(ctx, userId, update)
	if err != nil {
		return handleServiceError(c, err)
	}

	action := common.AuditActionUpdate
	status := http.StatusOK
	if created {
		action = common.AuditActionCreate
		status = http.StatusCreated
	}
	controller.svc.RecordAuditEvent(ctx, userId, action, common.EntityTypeTaxEstimation, userId, c.RealIP())
	return c.JSON(status, estimation)
}
