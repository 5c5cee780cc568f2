package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/common"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/payasyougo/payasyougo.go/lib/service"
)

// SettingController : Per-account settings. One row per account,
// keyed by the user id, so the record id in the URL is the user id.
type SettingController struct {
	svc *service.PayasyougoService
}

func NewSettingController(svc *service.PayasyougoService) *SettingController {
	return &SettingController{svc: svc}
}

type SettingRequestBody struct {
	Currency      string `json:"currency" validate:"omitempty,len=3"`
	Timezone      string `json:"timezone"`
	InvoicePrefix string `json:"invoice_prefix"`
	PaymentTerms  string `json:"payment_terms"`
}

// List godoc
// @Summary      List the caller's settings
// @Description  Returns at most one record, the caller's own.
// @Produce      json
// @Tags         Setting
// @Success      200  {object}  []models.Setting
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /settings [get]
// @Security     ApiKeyAuth
func (controller *SettingController) List(c echo.Context) error {
	settings, err := controller.svc.SettingsFor(c.Request().Context(), currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// Get godoc
// @Summary      Retrieve settings
// @Produce      json
// @Tags         Setting
// @Param        id   path      int  true  "Settings ID (the owner's user id)"
// @Success      200  {object}  models.Setting
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /settings/{id} [get]
// @Security     ApiKeyAuth
func (controller *SettingController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	setting, err := controller.svc.FindSetting(c.Request().Context(), id, currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

// Create godoc
// @Summary      Create the caller's settings
// @Description  A second create for the same account returns 409.
// @Accept       json
// @Produce      json
// @Tags         Setting
// @Param        SettingRequestBody  body      SettingRequestBody  true  "Settings fields"
// @Success      201                 {object}  models.Setting
// @Failure      400                 {object}  responses.FieldErrors
// @Failure      409                 {object}  responses.ErrorResponse
// @Router       /settings [post]
// @Security     ApiKeyAuth
func (controller *SettingController) Create(c echo.Context) error {
	var body SettingRequestBody

	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	setting := &models.Setting{
		UserID:        userId,
		Currency:      body.Currency,
		Timezone:      body.Timezone,
		InvoicePrefix: body.InvoicePrefix,
		PaymentTerms:  body.PaymentTerms,
	}
	ctx := c.Request().Context()
	if err := controller.svc.CreateSetting(ctx, setting); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionCreate, common.EntityTypeSetting, userId, c.RealIP())
	return c.JSON(http.StatusCreated, setting)
}

// Update godoc
// @Summary      Update settings
// @Accept       json
// @Produce      json
// @Tags         Setting
// @Param        id                  path      int                 true  "Settings ID (the owner's user id)"
// @Param        SettingRequestBody  body      SettingRequestBody  true  "Settings fields"
// @Success      200                 {object}  models.Setting
// @Failure      404                 {object}  responses.ErrorResponse
// @Router       /settings/{id} [put]
// @Security     ApiKeyAuth
func (controller *SettingController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	var body SettingRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	setting, err := controller.svc.FindSetting(ctx, id, userId)
	if err != nil {
		return handleServiceError(c, err)
	}
	setting.Currency = body.Currency
	setting.Timezone = body.Timezone
	setting.InvoicePrefix = body.InvoicePrefix
	setting.PaymentTerms = body.PaymentTerms

	if err := controller.svc.UpdateSetting(ctx, setting, userId); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionUpdate, common.EntityTypeSetting, userId, c.RealIP())
	return c.JSON(http.StatusOK, setting)
}

// Delete godoc
// @Summary      Delete settings
// @Tags         Setting
// @Param        id  path  int  true  "Settings ID (the owner's user id)"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /settings/{id} [delete]
// @Security     ApiKeyAuth
func (controller *SettingController) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	if err := controller.svc.DeleteSetting(ctx, id, userId); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionDelete, common.EntityTypeSetting, userId, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}
