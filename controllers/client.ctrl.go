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

// ClientController : Client endpoints, always scoped to the caller
type ClientController struct {
	svc *service.PayasyougoService
}

func NewClientController(svc *service.PayasyougoService) *ClientController {
	return &ClientController{svc: svc}
}

type ClientRequestBody struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// List godoc
// @Summary      List the caller's clients
// @Produce      json
// @Tags         Client
// @Success      200  {object}  []models.Client
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /clients [get]
// @Security     ApiKeyAuth
func (controller *ClientController) List(c echo.Context) error {
	clients, err := controller.svc.ClientsFor(c.Request().Context(), currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, clients)
}

// Get godoc
// @Summary      Retrieve a client
// @Produce      json
// @Tags         Client
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  models.Client
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /clients/{id} [get]
// @Security     ApiKeyAuth
func (controller *ClientController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	client, err := controller.svc.FindClient(c.Request().Context(), id, currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Create godoc
// @Summary      Create a client
// @Accept       json
// @Produce      json
// @Tags         Client
// @Param        ClientRequestBody  body      ClientRequestBody  true  "Client details"
// @Success      201                {object}  models.Client
// @Failure      400                {object}  responses.FieldErrors
// @Router       /clients [post]
// @Security     ApiKeyAuth
func (controller *ClientController) Create(c echo.Context) error {
	var body ClientRequestBody

	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	client := &models.Client{
		UserID:      userId,
		Name:        body.Name,
		Email:       body.Email,
		PhoneNumber: body.PhoneNumber,
		Address:     body.Address,
	}
	ctx := c.Request().Context()
	if err := controller.svc.CreateClient(ctx, client); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionCreate, common.EntityTypeClient, client.ID, c.RealIP())
	return c.JSON(http.StatusCreated, client)
}

// Update godoc
// @Summary      Update a client
// @Accept       json
// @Produce      json
// @Tags         Client
// @Param        id                 path      int                true  "Client ID"
// @Param        ClientRequestBody  body      ClientRequestBody  true  "Client details"
// @Success      200                {object}  models.Client
// @Failure      404                {object}  responses.ErrorResponse
// @Router       /clients/{id} [put]
// @Security     ApiKeyAuth
func (controller *ClientController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	var body ClientRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	client, err := controller.svc.FindClient(ctx, id, userId)
	if err != nil {
		return handleServiceError(c, err)
	}
	client.Name = body.Name
	client.Email = body.Email
	client.PhoneNumber = body.PhoneNumber
	client.Address = body.Address

	if err := controller.svc.UpdateClient(ctx, client, userId); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionUpdate, common.EntityTypeClient, client.ID, c.RealIP())
	return c.JSON(http.StatusOK, client)
}

// Delete godoc
// @Summary      Delete a client
// @Description  Also removes the client's invoices with their items and payments. Time entries keep their rows but lose the client reference.
// @Tags         Client
// @Param        id  path  int  true  "Client ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /clients/{id} [delete]
// @Security     ApiKeyAuth
func (controller *ClientController) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	if err := controller.svc.DeleteClient(ctx, id, userId); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionDelete, common.EntityTypeClient, id, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}
