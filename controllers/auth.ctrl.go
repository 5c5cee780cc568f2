package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/payasyougo/payasyougo.go/lib/service"
)

// AuthController : Login endpoint
type AuthController struct {
	svc *service.PayasyougoService
}

func NewAuthController(svc *service.PayasyougoService) *AuthController {
	return &AuthController{svc: svc}
}

type LoginRequestBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponseBody struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login godoc
// @Summary      Authenticate with username and password
// @Description  Exchanges credentials for the account's API token. Logging in twice returns the same token.
// @Accept       json
// @Produce      json
// @Tags         Auth
// @Param        LoginRequestBody  body      LoginRequestBody  true  "Credentials"
// @Success      200               {object}  LoginResponseBody
// @Failure      400               {object}  responses.ErrorResponse
// @Failure      500               {object}  responses.ErrorResponse
// @Router       /login [post]
func (controller *AuthController) Login(c echo.Context) error {
	var body LoginRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load login request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	ctx := c.Request().Context()
	user, err := controller.svc.AuthenticateUser(ctx, body.Username, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, responses.InvalidCredentialsError)
		}
		return handleServiceError(c, err)
	}

	token, err := controller.svc.GetOrCreateToken(ctx, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to load token for user_id:%d: %v", user.ID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &LoginResponseBody{
		Token: token.Key,
		User:  user,
	})
}
