package responses

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestUnauthorizedErrorsNotAllowedForSentry(t *testing.T) {
	unauthorized := echo.NewHTTPError(http.StatusUnauthorized, UnauthorizedError)

	isAllowed := isErrAllowedForSentry(unauthorized)
	assert.False(t, isAllowed)
}

func TestNotFoundErrorsNotAllowedForSentry(t *testing.T) {
	notFound := echo.NewHTTPError(http.StatusNotFound, NotFoundError)

	isAllowed := isErrAllowedForSentry(notFound)
	assert.False(t, isAllowed)
}

func TestServerErrorsAllowedForSentry(t *testing.T) {
	serverErr := echo.NewHTTPError(http.StatusInternalServerError, GeneralServerError)

	isAllowed := isErrAllowedForSentry(serverErr)
	assert.True(t, isAllowed)
}

func TestNonHTTPErrorsAllowedForSentry(t *testing.T) {
	err := errors.New("random error")

	isAllowed := isErrAllowedForSentry(err)
	assert.True(t, isAllowed)
}

func TestValidationErrorsFallback(t *testing.T) {
	fieldErrors := ValidationErrors(errors.New("malformed json"))
	assert.Equal(t, "Invalid request payload.", fieldErrors["detail"])
}
