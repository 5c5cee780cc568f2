package responses

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Detail         string `json:"detail"`
	Code           string `json:"code,omitempty"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Detail:         "Something went wrong. Please try again later.",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Detail:         "Bad arguments",
	HttpStatusCode: 400,
}

var InvalidCredentialsError = ErrorResponse{
	Detail:         "Invalid credentials.",
	HttpStatusCode: 400,
}

var UnauthorizedError = ErrorResponse{
	Detail:         "Invalid or missing authentication token.",
	HttpStatusCode: 401,
}

// NotFoundError covers both nonexistent records and records owned by
// another tenant; the two cases must stay indistinguishable.
var NotFoundError = ErrorResponse{
	Detail:         "Not found.",
	HttpStatusCode: 404,
}

var ConflictError = ErrorResponse{
	Detail:         "Duplicate value violates a unique constraint.",
	HttpStatusCode: 409,
}

var TaxEstimationNotSetError = ErrorResponse{
	Detail:         "Tax estimation settings not found. Please create one.",
	Code:           "NOT_SET",
	HttpStatusCode: 404,
}

// FieldErrors maps offending field names to messages, the body shape
// of every 400 validation failure.
type FieldErrors map[string]string

func NewFieldError(field, message string) FieldErrors {
	return FieldErrors{field: message}
}

func ValidationErrors(err error) FieldErrors {
	fieldErrors := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors["detail"] = "Invalid request payload."
		return fieldErrors
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fieldErrors[fe.Field()] = "This field is required."
		case "email":
			fieldErrors[fe.Field()] = "Enter a valid email address."
		case "oneof":
			fieldErrors[fe.Field()] = "Value must be one of: " + fe.Param() + "."
		default:
			fieldErrors[fe.Field()] = "This field is invalid."
		}
	}
	return fieldErrors
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}

// auth failures and tenant-scoped lookups that miss are expected
// traffic, not exceptions worth tracking
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	return he.Code != http.StatusUnauthorized && he.Code != http.StatusNotFound
}
