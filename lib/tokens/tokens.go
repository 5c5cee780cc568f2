package tokens

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/uptrace/bun"
)

const TokenKeyLength = 40

// GenerateTokenKey : random alphanumeric key for a new auth token
func GenerateTokenKey() string {
	return random.String(TokenKeyLength, random.Alphanumeric)
}

// Middleware resolves the bearer token from the Authorization header
// against the token store and puts the owning user on the context.
// Both "Token <key>" and "Bearer <key>" schemes are accepted.
func Middleware(db *bun.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, ok := parseAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, responses.UnauthorizedError)
			}

			token := &models.AuthToken{}
			err := db.NewSelect().
				Model(token).
				Relation("User").
				Where("auth_token.key = ?", key).
				Limit(1).
				Scan(c.Request().Context())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, responses.UnauthorizedError)
			}

			c.Set("UserID", token.UserID)
			c.Set("IsStaff", token.User.IsStaff || token.User.IsSuperuser)
			return next(c)
		}
	}
}

func parseAuthHeader(header string) (key string, ok bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return "", false
	}
	return parts[1], true
}
