package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ganeshmurthy/product-recommender-system/internal/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// RequireAuth verifies the caller's HS256 access token, taken from the
// accessToken cookie or an Authorization bearer header, and stores the
// subject and role in the echo context for downstream handlers.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := rawToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims, err := tokens.AccessClaimsFromToken(raw, secret)
			if err != nil || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}

// RequireCartOwner lets a request through only when the authenticated
// user is the owner of the cart named in the route. It runs after
// RequireAuth and before any cart handler, so no handler ever sees a
// foreign user_id.
func RequireCartOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		callerID, _ := c.Get(CtxUserID).(string)
		if callerID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
		}
		if callerID != c.Param("user_id") {
			return echo.NewHTTPError(http.StatusForbidden, "you can only access your own cart")
		}
		return next(c)
	}
}

func rawToken(c echo.Context) string {
	if ck, err := c.Cookie("accessToken"); err == nil && ck.Value != "" {
		return ck.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return after
	}
	return ""
}
