package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/salonms/backend/internal/api/metrics"
	"github.com/salonms/backend/internal/core/domain"
	"github.com/salonms/backend/internal/core/token"
)

// Context keys under which the gate stores the authenticated identity.
const (
	CtxAccountID = "account_id"
	CtxEmail     = "email"
	CtxRole      = "role"
)

// Gate is the per-request authorization middleware: it lets public paths
// through untouched, validates the bearer token on everything else,
// enforces the path→role policy, and attaches the identity to the echo
// context for downstream ownership checks.
func Gate(codec *token.Codec, policy *Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if policy.IsPublic(path) {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if authHeader == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.GateDeniedTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid authorization header")
			}

			claims, err := codec.DecodeClaims(parts[1])
			if err != nil {
				metrics.GateDeniedTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			if err := checkRole(claims.Role, policy.RequiredRoles(path)); err != nil {
				metrics.GateDeniedTotal.WithLabelValues("forbidden").Inc()
				return err
			}

			c.Set(CtxAccountID, claims.AccountID)
			c.Set(CtxEmail, claims.Subject)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}

func checkRole(have domain.Role, required []domain.Role) error {
	for _, r := range required {
		if r == RoleAny || r == have {
			return nil
		}
	}
	// Name the first required role in the denial, matching the legacy
	// "Admin access required" style responses.
	return echo.NewHTTPError(http.StatusForbidden,
		fmt.Sprintf("%s access required", strings.ToLower(string(required[0]))))
}
