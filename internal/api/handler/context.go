package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salonms/backend/internal/api/middleware"
	"github.com/salonms/backend/internal/core/domain"
)

// Identity is the authenticated principal attached by the gate.
type Identity struct {
	AccountID string
	Email     string
	Role      domain.Role
}

// ctxIdentity extracts the identity injected by the authorization gate and
// fast-fails before any service call: a missing account id on a protected
// route means the gate did not run, which is a wiring bug surfaced as 401
// rather than a nil deref downstream.
func ctxIdentity(c echo.Context) (Identity, error) {
	accountID, _ := c.Get(middleware.CtxAccountID).(string)
	if accountID == "" {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get(middleware.CtxEmail).(string)
	role, _ := c.Get(middleware.CtxRole).(domain.Role)

	return Identity{AccountID: accountID, Email: email, Role: role}, nil
}
