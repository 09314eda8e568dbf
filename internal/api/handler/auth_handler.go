package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/salonms/backend/internal/api/metrics"
	"github.com/salonms/backend/internal/core/domain"
	"github.com/salonms/backend/internal/core/ports"
	"github.com/salonms/backend/internal/core/token"
)

// AuthHandler serves the auth endpoints of one role namespace. The router
// creates one instance per role, all sharing a single token codec.
type AuthHandler struct {
	accounts ports.AccountService
	codec    *token.Codec
	role     domain.Role
}

func NewAuthHandler(accounts ports.AccountService, codec *token.Codec, role domain.Role) *AuthHandler {
	return &AuthHandler{accounts: accounts, codec: codec, role: role}
}

// Login authenticates an account; the first successful login of a
// provisioned account doubles as activation.
//
// @Summary      Login or activate an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, tkn, firstLogin, err := h.accounts.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(h.roleLabel(), "failure").Inc()
		return err
	}

	message := "Login successful"
	result := "success"
	if firstLogin {
		message = "Account activated successfully"
		result = "first_login"
		metrics.ActivationsTotal.WithLabelValues(h.roleLabel()).Inc()
	}
	metrics.LoginsTotal.WithLabelValues(h.roleLabel(), result).Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:      tkn,
		Account:    account,
		Role:       account.Role,
		FirstLogin: firstLogin,
		Message:    message,
	})
}

// InitAdmin bootstraps the first admin account, pre-activated. Only
// registered on the admin namespace.
//
// @Summary      Bootstrap the first admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      initAdminRequest  true  "Admin details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/init [post]
func (h *AuthHandler) InitAdmin(c echo.Context) error {
	var req initAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.accounts.Bootstrap(c.Request().Context(), req.Email, req.Password,
		domain.Profile{Name: req.Name, Phone: req.Phone})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Admin created successfully",
		"account": account,
	})
}

// Validate checks the bearer token in the Authorization header and echoes
// back the identity claims.
//
// @Summary      Validate a bearer token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  validateResponse
// @Failure      401  {object}  validateResponse
// @Router       /auth/validate [get]
func (h *AuthHandler) Validate(c echo.Context) error {
	tkn, err := bearerToken(c)
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusUnauthorized, validateResponse{Valid: false})
	}

	claims, err := h.codec.DecodeClaims(tkn)
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusUnauthorized, validateResponse{Valid: false})
	}

	metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
	return c.JSON(http.StatusOK, validateResponse{
		Valid:     true,
		AccountID: claims.AccountID,
		Email:     claims.Subject,
		Role:      claims.Role,
	})
}

// ChangePassword re-hashes and stores a new credential for the calling
// account. The gate has already validated the token; the account id comes
// from the claims, never from the request body.
//
// @Summary      Change the caller's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "New password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accounts.ChangeCredential(c.Request().Context(), identity.AccountID, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed successfully"})
}

// CheckStatus is a public probe used by the activation flow in the staff
// app: it reports whether the account has activated yet, and nothing else.
//
// @Summary      Check whether an account has activated
// @Tags         auth
// @Produce      json
// @Param        email  query     string  true  "Account email"
// @Success      200    {object}  map[string]any
// @Failure      404    {object}  map[string]string
// @Router       /auth/check-status [get]
func (h *AuthHandler) CheckStatus(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	account, err := h.accounts.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"hasActivated": account.HasActivated,
		"status":       account.Status,
	})
}

func (h *AuthHandler) roleLabel() string {
	return strings.ToLower(string(h.role))
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if authHeader == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid authorization header")
	}
	return parts[1], nil
}
