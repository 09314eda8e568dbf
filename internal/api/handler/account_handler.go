package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salonms/backend/internal/core/domain"
	"github.com/salonms/backend/internal/core/ports"
)

// AccountHandler serves the admin-facing provisioning endpoints for one
// role namespace (create, inspect, status toggle, remove). The gate has
// already restricted these paths to ADMIN.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type registerAccountRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Shift          string `json:"shift"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING ACTIVE INACTIVE"`
}

// Register provisions a new account in PENDING with no credential; the
// member sets their password on first login.
//
// @Summary      Provision an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      registerAccountRequest  true  "Account details"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       / [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.accounts.Register(c.Request().Context(), req.Email, domain.Profile{
		Name:           req.Name,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Shift:          req.Shift,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, account)
}

// Get returns a single account by id.
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.accounts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// SetStatus assigns a canonical status directly. This is the admin lever
// for deactivating and reinstating accounts.
//
// @Summary      Set an account's status
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Account id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /{id}/status [patch]
func (h *AccountHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.accounts.SetStatus(c.Request().Context(), c.Param("id"), domain.Status(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete removes an account permanently. Deactivation via SetStatus is the
// reversible path; this one is not.
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.accounts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Account deleted"})
}
