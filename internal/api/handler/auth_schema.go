package handler

import "github.com/salonms/backend/internal/core/domain"

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type initAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
}

type changePasswordRequest struct {
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type loginResponse struct {
	Token      string          `json:"token"`
	Account    *domain.Account `json:"account"`
	Role       domain.Role     `json:"role"`
	FirstLogin bool            `json:"firstLogin"`
	Message    string          `json:"message"`
}

type validateResponse struct {
	Valid     bool        `json:"valid"`
	AccountID string      `json:"accountId,omitempty"`
	Email     string      `json:"email,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
