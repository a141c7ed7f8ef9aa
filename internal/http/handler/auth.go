package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"galleryapi/internal/service"
)

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Register creates a new account.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid request body")
		}

		user, err := svc.Register(c.UserContext(), req.Email, req.DisplayName, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrPasswordRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", err.Error())
			case errors.Is(err, service.ErrUserExists):
				return writeError(c, fiber.StatusConflict, "ALREADY_EXISTS", "email is already registered")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return writeData(c, fiber.StatusCreated, user)
	}
}

// Login verifies credentials and issues a bearer token.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid request body")
		}

		token, user, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return writeData(c, fiber.StatusOK, loginResponse{Token: token, User: user})
	}
}
