package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paperlark/paperlark/pkg/internal/http/exts"
	"github.com/paperlark/paperlark/pkg/internal/http/sec"
	"github.com/paperlark/paperlark/pkg/internal/models"
	"github.com/paperlark/paperlark/pkg/internal/security"
	"github.com/paperlark/paperlark/pkg/internal/services"
)

func userDigest(user models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	}
}

func (v *API) issueSession(c *fiber.Ctx, user models.User, status int, message string) error {
	token, err := v.Tokens.Sign(security.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return err
	}

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user":        userDigest(user),
			"accessToken": token,
		},
		"message": message,
	})
}

func (v *API) doRegister(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" validate:"required,email"`
		Name     string `json:"name"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.RegisterAccount(v.DB, data.Email, data.Name, data.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return fiber.NewError(fiber.StatusConflict, "User with this email already exists")
		}
		return err
	}

	return v.issueSession(c, account, fiber.StatusCreated, "User registered successfully")
}

func (v *API) doLogin(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.AuthenticateAccount(v.DB, data.Email, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return fiber.NewError(fiber.StatusNotFound, "User does not exist")
		case errors.Is(err, services.ErrIncorrectPassword):
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect password")
		}
		return err
	}

	return v.issueSession(c, account, fiber.StatusOK, "Login successful")
}

// doLogout is stateless; there is no revocation list, the client just drops
// the token. The response echoes who logged out and when.
func (v *API) doLogout(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
		"details": fiber.Map{
			"userId":     identity.ID,
			"userEmail":  identity.Email,
			"logoutTime": time.Now().Format(time.RFC3339),
		},
	})
}
