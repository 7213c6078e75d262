package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/paperlark/paperlark/pkg/internal/http/exts"
	"github.com/paperlark/paperlark/pkg/internal/http/sec"
	"github.com/paperlark/paperlark/pkg/internal/models"
	"github.com/paperlark/paperlark/pkg/internal/services"
	"github.com/paperlark/paperlark/pkg/internal/services/queries"
	"gorm.io/gorm"
)

var userSortKeys = map[string]string{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

func (v *API) listUser(c *fiber.Ctx) error {
	page, limit, offset := exts.PageArgs(c)
	sort := queries.ParseSort(c.Query("sortBy"), c.Query("sortOrder", "desc"), userSortKeys, "id")

	filter := queries.UserFilter{Search: c.Query("search")}
	tx := filter.Apply(v.DB.Model(&models.User{}))

	count, err := services.CountUser(tx)
	if err != nil {
		return err
	}

	items, err := services.ListUser(tx, limit, offset, sort.Clause())
	if err != nil {
		return err
	}

	return exts.Paged(c, items, exts.NewPagination(page, limit, count))
}

func (v *API) getUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	user, err := services.GetUser(v.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return exts.Ok(c, user)
}

func (v *API) editUser(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var data struct {
		Email *string `json:"email" validate:"omitempty,email"`
		Name  *string `json:"name"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var user models.User
	if err := v.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	// An account can only be modified by itself.
	if user.ID != identity.ID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}

	user, err = services.EditUser(v.DB, user, services.UserChanges{
		Email: data.Email,
		Name:  data.Name,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "User with this email already exists")
		}
		return err
	}

	return exts.Ok(c, user)
}

func (v *API) deleteUser(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var user models.User
	if err := v.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if user.ID != identity.ID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}

	if err := services.DeleteUser(v.DB, user); err != nil {
		return err
	}

	return exts.Message(c, "User deleted")
}
