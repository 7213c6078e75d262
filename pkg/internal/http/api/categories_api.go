package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paperlark/paperlark/pkg/internal/http/exts"
	"github.com/paperlark/paperlark/pkg/internal/services"
)

func (v *API) listCategory(c *fiber.Ctx) error {
	categories, err := services.ListCategory(v.DB)
	if err != nil {
		return err
	}
	return exts.Ok(c, categories)
}

func (v *API) listTag(c *fiber.Ctx) error {
	tags, err := services.ListTag(v.DB)
	if err != nil {
		return err
	}
	return exts.Ok(c, tags)
}
