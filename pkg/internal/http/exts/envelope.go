package exts

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

// Every endpoint answers with the same envelope shape:
// {success, data|error, pagination?, message?, details?}.

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// MaxPageSize bounds how many rows a single page may carry.
const MaxPageSize = 100

// PageArgs reads the page and limit query parameters, clamping limit into
// [1, MaxPageSize], and derives the row offset. The clamped limit is what
// pagination metadata reports, so totals, offsets and the rows actually
// returned always agree.
func PageArgs(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, (page - 1) * limit
}

func Ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func Message(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

func Paged(c *fiber.Ctx, data any, pagination Pagination) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "pagination": pagination})
}
